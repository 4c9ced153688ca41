package evergreen

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// groupSpinRate is the rotation of the whole tree around Y, in radians per second.
const groupSpinRate = 0.05

// TargetEvent describes one change of the global target.
type TargetEvent struct {
	From  TreeState
	To    TreeState
	Clock float64
	Frame uint64
}

// EventSink is the interface for optional ECS integration. When set on a
// Scene, every target change is forwarded to it.
type EventSink interface {
	EmitTargetChanged(event TargetEvent)
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger replaces the scene logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEventSink sets the optional ECS bridge.
func WithEventSink(sink EventSink) Option {
	return func(s *Scene) { s.sink = sink }
}

// WithInitialTarget sets the target the scene starts with. The default is
// TreeFormed, so the tree assembles from chaos on launch.
func WithInitialTarget(t TreeState) Option {
	return func(s *Scene) { s.target = t }
}

const defaultCommandCap = 1024

// Scene is the top-level object that owns the populations, the global target,
// the clock, the camera and the render buffers.
type Scene struct {
	cfg    Config
	target TreeState
	clock  float64
	frame  uint64
	debug  bool
	logger *log.Logger
	sink   EventSink

	foliage   *Foliage
	ornaments *Ornaments
	star      *Star
	snow      *Snow
	animators []Animator

	camera *Camera
	button *ToggleButton
	fps    *fpsWidget

	// ShowFPS draws the FPS widget in the top-left corner.
	ShowFPS bool

	// Render state
	commands   []RenderCommand
	sortBuf    []RenderCommand
	order      int
	arenaVerts []ebiten.Vertex
	arenaInds  []uint32
	batchVerts []ebiten.Vertex
	batchInds  []uint32
	stats      frameStats

	// Input state
	pointer     pointerState
	injectQueue []syntheticEvent
	testRunner  *TestRunner

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewScene validates cfg and generates every population from cfg.Seed.
func NewScene(cfg Config, opts ...Option) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	s := &Scene{
		cfg:           cfg,
		target:        TreeFormed,
		logger:        log.NewWithOptions(os.Stderr, log.Options{Prefix: "evergreen"}),
		camera:        NewCamera(Rect{Width: 1280, Height: 720}),
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:       make([]RenderCommand, 0, defaultCommandCap),
		ScreenshotDir: "screenshots",
	}
	s.button = newToggleButton()
	s.fps = newFPSWidget()
	for _, opt := range opts {
		opt(s)
	}
	s.Regenerate()
	return s, nil
}

// Regenerate rebuilds every population from the config seed. All progress
// returns to chaos; the target and clock are kept.
func (s *Scene) Regenerate() {
	cfg := s.cfg
	rng := NewRand(cfg.Seed)
	fp, op, sp := cfg.policies()

	s.foliage = NewFoliage(
		GenerateFoliage(rng, cfg.ParticleCount, FoliageCone(cfg.TreeHeight, cfg.TreeRadius), cfg.ChaosRadius),
		fp, cfg.rate(fp))
	s.ornaments = NewOrnaments(
		GenerateOrnaments(rng, cfg.OrnamentCount, OrnamentCone(cfg.TreeHeight, cfg.TreeRadius), cfg.ChaosRadius),
		op, cfg.rate(op))
	s.star = NewStar(GenerateStar(rng, cfg.TreeHeight, cfg.ChaosRadius), sp, cfg.rate(sp))
	s.snow = NewSnow(GenerateSnow(rng, cfg.SnowCount, DefaultSnowBox), DefaultSnowBox)
	s.animators = []Animator{s.foliage, s.ornaments, s.star, s.snow}

	s.logger.Debug("generated populations",
		"seed", cfg.Seed,
		"foliage", cfg.ParticleCount,
		"ornaments", cfg.OrnamentCount,
		"snow", cfg.SnowCount)
}

// Config returns the scene configuration.
func (s *Scene) Config() Config {
	return s.cfg
}

// Logger returns the scene logger.
func (s *Scene) Logger() *log.Logger {
	return s.logger
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Button returns the toggle button.
func (s *Scene) Button() *ToggleButton {
	return s.button
}

// Foliage returns the foliage population.
func (s *Scene) Foliage() *Foliage { return s.foliage }

// Ornaments returns the ornament population.
func (s *Scene) Ornaments() *Ornaments { return s.ornaments }

// Star returns the star population.
func (s *Scene) Star() *Star { return s.star }

// Snow returns the snow field.
func (s *Scene) Snow() *Snow { return s.snow }

// Clock returns the elapsed scene time in seconds.
func (s *Scene) Clock() float64 {
	return s.clock
}

// Frame returns the number of completed Step calls.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// Target returns the global target.
func (s *Scene) Target() TreeState {
	return s.target
}

// SetTarget sets the global target. Populations start moving towards it on
// the next Step. Setting the current target is a no-op.
func (s *Scene) SetTarget(t TreeState) {
	if t == s.target {
		return
	}
	ev := TargetEvent{From: s.target, To: t, Clock: s.clock, Frame: s.frame}
	s.target = t
	s.logger.Debug("target changed", "from", ev.From, "to", ev.To, "clock", ev.Clock)
	if s.sink != nil {
		s.sink.EmitTargetChanged(ev)
	}
}

// Toggle flips the global target between TreeFormed and TreeChaos.
func (s *Scene) Toggle() {
	s.SetTarget(s.target.Toggle())
}

// GroupMatrix returns the slow rotation applied to the tree populations.
// Snow is drawn outside the group so it keeps falling straight.
func (s *Scene) GroupMatrix() Mat4 {
	return RotateY(s.clock * groupSpinRate)
}

// Update advances the scene by one tick of 1/TPS seconds, reading real
// keyboard and mouse input after any injected input. Call it from
// ebiten.Game.Update.
func (s *Scene) Update() {
	s.step(1.0/float64(ebiten.TPS()), true)
}

// Step advances the scene by dt seconds without reading real input: it runs
// the test runner, consumes injected input, updates the camera and advances
// every population. A negative or NaN dt is treated as 0.
func (s *Scene) Step(dt float64) {
	s.step(dt, false)
}

func (s *Scene) step(dt float64, realInput bool) {
	if !(dt > 0) {
		dt = 0
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.clock += dt
	s.frame++

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	injected := s.processInjectedInput()
	if realInput && !injected {
		s.pollInput()
	}

	s.camera.update(float32(dt))
	s.button.update(float32(dt))
	s.fps.update(dt)
	for _, a := range s.animators {
		a.Advance(dt, s.clock, s.target)
	}

	if s.debug {
		s.stats.advanceTime = time.Since(t0)
	}
}

// Draw renders the scene into screen. A nil screen skips the frame; the
// next Draw retries.
func (s *Scene) Draw(screen *ebiten.Image) {
	if screen == nil {
		s.logger.Debug("skipping frame: no render target", "frame", s.frame)
		return
	}
	b := screen.Bounds()
	vp := Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), Width: float64(b.Dx()), Height: float64(b.Dy())}
	if vp != s.camera.Viewport {
		s.camera.Viewport = vp
		s.camera.MarkDirty()
	}

	screen.Fill(ColorBackground.toRGBA())
	s.drawWithCamera(screen, s.camera)

	s.button.layout(vp)
	s.button.draw(screen, s.target)
	drawTitle(screen, vp)
	if s.ShowFPS {
		s.fps.draw(screen)
	}

	s.flushScreenshots(screen)
}

// drawWithCamera emits, sorts and submits the populations' render commands.
func (s *Scene) drawWithCamera(target *ebiten.Image, cam *Camera) {
	s.stats = frameStats{advanceTime: s.stats.advanceTime}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.emitAll(cam)

	if s.debug {
		s.stats.emitTime = time.Since(t0)
		t0 = time.Now()
	}

	s.mergeSort()

	if s.debug {
		s.stats.sortTime = time.Since(t0)
		s.stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submitBatches(target)

	if s.debug {
		s.stats.submitTime = time.Since(t0)
		s.stats.batchCount = countBatches(s.commands)
		s.debugLog(s.stats)
	}
}
