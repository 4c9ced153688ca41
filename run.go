package evergreen

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrScriptDone is returned by the game loop when an attached test runner
// finishes. Run treats it as a clean exit.
var ErrScriptDone = errors.New("test script done")

// RunConfig configures the window opened by Run.
type RunConfig struct {
	// Context closes the window when cancelled. Nil means never.
	Context context.Context
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	Debug   bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	ctx   context.Context
	scene *Scene
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.scene.Update()
	if r := g.scene.testRunner; r != nil && r.Done() && len(g.scene.screenshotQueue) == 0 {
		return ErrScriptDone
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) { g.scene.Draw(screen) }

func (g *game) Layout(w, h int) (int, int) { return w, h }

// Run opens a window and drives scene until the window closes, an attached
// test runner completes or cfg.Context is cancelled. Cancellation returns the
// context's error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Title == "" {
		cfg.Title = Title
	}
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	scene.ShowFPS = cfg.ShowFPS
	if cfg.Debug {
		scene.SetDebugMode(true)
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(&game{ctx: cfg.Context, scene: scene})
	if ctxErr := cfg.Context.Err(); ctxErr != nil && (err == nil || errors.Is(err, ebiten.Termination)) {
		return ctxErr
	}
	if errors.Is(err, ErrScriptDone) {
		return nil
	}
	return err
}
