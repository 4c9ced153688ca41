package evergreen

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

type recordingSink struct {
	events []TargetEvent
}

func (r *recordingSink) EmitTargetChanged(e TargetEvent) {
	r.events = append(r.events, e)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ParticleCount = 400
	cfg.OrnamentCount = 60
	cfg.SnowCount = 40
	return cfg
}

func newTestScene(t *testing.T, opts ...Option) *Scene {
	t.Helper()
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	s, err := NewScene(testConfig(), opts...)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s
}

func TestNewSceneRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.ChaosRadius = 0
	if _, err := NewScene(cfg); err == nil {
		t.Fatal("expected error for zero chaos radius")
	}
}

func TestSceneDefaults(t *testing.T) {
	s := newTestScene(t)
	if s.Target() != TreeFormed {
		t.Errorf("Target = %v, want FORMED", s.Target())
	}
	if s.Foliage().Population().Len() != 400 || s.Ornaments().Population().Len() != 60 {
		t.Error("population sizes do not match the config")
	}
	if s.Foliage().Progress() != 0 || s.Star().Progress() != 0 {
		t.Error("populations should start at chaos")
	}
}

func TestSceneInitialTargetOption(t *testing.T) {
	s := newTestScene(t, WithInitialTarget(TreeChaos))
	for i := 0; i < 30; i++ {
		s.Step(frameDT)
	}
	if s.Foliage().Progress() != 0 {
		t.Errorf("foliage moved to %v with a CHAOS target", s.Foliage().Progress())
	}
}

func TestSceneToggleEmitsEvents(t *testing.T) {
	sink := &recordingSink{}
	s := newTestScene(t, WithEventSink(sink))
	s.Step(frameDT)
	s.Toggle()
	s.SetTarget(TreeChaos)
	s.Toggle()

	if len(sink.events) != 2 {
		t.Fatalf("got %d events, want 2", len(sink.events))
	}
	e := sink.events[0]
	if e.From != TreeFormed || e.To != TreeChaos || e.Frame != 1 {
		t.Errorf("event 0 = %+v", e)
	}
	if sink.events[1].To != TreeFormed {
		t.Errorf("event 1 = %+v", sink.events[1])
	}
}

func TestSceneStepDeterministic(t *testing.T) {
	run := func() []float32 {
		s := newTestScene(t)
		for i := 1; i <= 200; i++ {
			s.Step(frameDT)
			if i%45 == 0 {
				s.Toggle()
			}
		}
		return append([]float32(nil), s.Foliage().Batch().Positions...)
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("component %d differs between identical runs", i)
		}
	}
}

func TestSceneStepInvalidDT(t *testing.T) {
	s := newTestScene(t)
	s.Step(0.5)
	clock, p := s.Clock(), s.Foliage().Progress()
	s.Step(-1)
	s.Step(math.NaN())
	if s.Clock() != clock || s.Foliage().Progress() != p {
		t.Errorf("invalid dt moved the scene: clock %v -> %v", clock, s.Clock())
	}
	if s.Frame() != 3 {
		t.Errorf("Frame = %d, want 3", s.Frame())
	}
}

func TestSceneDrawNilScreen(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	s := newTestScene(t, WithLogger(logger))
	s.Draw(nil)
	if !strings.Contains(buf.String(), "no render target") {
		t.Errorf("log = %q, want a skipped-frame message", buf.String())
	}
}

func TestSceneEmitSortsFarFirst(t *testing.T) {
	s := newTestScene(t)
	for i := 0; i < 10; i++ {
		s.Step(frameDT)
	}
	s.emitAll(s.camera)
	s.mergeSort()
	if len(s.commands) == 0 {
		t.Fatal("no commands emitted")
	}
	for i := 1; i < len(s.commands); i++ {
		if s.commands[i].Depth > s.commands[i-1].Depth {
			t.Fatalf("command %d depth %v after %v", i, s.commands[i].Depth, s.commands[i-1].Depth)
		}
	}
	if n := countBatches(s.commands); n < 1 || n > len(s.commands) {
		t.Errorf("countBatches = %d for %d commands", n, len(s.commands))
	}
}

func TestSceneEmitAcknowledgesBatches(t *testing.T) {
	s := newTestScene(t)
	s.Step(frameDT)
	if !s.Foliage().Batch().Dirty() {
		t.Fatal("foliage batch not dirty after Step")
	}
	s.emitAll(s.camera)
	if s.Foliage().Batch().Dirty() || s.Snow().Batch().Dirty() {
		t.Error("batches still dirty after emit")
	}
	// foliage, snow, star and three ornament shapes
	if s.stats.uploads != 6 {
		t.Errorf("uploads = %d, want 6", s.stats.uploads)
	}
}

func TestSceneRegenerateResetsProgress(t *testing.T) {
	s := newTestScene(t)
	for i := 0; i < 30; i++ {
		s.Step(frameDT)
	}
	s.Regenerate()
	if s.Foliage().Progress() != 0 {
		t.Errorf("progress after Regenerate = %v", s.Foliage().Progress())
	}
	if s.Target() != TreeFormed {
		t.Errorf("Regenerate changed the target to %v", s.Target())
	}
}

func TestGroupMatrixRotates(t *testing.T) {
	s := newTestScene(t)
	if s.GroupMatrix() != RotateY(0) {
		t.Error("group rotated before the clock advanced")
	}
	s.Step(2)
	want := RotateY(2 * groupSpinRate)
	if got := s.GroupMatrix(); !matNear(got, want, 1e-12) {
		t.Errorf("GroupMatrix = %v, want %v", got, want)
	}
}

func TestSetDebugModeLogsStats(t *testing.T) {
	var buf bytes.Buffer
	s := newTestScene(t, WithLogger(log.New(&buf)))
	s.SetDebugMode(true)
	if !s.DebugMode() {
		t.Fatal("DebugMode() = false")
	}
	s.debugLog(frameStats{commandCount: 3, batchCount: 2})
	out := buf.String()
	if !strings.Contains(out, "commands=3") || !strings.Contains(out, "batches=2") {
		t.Errorf("debug log = %q", out)
	}
}
