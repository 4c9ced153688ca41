package evergreen

import "testing"

func buttonCenter(s *Scene) (float64, float64) {
	b := s.Button().Bounds()
	return b.X + b.Width/2, b.Y + b.Height/2
}

func TestButtonLabel(t *testing.T) {
	if got := ButtonLabel(TreeChaos); got != "RESTORE ORDER" {
		t.Errorf("CHAOS label = %q", got)
	}
	if got := ButtonLabel(TreeFormed); got != "UNLEASH CHAOS" {
		t.Errorf("FORMED label = %q", got)
	}
}

func TestButtonLayoutBottomCenter(t *testing.T) {
	var b ToggleButton
	b.layout(Rect{Width: 1000, Height: 800})
	r := b.Bounds()
	if r.X+r.Width/2 != 500 {
		t.Errorf("button center x = %v, want 500", r.X+r.Width/2)
	}
	if r.Y+r.Height != 800-buttonMargin {
		t.Errorf("button bottom = %v, want %v", r.Y+r.Height, 800-buttonMargin)
	}
}

func TestInjectClickOnButtonToggles(t *testing.T) {
	s := newTestScene(t)
	x, y := buttonCenter(s)
	s.InjectClick(x, y)
	if s.PendingInput() != 2 {
		t.Fatalf("PendingInput = %d, want 2", s.PendingInput())
	}
	s.Step(frameDT)
	if s.Target() != TreeFormed {
		t.Fatal("press alone toggled the target")
	}
	s.Step(frameDT)
	if s.Target() != TreeChaos {
		t.Errorf("Target = %v after click, want CHAOS", s.Target())
	}
}

func TestInjectClickOffButton(t *testing.T) {
	s := newTestScene(t)
	s.InjectClick(5, 5)
	s.Step(frameDT)
	s.Step(frameDT)
	if s.Target() != TreeFormed {
		t.Error("click outside the button toggled the target")
	}
}

func TestInjectReleaseOffButtonCancels(t *testing.T) {
	s := newTestScene(t)
	x, y := buttonCenter(s)
	s.InjectPress(x, y)
	s.InjectRelease(5, 5)
	s.Step(frameDT)
	s.Step(frameDT)
	if s.Target() != TreeFormed {
		t.Error("press on button with release elsewhere toggled the target")
	}
}

func TestInjectToggle(t *testing.T) {
	s := newTestScene(t)
	s.InjectToggle()
	s.InjectToggle()
	s.Step(frameDT)
	if s.Target() != TreeChaos {
		t.Fatalf("Target = %v after first toggle", s.Target())
	}
	s.Step(frameDT)
	if s.Target() != TreeFormed {
		t.Errorf("Target = %v after second toggle", s.Target())
	}
}

func TestInjectDragOrbits(t *testing.T) {
	s := newTestScene(t)
	yaw := s.Camera().Yaw
	s.InjectDrag(100, 100, 300, 100, 10)
	for s.PendingInput() > 0 {
		s.Step(frameDT)
	}
	want := yaw - 200*orbitRadiansPerPixel
	if d := s.Camera().Yaw - want; d > 1e-9 || d < -1e-9 {
		t.Errorf("Yaw = %v, want %v", s.Camera().Yaw, want)
	}
	if s.Target() != TreeFormed {
		t.Error("drag toggled the target")
	}
}

func TestButtonHoverGlow(t *testing.T) {
	s := newTestScene(t)
	x, y := buttonCenter(s)
	s.processPointer(x, y, false)
	if !s.Button().Hovered() {
		t.Fatal("button not hovered")
	}
	s.Button().update(glowFadeTime)
	if s.Button().Glow() != 1 {
		t.Errorf("glow = %v after fade in, want 1", s.Button().Glow())
	}
	s.processPointer(5, 5, false)
	s.Button().update(glowFadeTime)
	if s.Button().Glow() != 0 {
		t.Errorf("glow = %v after fade out, want 0", s.Button().Glow())
	}
}
