package evergreen

import (
	"context"
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestGameUpdateStopsOnCancel(t *testing.T) {
	s := newTestScene(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := &game{ctx: ctx, scene: s}
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("Update() = %v, want ebiten.Termination", err)
	}
	if s.Clock() != 0 {
		t.Errorf("Clock = %v, want the scene left unstepped", s.Clock())
	}
}
