package evergreen

import "testing"

func TestMergeSortFarFirstStable(t *testing.T) {
	s := &Scene{}
	depths := []float64{5, 20, 5, 1, 20, 7}
	for i, d := range depths {
		s.commands = append(s.commands, RenderCommand{Depth: d, order: i})
	}
	s.mergeSort()
	wantOrder := []int{1, 4, 5, 0, 2, 3}
	for i, cmd := range s.commands {
		if cmd.order != wantOrder[i] {
			t.Fatalf("position %d: order %d, want %d (depths %v)", i, cmd.order, wantOrder[i], depths)
		}
	}
}

func TestCountBatches(t *testing.T) {
	cmds := []RenderCommand{
		{sprite: spriteDisc},
		{sprite: spriteDisc},
		{sprite: spriteWhite},
		{sprite: spriteGlow, BlendMode: BlendAdd},
		{sprite: spriteGlow, BlendMode: BlendAdd},
		{sprite: spriteGlow},
	}
	if got := countBatches(cmds); got != 4 {
		t.Errorf("countBatches = %d, want 4", got)
	}
	if got := countBatches(nil); got != 0 {
		t.Errorf("countBatches(nil) = %d", got)
	}
}

func TestPremultiplied(t *testing.T) {
	r, g, b, a := premultiplied(Color{R: 2, G: 0.5, B: -1, A: 0.5})
	if r != 0.5 || g != 0.25 || b != 0 || a != 0.5 {
		t.Errorf("premultiplied = (%v, %v, %v, %v)", r, g, b, a)
	}
}

func TestEmitSkipsDetachedBatches(t *testing.T) {
	s := newTestScene(t)
	s.Step(frameDT)
	s.Foliage().Attach(nil)
	s.Snow().Attach(nil)
	s.emitAll(s.camera)
	for _, cmd := range s.commands {
		if cmd.Type == CommandPoint {
			t.Fatalf("point command emitted for a detached batch: %+v", cmd)
		}
	}
}

func TestEmitMeshCullsBackFaces(t *testing.T) {
	s := newTestScene(t)
	cam := s.camera
	mesh := meshFor(CategoryGift)
	s.appendMesh(mesh, Compose(Vec3{}, Vec3{}, 1), cam, cam.Eye(), CategoryGift, cam.Distance, ColorGold)
	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	// A cube viewed from outside shows at most three faces.
	if n := s.commands[0].vertCount / 3; n == 0 || n > 6 {
		t.Errorf("visible triangles = %d, want 1..6", n)
	}
}
