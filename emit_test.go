package evergreen

import "testing"

func TestBatchStateDirty(t *testing.T) {
	b := NewInstanceBatch(CategoryGift, 2)
	if b.Dirty() || b.Version() != 0 {
		t.Fatalf("new batch: Dirty %v, Version %d", b.Dirty(), b.Version())
	}
	b.MarkDirty()
	if !b.Dirty() || b.Version() != 1 {
		t.Errorf("after MarkDirty: Dirty %v, Version %d", b.Dirty(), b.Version())
	}
	b.Acknowledge()
	if b.Dirty() || b.Uploaded() != 1 {
		t.Errorf("after Acknowledge: Dirty %v, Uploaded %d", b.Dirty(), b.Uploaded())
	}
	b.MarkDirty()
	b.MarkDirty()
	if b.Version() != 3 || !b.Dirty() {
		t.Errorf("Version = %d, want 3", b.Version())
	}
}

func TestNewInstanceBatchIdentity(t *testing.T) {
	b := NewInstanceBatch(CategoryBauble, 3)
	if b.Len() != 3 {
		t.Fatalf("Len = %d, want 3", b.Len())
	}
	for i, m := range b.Matrices {
		if m != Identity4 {
			t.Errorf("matrix %d not identity", i)
		}
	}
	b.SetColorAt(1, ColorGold)
	if b.Colors[1] != ColorGold {
		t.Errorf("Colors[1] = %v", b.Colors[1])
	}
}

func TestPointBatchPositions(t *testing.T) {
	b := NewPointBatch(CategoryFoliage, 4)
	if b.Len() != 4 || len(b.Positions) != 12 {
		t.Fatalf("Len = %d, positions %d", b.Len(), len(b.Positions))
	}
	v := Vec3{X: 1.5, Y: -2.25, Z: 8}
	b.SetPositionAt(2, v)
	if got := b.PositionAt(2); got != v {
		t.Errorf("PositionAt(2) = %v, want %v", got, v)
	}
	if got := b.PositionAt(1); got != (Vec3{}) {
		t.Errorf("PositionAt(1) = %v, want zero", got)
	}
}
