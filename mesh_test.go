package evergreen

import (
	"math"
	"testing"
)

func TestCubeMeshNormalsOutward(t *testing.T) {
	m := cubeMesh()
	if len(m.faces) != 12 {
		t.Fatalf("faces = %d, want 12", len(m.faces))
	}
	for i, f := range m.faces {
		c := f.v[0].Add(f.v[1]).Add(f.v[2])
		if f.normal.Dot(c) <= 0 {
			t.Errorf("face %d normal %v points inward", i, f.normal)
		}
		// Winding must agree with the stored normal.
		n := f.v[1].Sub(f.v[0]).Cross(f.v[2].Sub(f.v[0]))
		if n.Dot(f.normal) <= 0 {
			t.Errorf("face %d winding disagrees with its normal", i)
		}
	}
}

func TestIcoMeshSubdivision(t *testing.T) {
	tests := []struct {
		subdiv, faces int
	}{
		{0, 20},
		{1, 80},
		{2, 320},
	}
	for _, tt := range tests {
		m := icoMesh(2, tt.subdiv)
		if len(m.faces) != tt.faces {
			t.Errorf("subdiv %d: faces = %d, want %d", tt.subdiv, len(m.faces), tt.faces)
		}
		for _, f := range m.faces {
			for _, v := range f.v {
				if math.Abs(v.Norm()-2) > 1e-9 {
					t.Fatalf("subdiv %d: vertex %v off the sphere", tt.subdiv, v)
				}
			}
		}
	}
}

func TestMeshFor(t *testing.T) {
	if meshFor(CategoryLight) != nil {
		t.Error("lights should render as glow sprites")
	}
	for _, c := range []Category{CategoryGift, CategoryBauble, CategoryStar} {
		if meshFor(c) == nil {
			t.Errorf("meshFor(%v) = nil", c)
		}
	}
	if meshFor(CategoryGift) != meshFor(CategoryGift) {
		t.Error("meshFor should cache meshes")
	}
}
