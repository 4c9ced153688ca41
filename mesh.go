package evergreen

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// meshFace is one triangle of a unit mesh with its outward normal.
type meshFace struct {
	v      [3]Vec3
	normal Vec3
}

// unitMesh is a convex triangle mesh centered on the origin.
type unitMesh struct {
	faces []meshFace
}

// newUnitMesh builds faces from positions and triangle indices. Normals are
// oriented away from the origin, which holds for every convex mesh here.
func newUnitMesh(pos []Vec3, tris [][3]int) *unitMesh {
	m := &unitMesh{faces: make([]meshFace, len(tris))}
	for i, t := range tris {
		a, b, c := pos[t[0]], pos[t[1]], pos[t[2]]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		if n.Dot(centroid) < 0 {
			n = n.Mul(-1)
			b, c = c, b
		}
		m.faces[i] = meshFace{v: [3]Vec3{a, b, c}, normal: n}
	}
	return m
}

// cubeMesh returns a unit cube with side 1.
func cubeMesh() *unitMesh {
	var pos []Vec3
	for i := 0; i < 8; i++ {
		pos = append(pos, Vec3{
			X: float64(i&1) - 0.5,
			Y: float64(i>>1&1) - 0.5,
			Z: float64(i>>2&1) - 0.5,
		})
	}
	tris := [][3]int{
		{0, 1, 3}, {0, 3, 2}, // z-
		{4, 6, 7}, {4, 7, 5}, // z+
		{0, 4, 5}, {0, 5, 1}, // y-
		{2, 3, 7}, {2, 7, 6}, // y+
		{0, 2, 6}, {0, 6, 4}, // x-
		{1, 5, 7}, {1, 7, 3}, // x+
	}
	return newUnitMesh(pos, tris)
}

// icosahedron returns the 12 vertices and 20 faces of a unit icosahedron.
func icosahedron() ([]Vec3, [][3]int) {
	t := (1 + math.Sqrt(5)) / 2
	raw := []Vec3{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	for i := range raw {
		raw[i] = raw[i].Normalize()
	}
	tris := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return raw, tris
}

// icoMesh returns an icosahedron of the given radius, subdivided
// subdivisions times with new vertices pushed onto the sphere.
func icoMesh(radius float64, subdivisions int) *unitMesh {
	pos, tris := icosahedron()
	for s := 0; s < subdivisions; s++ {
		mid := make(map[[2]int]int)
		midpoint := func(a, b int) int {
			key := [2]int{min(a, b), max(a, b)}
			if i, ok := mid[key]; ok {
				return i
			}
			pos = append(pos, pos[a].Add(pos[b]).Normalize())
			mid[key] = len(pos) - 1
			return len(pos) - 1
		}
		next := make([][3]int, 0, len(tris)*4)
		for _, t := range tris {
			ab := midpoint(t[0], t[1])
			bc := midpoint(t[1], t[2])
			ca := midpoint(t[2], t[0])
			next = append(next,
				[3]int{t[0], ab, ca},
				[3]int{t[1], bc, ab},
				[3]int{t[2], ca, bc},
				[3]int{ab, bc, ca},
			)
		}
		tris = next
	}
	for i := range pos {
		pos[i] = pos[i].Mul(radius)
	}
	return newUnitMesh(pos, tris)
}

// --- Shared meshes and sprite images (no sync.Once, single-threaded) ---

var (
	meshCube   *unitMesh
	meshSphere *unitMesh
	meshStar   *unitMesh

	imgDisc *ebiten.Image
	imgSoft *ebiten.Image
	imgGlow *ebiten.Image
)

// meshFor returns the mesh an instance category is drawn with, or nil for
// categories rendered as glow sprites.
func meshFor(c Category) *unitMesh {
	switch c {
	case CategoryGift:
		if meshCube == nil {
			meshCube = cubeMesh()
		}
		return meshCube
	case CategoryBauble:
		if meshSphere == nil {
			meshSphere = icoMesh(1, 1)
		}
		return meshSphere
	case CategoryStar:
		if meshStar == nil {
			meshStar = icoMesh(0.8, 0)
		}
		return meshStar
	}
	return nil
}

const spriteSize = 32

// radialImage renders a spriteSize square whose alpha is shape(dist), where
// dist is the distance from the center in [0, ~0.7] of the sprite width.
func radialImage(shape func(dist float64) float64) *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, spriteSize, spriteSize))
	for y := 0; y < spriteSize; y++ {
		for x := 0; x < spriteSize; x++ {
			dx := (float64(x)+0.5)/spriteSize - 0.5
			dy := (float64(y)+0.5)/spriteSize - 0.5
			a := clampByte(shape(math.Hypot(dx, dy)))
			img.SetRGBA(x, y, color.RGBA{a, a, a, a})
		}
	}
	return ebiten.NewImageFromImage(img)
}

// edgeStep is GLSL smoothstep(edge0, edge1, x); edge0 may exceed edge1.
func edgeStep(edge0, edge1, x float64) float64 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return Smoothstep(t)
}

func spriteImage(k spriteKind) *ebiten.Image {
	switch k {
	case spriteSoft:
		if imgSoft == nil {
			imgSoft = radialImage(func(d float64) float64 {
				if d > 0.5 {
					return 0
				}
				return edgeStep(0.5, 0.0, d)
			})
		}
		return imgSoft
	case spriteGlow:
		if imgGlow == nil {
			imgGlow = radialImage(func(d float64) float64 {
				if d > 0.5 {
					return 0
				}
				v := 1 - d*2
				return v * v
			})
		}
		return imgGlow
	case spriteWhite:
		return ensureWhitePixel()
	default:
		if imgDisc == nil {
			imgDisc = radialImage(func(d float64) float64 {
				if d > 0.5 {
					return 0
				}
				return edgeStep(0.5, 0.2, d)
			})
		}
		return imgDisc
	}
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Used by flat-shaded meshes.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
