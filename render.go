package evergreen

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandPoint CommandType = iota // one particle sprite quad
	CommandMesh                     // the visible faces of one instanced mesh
	CommandGlow                     // one glow sprite quad (lights, star halo)
)

// spriteKind selects the source image of a command.
type spriteKind uint8

const (
	spriteDisc  spriteKind = iota // hard-edged disc for foliage
	spriteSoft                    // soft disc for snow
	spriteGlow                    // quadratic falloff for lights and halos
	spriteWhite                   // 1x1 white pixel for flat-shaded meshes
)

// RenderCommand is a single depth-sorted draw instruction. Its geometry lives
// in the scene's per-frame vertex arena.
type RenderCommand struct {
	Type      CommandType
	Category  Category
	Depth     float64
	BlendMode BlendMode
	sprite    spriteKind
	order     int // emission order for stable sort

	vertStart, vertCount int
	indStart, indCount   int
}

// Lighting constants for the flat-shaded meshes.
var lightDir = Vec3{X: 10, Y: 20, Z: 10}.Normalize()

const (
	ambientLight  = 0.3
	diffuseLight  = 0.9
	emissiveStar  = 0.9
	glowScale     = 2.5 // light sprite diameter relative to the instance scale
	haloRadius    = 1.2
	haloAlpha     = 0.3
	foliagePxSize = 40  // gl_PointSize factor for foliage
	snowPxSize    = 300 // gl_PointSize factor for snow
)

// emitAll converts every attached batch into render commands for cam.
// Batches whose version advanced since the last frame are acknowledged.
func (s *Scene) emitAll(cam *Camera) {
	s.commands = s.commands[:0]
	s.arenaVerts = s.arenaVerts[:0]
	s.arenaInds = s.arenaInds[:0]
	s.order = 0

	group := s.GroupMatrix()
	eye := cam.Eye()

	if b := s.snow.Batch(); b != nil {
		s.emitPoints(b, Identity4, cam, spriteSoft, snowPxSize)
	}
	if b := s.foliage.Batch(); b != nil {
		s.emitPoints(b, group, cam, spriteDisc, foliagePxSize)
	}
	for _, b := range s.ornaments.Batches() {
		s.emitInstances(b, group, cam, eye)
	}
	if b := s.star.Batch(); b != nil {
		s.emitInstances(b, group, cam, eye)
	}
}

// acknowledge marks a batch as consumed and counts the upload.
func (s *Scene) acknowledge(b interface {
	Dirty() bool
	Acknowledge()
}) {
	if b.Dirty() {
		b.Acknowledge()
		s.stats.uploads++
	}
}

// emitPoints appends one sprite quad per visible point.
func (s *Scene) emitPoints(b *PointBatch, model Mat4, cam *Camera, sprite spriteKind, pxSize float64) {
	s.acknowledge(b)
	for i, n := 0, b.Len(); i < n; i++ {
		world, _ := model.MulPoint(b.PositionAt(i))
		x, y, depth, ok := cam.Project(world)
		if !ok {
			continue
		}
		half := float64(b.Sizes[i]) * pxSize / depth / 2
		if half < 0.5 {
			half = 0.5
		}
		s.appendQuad(CommandPoint, b.Category, b.BlendMode, sprite, depth, x, y, half, b.Colors[i])
	}
}

// emitInstances appends one command per visible instance. Meshes emit their
// camera-facing faces; categories without a mesh emit a glow sprite.
func (s *Scene) emitInstances(b *InstanceBatch, model Mat4, cam *Camera, eye Vec3) {
	s.acknowledge(b)
	mesh := meshFor(b.Category)
	for i, n := 0, b.Len(); i < n; i++ {
		full := model.Mul(b.Matrices[i])
		center := full.Translation()
		x, y, depth, ok := cam.Project(center)
		if !ok {
			continue
		}
		scale := full.MulDir(Vec3{X: 1}).Norm()
		col := b.Colors[i]

		if mesh == nil {
			half := scale * glowScale * cam.PixelsPerUnit(depth) / 2
			s.appendQuad(CommandGlow, b.Category, BlendAdd, spriteGlow, depth, x, y, half, col)
			continue
		}

		s.appendMesh(mesh, full, cam, eye, b.Category, depth, col)

		if b.Category == CategoryStar {
			half := haloRadius * scale * cam.PixelsPerUnit(depth)
			halo := col
			halo.A = haloAlpha
			s.appendQuad(CommandGlow, b.Category, BlendNormal, spriteGlow, depth-0.01, x, y, half, halo)
		}
	}
}

// appendQuad appends a screen-aligned quad centered at (x, y).
func (s *Scene) appendQuad(t CommandType, c Category, blend BlendMode, sprite spriteKind, depth, x, y, half float64, col Color) {
	vs := len(s.arenaVerts)
	is := len(s.arenaInds)

	var su, sv float32 = spriteSize, spriteSize
	if sprite == spriteWhite {
		su, sv = 1, 1
	}
	cr, cg, cb, ca := premultiplied(col)
	lx := [4]float64{x - half, x + half, x - half, x + half}
	ly := [4]float64{y - half, y - half, y + half, y + half}
	sx := [4]float32{0, su, 0, su}
	sy := [4]float32{0, 0, sv, sv}
	for k := 0; k < 4; k++ {
		s.arenaVerts = append(s.arenaVerts, ebiten.Vertex{
			DstX:   float32(lx[k]),
			DstY:   float32(ly[k]),
			SrcX:   sx[k],
			SrcY:   sy[k],
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	// Two triangles: TL-TR-BL, TR-BR-BL
	s.arenaInds = append(s.arenaInds, 0, 1, 2, 1, 3, 2)

	s.pushCommand(RenderCommand{
		Type:      t,
		Category:  c,
		Depth:     depth,
		BlendMode: blend,
		sprite:    sprite,
		vertStart: vs,
		vertCount: 4,
		indStart:  is,
		indCount:  6,
	})
}

// appendMesh appends the camera-facing, lit faces of mesh transformed by full.
// The mesh is convex, so back-face culling alone resolves its own overlap.
func (s *Scene) appendMesh(mesh *unitMesh, full Mat4, cam *Camera, eye Vec3, c Category, depth float64, col Color) {
	vs := len(s.arenaVerts)
	is := len(s.arenaInds)

	emissive := 0.0
	if c == CategoryStar {
		emissive = emissiveStar
	}

	local := uint32(0)
	for f := range mesh.faces {
		face := &mesh.faces[f]
		var world [3]Vec3
		for k := 0; k < 3; k++ {
			world[k], _ = full.MulPoint(face.v[k])
		}
		normal := full.MulDir(face.normal).Normalize()
		centroid := world[0].Add(world[1]).Add(world[2]).Mul(1.0 / 3)
		if normal.Dot(eye.Sub(centroid)) <= 0 {
			continue
		}
		var px, py [3]float64
		visible := true
		for k := 0; k < 3; k++ {
			var ok bool
			px[k], py[k], _, ok = cam.Project(world[k])
			if !ok {
				visible = false
				break
			}
		}
		if !visible {
			continue
		}
		shade := ambientLight + diffuseLight*math.Max(0, normal.Dot(lightDir)) + emissive
		cr, cg, cb, ca := premultiplied(col.Scale(shade))
		for k := 0; k < 3; k++ {
			s.arenaVerts = append(s.arenaVerts, ebiten.Vertex{
				DstX:   float32(px[k]),
				DstY:   float32(py[k]),
				SrcX:   0.5,
				SrcY:   0.5,
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: ca,
			})
		}
		s.arenaInds = append(s.arenaInds, local, local+1, local+2)
		local += 3
	}
	if local == 0 {
		return
	}
	s.pushCommand(RenderCommand{
		Type:      CommandMesh,
		Category:  c,
		Depth:     depth,
		BlendMode: BlendNormal,
		sprite:    spriteWhite,
		vertStart: vs,
		vertCount: int(local),
		indStart:  is,
		indCount:  int(local),
	})
}

func (s *Scene) pushCommand(cmd RenderCommand) {
	cmd.order = s.order
	s.order++
	s.commands = append(s.commands, cmd)
}

// premultiplied clamps c to [0, 1] and returns premultiplied float32 components.
func premultiplied(c Color) (r, g, b, a float32) {
	ca := clamp01(c.A)
	return float32(clamp01(c.R) * ca), float32(clamp01(c.G) * ca), float32(clamp01(c.B) * ca), float32(ca)
}

// commandLessOrEqual returns true if a should be drawn before or at the same
// position as b: farther commands first, emission order breaking ties.
func commandLessOrEqual(a, b RenderCommand) bool {
	if a.Depth != b.Depth {
		return a.Depth > b.Depth
	}
	return a.order <= b.order
}

// mergeSort sorts s.commands in-place using s.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]RenderCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
