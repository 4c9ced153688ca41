package evergreen

// Uniforms are the two per-frame scalars of a continuous particle field.
type Uniforms struct {
	Time     float64
	Progress float64
}

// batchState tracks whether a batch has changes the renderer has not seen.
// MarkDirty bumps the version once per frame; the renderer calls Acknowledge
// after it has read the batch.
type batchState struct {
	version  uint64
	uploaded uint64
}

// MarkDirty flags the batch for re-upload. Populations call it once per
// frame, after every entity in the batch has been written.
func (b *batchState) MarkDirty() {
	b.version++
}

// Dirty reports whether the batch changed since the last Acknowledge.
func (b *batchState) Dirty() bool {
	return b.version != b.uploaded
}

// Version returns the number of MarkDirty calls.
func (b *batchState) Version() uint64 {
	return b.version
}

// Uploaded returns the version the renderer last acknowledged.
func (b *batchState) Uploaded() uint64 {
	return b.uploaded
}

// Acknowledge records that the renderer has consumed the current version.
func (b *batchState) Acknowledge() {
	b.uploaded = b.version
}

// InstanceBatch holds per-instance transforms for one ornament shape.
// Index i of every slice corresponds to the same instance.
type InstanceBatch struct {
	batchState
	Category Category
	Matrices []Mat4
	Colors   []Color
}

// NewInstanceBatch allocates a batch for n instances.
func NewInstanceBatch(c Category, n int) *InstanceBatch {
	b := &InstanceBatch{
		Category: c,
		Matrices: make([]Mat4, n),
		Colors:   make([]Color, n),
	}
	for i := range b.Matrices {
		b.Matrices[i] = Identity4
	}
	return b
}

// Len returns the number of instances.
func (b *InstanceBatch) Len() int {
	return len(b.Matrices)
}

// SetMatrixAt writes instance i's transform.
func (b *InstanceBatch) SetMatrixAt(i int, m Mat4) {
	b.Matrices[i] = m
}

// SetColorAt writes instance i's tint.
func (b *InstanceBatch) SetColorAt(i int, c Color) {
	b.Colors[i] = c
}

// PointBatch holds per-vertex attributes for a continuous particle field.
// Positions are packed xyz triples.
//
// Ebitengine has no programmable vertex stage, so the interpolation a GPU
// vertex shader would run is evaluated on the CPU and written here. Uniforms
// still carries the frame's clock and progress for consumers that read them.
type PointBatch struct {
	batchState
	Category  Category
	Positions []float32
	Colors    []Color
	Sizes     []float32
	Uniforms  Uniforms
	BlendMode BlendMode
}

// NewPointBatch allocates a batch for n points.
func NewPointBatch(c Category, n int) *PointBatch {
	return &PointBatch{
		Category:  c,
		Positions: make([]float32, n*3),
		Colors:    make([]Color, n),
		Sizes:     make([]float32, n),
	}
}

// Len returns the number of points.
func (b *PointBatch) Len() int {
	return len(b.Sizes)
}

// SetPositionAt writes point i's position.
func (b *PointBatch) SetPositionAt(i int, v Vec3) {
	b.Positions[i*3] = float32(v.X)
	b.Positions[i*3+1] = float32(v.Y)
	b.Positions[i*3+2] = float32(v.Z)
}

// PositionAt reads point i's position.
func (b *PointBatch) PositionAt(i int) Vec3 {
	return Vec3{
		X: float64(b.Positions[i*3]),
		Y: float64(b.Positions[i*3+1]),
		Z: float64(b.Positions[i*3+2]),
	}
}
