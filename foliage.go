package evergreen

// Animator is a per-population update object. It exclusively owns its
// entities and progress state; Advance is called once per frame with the
// frame time, the scene clock and the global target.
type Animator interface {
	Advance(dt, clock float64, target TreeState)
}

// Foliage is the tree-body particle field. All particles share one progress
// value driven by a linear integrator and eased with smoothstep, so the
// whole cloud moves as one.
type Foliage struct {
	pop      Population
	progress *Integrator
	easing   Easing
	batch    *PointBatch
}

// NewFoliage creates the field and attaches a point batch sized to pop.
func NewFoliage(pop Population, policy Policy, rate float64) *Foliage {
	f := &Foliage{
		pop:      pop,
		progress: NewSharedIntegrator(policy, rate),
		easing:   EaseSmoothstep,
	}
	f.batch = NewPointBatch(CategoryFoliage, pop.Len())
	for i := range pop.Entities {
		f.batch.Sizes[i] = float32(pop.Entities[i].Size)
	}
	return f
}

// Population returns the generated particles. The returned value MUST NOT be mutated.
func (f *Foliage) Population() *Population {
	return &f.pop
}

// Batch returns the attached point batch, or nil when detached.
func (f *Foliage) Batch() *PointBatch {
	return f.batch
}

// Attach replaces the render batch. A nil batch makes Advance skip frames
// until a batch is attached again.
func (f *Foliage) Attach(b *PointBatch) {
	f.batch = b
}

// Progress returns the shared progress value.
func (f *Foliage) Progress() float64 {
	return f.progress.At(0)
}

// Integrator returns the shared integrator.
func (f *Foliage) Integrator() *Integrator {
	return f.progress
}

// Advance implements Animator.
func (f *Foliage) Advance(dt, clock float64, target TreeState) {
	b := f.batch
	if b == nil || b.Len() != f.pop.Len() {
		return
	}
	p := f.progress.AdvanceAt(0, dt, target)
	s := f.easing(p)
	for i := range f.pop.Entities {
		e := &f.pop.Entities[i]
		b.SetPositionAt(i, FoliagePosition(e, s, clock))
		b.Colors[i] = FoliageColor(e, clock)
	}
	b.Uniforms = Uniforms{Time: clock, Progress: p}
	b.MarkDirty()
}
