package evergreen

// Star is the tree topper: a single heavy entity moving at a constant rate,
// spinning fast while scattered and popping in scale mid-flight.
type Star struct {
	pop      Population
	progress *Integrator
	spin     float64
	batch    *InstanceBatch
}

// NewStar creates the star population around its single entity.
func NewStar(pop Population, policy Policy, rate float64) *Star {
	s := &Star{
		pop:      pop,
		progress: NewIntegrator(policy, rate, pop.Speeds()),
		batch:    NewInstanceBatch(CategoryStar, pop.Len()),
	}
	for i := range pop.Entities {
		s.batch.SetColorAt(i, pop.Entities[i].Color)
	}
	return s
}

// Population returns the star population. The returned value MUST NOT be mutated.
func (s *Star) Population() *Population {
	return &s.pop
}

// Batch returns the attached batch, or nil when detached.
func (s *Star) Batch() *InstanceBatch {
	return s.batch
}

// Attach replaces the render batch. A nil batch makes Advance skip frames.
func (s *Star) Attach(b *InstanceBatch) {
	s.batch = b
}

// Progress returns the star's progress.
func (s *Star) Progress() float64 {
	if s.progress.Len() == 0 {
		return 0
	}
	return s.progress.At(0)
}

// Spin returns the accumulated Y rotation in radians.
func (s *Star) Spin() float64 {
	return s.spin
}

// Advance implements Animator.
func (s *Star) Advance(dt, clock float64, target TreeState) {
	b := s.batch
	if b == nil || b.Len() != s.pop.Len() || s.pop.Len() == 0 {
		return
	}
	p := s.progress.AdvanceAt(0, dt, target)
	if dt > 0 {
		s.spin += dt * StarSpinRate(p)
	}
	b.SetMatrixAt(0, StarPose(&s.pop.Entities[0], p, clock, s.spin).Matrix())
	b.MarkDirty()
}
