package evergreen

// Snow is the falling background field. It ignores the tree target.
type Snow struct {
	pop   Population
	box   SnowBox
	batch *PointBatch
}

// NewSnow creates the snow field and its additive point batch.
func NewSnow(pop Population, box SnowBox) *Snow {
	s := &Snow{pop: pop, box: box, batch: NewPointBatch(CategorySnow, pop.Len())}
	s.batch.BlendMode = BlendAdd
	for i := range pop.Entities {
		s.batch.Sizes[i] = float32(pop.Entities[i].Size)
		s.batch.Colors[i] = Color{1, 1, 1, 0.8}
	}
	return s
}

// Batch returns the attached batch, or nil when detached.
func (s *Snow) Batch() *PointBatch {
	return s.batch
}

// Attach replaces the render batch. A nil batch makes Advance skip frames.
func (s *Snow) Attach(b *PointBatch) {
	s.batch = b
}

// Advance implements Animator.
func (s *Snow) Advance(dt, clock float64, _ TreeState) {
	b := s.batch
	if b == nil || b.Len() != s.pop.Len() {
		return
	}
	for i := range s.pop.Entities {
		b.SetPositionAt(i, SnowPosition(&s.pop.Entities[i], s.box, clock))
	}
	b.Uniforms.Time = clock
	b.MarkDirty()
}
