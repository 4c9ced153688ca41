package evergreen

// ornamentBatch is one instanced shape: the population indices it draws and
// the batch it writes.
type ornamentBatch struct {
	category Category
	indices  []int
	batch    *InstanceBatch
}

// Ornaments animates gifts, baubles and lights. Every ornament tracks its own
// progress under the proportional policy, so heavy gifts trail the fast
// lights and the population disperses and converges over a spread of time.
type Ornaments struct {
	pop      Population
	progress *Integrator
	spin     []float64
	easing   Easing
	groups   [3]ornamentBatch
}

// ornamentCategories lists the instanced shapes in draw order.
var ornamentCategories = [3]Category{CategoryBauble, CategoryGift, CategoryLight}

// NewOrnaments splits pop into per-shape batches and seeds their colors.
// rate multiplies every entity's speed.
func NewOrnaments(pop Population, policy Policy, rate float64) *Ornaments {
	o := &Ornaments{
		pop:      pop,
		progress: NewIntegrator(policy, rate, pop.Speeds()),
		spin:     make([]float64, pop.Len()),
		easing:   EaseLinear,
	}
	for g, c := range ornamentCategories {
		grp := ornamentBatch{category: c}
		for i := range pop.Entities {
			if pop.Entities[i].Category == c {
				grp.indices = append(grp.indices, i)
			}
		}
		grp.batch = NewInstanceBatch(c, len(grp.indices))
		for j, idx := range grp.indices {
			grp.batch.SetColorAt(j, pop.Entities[idx].Color)
		}
		o.groups[g] = grp
	}
	return o
}

// Population returns the generated ornaments. The returned value MUST NOT be mutated.
func (o *Ornaments) Population() *Population {
	return &o.pop
}

// Integrator returns the per-entity integrator, indexed like Population().Entities.
func (o *Ornaments) Integrator() *Integrator {
	return o.progress
}

// Spin returns the accumulated spin angle of entity i.
func (o *Ornaments) Spin(i int) float64 {
	return o.spin[i]
}

// Batch returns the batch for one ornament category, or nil.
func (o *Ornaments) Batch(c Category) *InstanceBatch {
	for i := range o.groups {
		if o.groups[i].category == c {
			return o.groups[i].batch
		}
	}
	return nil
}

// Batches returns the non-nil batches in draw order.
func (o *Ornaments) Batches() []*InstanceBatch {
	out := make([]*InstanceBatch, 0, len(o.groups))
	for i := range o.groups {
		if o.groups[i].batch != nil {
			out = append(out, o.groups[i].batch)
		}
	}
	return out
}

// Attach replaces the batch for category c. A nil batch makes Advance skip
// that shape, including its progress, until a batch is attached again.
func (o *Ornaments) Attach(c Category, b *InstanceBatch) {
	for i := range o.groups {
		if o.groups[i].category == c {
			o.groups[i].batch = b
			return
		}
	}
}

// Advance implements Animator.
func (o *Ornaments) Advance(dt, clock float64, target TreeState) {
	for g := range o.groups {
		grp := &o.groups[g]
		b := grp.batch
		if b == nil || b.Len() != len(grp.indices) {
			continue
		}
		for j, idx := range grp.indices {
			e := &o.pop.Entities[idx]
			p := o.easing(o.progress.AdvanceAt(idx, dt, target))
			if dt > 0 {
				o.spin[idx] += dt * OrnamentSpinRate(e, p)
			}
			b.SetMatrixAt(j, OrnamentPose(e, p, clock, o.spin[idx]).Matrix())
		}
		b.MarkDirty()
	}
}
