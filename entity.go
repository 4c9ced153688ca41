package evergreen

// AccentThreshold is the seed at or above which a foliage particle is drawn
// as a gold tip instead of needle green.
const AccentThreshold = 0.95

// DualPosition holds the two fixed endpoints of an entity's interpolation.
type DualPosition struct {
	Chaos  Vec3
	Target Vec3
}

// Entity is one animated unit: a foliage particle, an ornament instance, the
// star or a snowflake. Entities are built once by a generator and never
// mutated afterwards; animation state lives in the owning population.
type Entity struct {
	// ID is the entity's stable index within its population. It indexes the
	// population's progress array and phases secondary motion.
	ID       int
	Category Category
	Position DualPosition
	// Speed scales how fast progress moves towards the target. Heavier
	// entities have lower speeds and lag behind.
	Speed float64
	// Seed is a value in [0, 1) that phases secondary motion and selects the
	// accent variant.
	Seed  float64
	Scale float64
	// Size is the point size for particle fields, in world-relative pixels.
	Size            float64
	RotationSpeed   float64
	InitialRotation Vec3
	Color           Color
}

// Accent reports whether the entity is rendered as the highlight variant.
func (e *Entity) Accent() bool {
	return e.Seed >= AccentThreshold
}

// Population is an ordered, fixed-size collection of entities sharing one
// category. The ornament population mixes gifts, baubles and lights under
// CategoryBauble; its entities are split by their own Category when emitted.
type Population struct {
	Category Category
	Entities []Entity
}

// Len returns the number of entities.
func (p *Population) Len() int {
	return len(p.Entities)
}

// Speeds returns a freshly allocated slice of per-entity speeds, in entity order.
func (p *Population) Speeds() []float64 {
	out := make([]float64, len(p.Entities))
	for i := range p.Entities {
		out[i] = p.Entities[i].Speed
	}
	return out
}

// Filter returns the entities of the given category, preserving order and IDs.
func (p *Population) Filter(c Category) []Entity {
	var out []Entity
	for i := range p.Entities {
		if p.Entities[i].Category == c {
			out = append(out, p.Entities[i])
		}
	}
	return out
}
