package evergreen

import (
	"math"
	"math/rand/v2"
)

// ConeShape describes the formed distribution of a tree-body population.
type ConeShape struct {
	Height float64
	Radius float64
	// Bias is the exponent applied to the sampled height. Values below 1 pull
	// samples towards the base. 0 is treated as 1.
	Bias float64
	// SpiralTurns rotates the sampled angle by h*2π*SpiralTurns. Zero disables
	// the spiral.
	SpiralTurns float64
	// RadiusScale shrinks the cone radius so entities sit on or inside the
	// foliage surface. 0 is treated as 1.
	RadiusScale float64
	// Surface places entities on the cone surface instead of sampling the
	// disk at each height.
	Surface bool
}

// FoliageCone returns the cone used for the foliage particles.
func FoliageCone(height, radius float64) ConeShape {
	return ConeShape{Height: height, Radius: radius, Bias: 0.8}
}

// OrnamentCone returns the helical cone used for ornament placement.
func OrnamentCone(height, radius float64) ConeShape {
	return ConeShape{
		Height:      height,
		Radius:      radius,
		Bias:        1,
		SpiralTurns: 5,
		RadiusScale: 0.9,
		Surface:     true,
	}
}

// Sample draws one target position from the cone.
//
// The height is biased as h^Bias and mapped to y = hb*Height - Height/2, so the
// shape is centered vertically. The radius at that height is (1-hb)*Radius.
func (c ConeShape) Sample(rng *rand.Rand) Vec3 {
	h := rng.Float64()
	bias := c.Bias
	if bias == 0 {
		bias = 1
	}
	hb := math.Pow(h, bias)
	scale := c.RadiusScale
	if scale == 0 {
		scale = 1
	}
	r := (1 - hb) * c.Radius * scale
	angle := rng.Float64() * 2 * math.Pi
	if !c.Surface {
		r *= math.Sqrt(rng.Float64())
	}
	angle += h * 2 * math.Pi * c.SpiralTurns
	sin, cos := math.Sincos(angle)
	return Vec3{
		X: cos * r,
		Y: hb*c.Height - c.Height/2,
		Z: sin * r,
	}
}

// SampleBall returns a point uniformly distributed inside a sphere of the
// given radius. The cube-root radial transform keeps volume density uniform.
func SampleBall(rng *rand.Rand, radius float64) Vec3 {
	dir := sampleDirection(rng)
	return dir.Mul(math.Cbrt(rng.Float64()) * radius)
}

// SampleSphere returns a point uniformly distributed on a sphere surface.
func SampleSphere(rng *rand.Rand, radius float64) Vec3 {
	return sampleDirection(rng).Mul(radius)
}

func sampleDirection(rng *rand.Rand) Vec3 {
	theta := 2 * math.Pi * rng.Float64()
	phi := math.Acos(2*rng.Float64() - 1)
	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return Vec3{
		X: sinPhi * cosTheta,
		Y: sinPhi * sinTheta,
		Z: cosPhi,
	}
}

// SampleCube returns a scattered point for ornaments: a random extent in
// [0, radius) is drawn first, then each axis is sampled independently inside
// the cube of that half-size.
func SampleCube(rng *rand.Rand, radius float64) Vec3 {
	r := rng.Float64() * radius
	return Vec3{
		X: (rng.Float64() - 0.5) * 2 * r,
		Y: (rng.Float64() - 0.5) * 2 * r,
		Z: (rng.Float64() - 0.5) * 2 * r,
	}
}

// NewRand returns the deterministic source used by all generators. Equal
// seeds produce identical populations.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// GenerateFoliage builds the foliage particle field. Target positions fill
// the biased cone, chaos positions fill a ball of chaosRadius.
func GenerateFoliage(rng *rand.Rand, count int, cone ConeShape, chaosRadius float64) Population {
	pop := Population{Category: CategoryFoliage, Entities: make([]Entity, count)}
	size := Range{1.5, 5.5}
	for i := range pop.Entities {
		target := cone.Sample(rng)
		chaos := SampleBall(rng, chaosRadius)
		pop.Entities[i] = Entity{
			ID:       i,
			Category: CategoryFoliage,
			Position: DualPosition{Chaos: chaos, Target: target},
			Speed:    1,
			Seed:     rng.Float64(),
			Scale:    1,
			Size:     size.Sample(rng),
		}
	}
	return pop
}

// ornamentKind holds the per-category sampling ranges for ornaments.
type ornamentKind struct {
	category Category
	share    float64 // cumulative upper bound of the category draw
	speed    Range
	scale    Range
	colors   [2]Color
	altShare float64 // probability of colors[1]
}

var ornamentKinds = [...]ornamentKind{
	{CategoryGift, 0.2, Range{0.5, 0.8}, Range{0.4, 0.7}, [2]Color{ColorGold, ColorRichRed}, 0.5},
	{CategoryBauble, 0.6, Range{1.0, 1.5}, Range{0.3, 0.5}, [2]Color{ColorGold, ColorChampagne}, 0.3},
	{CategoryLight, 1.0, Range{2.0, 3.0}, Range{0.15, 0.15}, [2]Color{ColorWhiteGlow, ColorWhiteGlow}, 0},
}

// GenerateOrnaments builds the ornament population: 20% heavy gifts, 40%
// baubles and 40% fast lights. Chaos positions use per-axis cube sampling.
func GenerateOrnaments(rng *rand.Rand, count int, cone ConeShape, chaosRadius float64) Population {
	pop := Population{Category: CategoryBauble, Entities: make([]Entity, count)}
	for i := range pop.Entities {
		draw := rng.Float64()
		kind := &ornamentKinds[len(ornamentKinds)-1]
		for k := range ornamentKinds {
			if draw < ornamentKinds[k].share {
				kind = &ornamentKinds[k]
				break
			}
		}
		speed := kind.speed.Sample(rng)
		col := kind.colors[0]
		if kind.altShare > 0 && rng.Float64() < kind.altShare {
			col = kind.colors[1]
		}
		scale := kind.scale.Sample(rng)

		target := cone.Sample(rng)
		chaos := SampleCube(rng, chaosRadius)

		pop.Entities[i] = Entity{
			ID:            i,
			Category:      kind.category,
			Position:      DualPosition{Chaos: chaos, Target: target},
			Speed:         speed,
			Seed:          rng.Float64(),
			Scale:         scale,
			Size:          scale,
			RotationSpeed: rng.Float64() * 2,
			InitialRotation: Vec3{
				X: rng.Float64() * math.Pi,
				Y: rng.Float64() * math.Pi,
			},
			Color: col,
		}
	}
	return pop
}

// GenerateStar builds the single-entity star population. It rests just above
// the apex of a tree of the given height and scatters to the surface of a
// sphere at 0.8*chaosRadius.
func GenerateStar(rng *rand.Rand, treeHeight, chaosRadius float64) Population {
	return Population{
		Category: CategoryStar,
		Entities: []Entity{{
			ID:       0,
			Category: CategoryStar,
			Position: DualPosition{
				Chaos:  SampleSphere(rng, chaosRadius*0.8),
				Target: Vec3{Y: treeHeight/2 + 0.5},
			},
			Speed: 1,
			Seed:  rng.Float64(),
			Scale: 1,
			Color: ColorGold,
		}},
	}
}

// SnowBox is the volume snowflakes fall through.
type SnowBox struct {
	Range  float64 // horizontal extent on X and Z
	Height float64 // vertical extent; flakes wrap around inside it
}

// DefaultSnowBox is the 40x40x40 volume centered on the origin.
var DefaultSnowBox = SnowBox{Range: 40, Height: 40}

// GenerateSnow builds the snow field. Snow has no formed shape, so both
// endpoints hold the flake's spawn point and Speed is its fall speed.
func GenerateSnow(rng *rand.Rand, count int, box SnowBox) Population {
	pop := Population{Category: CategorySnow, Entities: make([]Entity, count)}
	speed := Range{1, 2}
	size := Range{0.5, 2}
	for i := range pop.Entities {
		p := Vec3{
			X: (rng.Float64() - 0.5) * box.Range,
			Y: (rng.Float64() - 0.5) * box.Height,
			Z: (rng.Float64() - 0.5) * box.Range,
		}
		pop.Entities[i] = Entity{
			ID:       i,
			Category: CategorySnow,
			Position: DualPosition{Chaos: p, Target: p},
			Speed:    speed.Sample(rng),
			Seed:     rng.Float64(),
			Scale:    1,
			Size:     size.Sample(rng),
			Color:    ColorWhite,
		}
	}
	return pop
}
