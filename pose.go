package evergreen

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Easing maps raw progress in [0, 1] to the interpolation fraction. Every
// Easing must return exactly 0 at 0 and exactly 1 at 1.
type Easing func(p float64) float64

// Smoothstep is the cubic p²(3-2p): zero velocity at both endpoints.
func Smoothstep(p float64) float64 {
	return p * p * (3 - 2*p)
}

// EaseSmoothstep applies Smoothstep. Used where the integrator is linear and
// the easing has to come from the pose.
var EaseSmoothstep Easing = Smoothstep

// EaseLinear passes progress through unchanged. Used where the integrator
// already eases (the proportional policy) or where linear travel is wanted.
var EaseLinear Easing = func(p float64) float64 { return p }

// EaseFrom adapts a gween easing function. The endpoints are pinned so the
// float32 round trip cannot move them.
func EaseFrom(fn ease.TweenFunc) Easing {
	return func(p float64) float64 {
		if p <= 0 {
			return 0
		}
		if p >= 1 {
			return 1
		}
		return float64(fn(float32(p), 0, 1, 1))
	}
}

// lerp interpolates between a and b. The a*(1-t)+b*t form returns a and b
// exactly at t=0 and t=1.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Lerp interpolates between two points component-wise.
func Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{X: lerp(a.X, b.X, t), Y: lerp(a.Y, b.Y, t), Z: lerp(a.Z, b.Z, t)}
}

// BasePosition interpolates between the chaos and target endpoints at
// progress p after applying easing. A nil easing is linear.
func BasePosition(dp DualPosition, p float64, easing Easing) Vec3 {
	if easing != nil {
		p = easing(p)
	}
	return Lerp(dp.Chaos, dp.Target, p)
}

// Pose is a synthesized transform for one entity.
type Pose struct {
	Position Vec3
	Rotation Vec3 // Euler XYZ, radians
	Scale    float64
}

// Matrix composes Translate * RotateXYZ * Scale.
func (p Pose) Matrix() Mat4 {
	return Compose(p.Position, p.Rotation, p.Scale)
}

// Foliage tuning.
const (
	foliageWindSpeed  = 1.5
	foliageWindAmp    = 0.08
	foliageWobbleAmp  = 0.5
	foliageSparkleAmp = 0.3
	foliageAccentGain = 1.5
)

var (
	foliageGreen      = Color{0.0, 0.18, 0.08, 1}
	foliageGreenLight = Color{0.02, 0.25, 0.12, 1}
	foliageGold       = Color{1.0, 0.75, 0.1, 1}
)

// FoliagePosition returns a foliage particle's position at eased progress s
// and clock t. Wind sways the formed tree; the chaos wobble keeps the
// scattered cloud alive. Both fade with s.
func FoliagePosition(e *Entity, s, t float64) Vec3 {
	pos := Lerp(e.Position.Chaos, e.Position.Target, s)
	wind := math.Sin(t*foliageWindSpeed+pos.Y*0.5+e.Seed*10) * foliageWindAmp * s
	pos.X += wind
	pos.Z += wind
	wobble := math.Sin(t*0.5+e.Seed*100) * foliageWobbleAmp * (1 - s)
	pos.X += wobble
	pos.Y += wobble
	pos.Z += wobble
	return pos
}

// FoliageBaseColor returns a particle's unlit color. It depends only on the
// seed, so the accent assignment never changes.
func FoliageBaseColor(e *Entity) Color {
	if e.Accent() {
		return foliageGold
	}
	return foliageGreen.Mix(foliageGreenLight, e.Seed*0.5)
}

// FoliageColor returns the base color modulated by the seed-phased sparkle.
// Accent particles sparkle harder.
func FoliageColor(e *Entity, t float64) Color {
	sparkle := 0.8 + foliageSparkleAmp*math.Sin(t*3+e.Seed*50)
	if e.Accent() {
		sparkle *= foliageAccentGain
	}
	return FoliageBaseColor(e).Scale(sparkle)
}

const (
	ornamentFloatAmp  = 0.02
	ornamentSpinScale = 0.1
)

// OrnamentSpinRate returns an ornament's spin speed in radians per second on
// the x and y axes. It falls to 0 as the ornament forms.
func OrnamentSpinRate(e *Entity, p float64) float64 {
	return e.RotationSpeed * ornamentSpinScale * (1 - p)
}

// OrnamentPose returns an ornament's transform at progress p and clock t.
// spin is the angle accumulated from OrnamentSpinRate. Ornaments float in
// chaos and hold still when formed.
func OrnamentPose(e *Entity, p, t, spin float64) Pose {
	pos := Lerp(e.Position.Chaos, e.Position.Target, p)
	id := float64(e.ID)
	fade := 1 - p
	pos.Y += math.Sin(t*e.Speed+id) * ornamentFloatAmp * fade
	pos.X += math.Cos(t*0.5+id) * ornamentFloatAmp * fade

	rot := e.InitialRotation
	rot.X += spin
	rot.Y += spin

	return Pose{Position: pos, Rotation: rot, Scale: e.Scale}
}

const (
	starFloatAmp    = 0.5
	starChaosSpin   = 2.0
	starFormedSpin  = 0.5
	starTiltAmp     = 0.1
	starPopStrength = 0.2
)

// StarSpinRate returns the star's spin speed in radians per second: fast in
// chaos, a slow drift when formed.
func StarSpinRate(p float64) float64 {
	return starChaosSpin*(1-p) + starFormedSpin*p
}

// PopScale bulges scale at the midpoint of a transition:
// 1 + sin(p*π)*k. It is exactly 1 at both endpoints.
func PopScale(p, k float64) float64 {
	if p <= 0 || p >= 1 {
		return 1
	}
	return 1 + math.Sin(p*math.Pi)*k
}

// StarPose returns the star's transform at progress p and clock t. spin is
// the accumulated Y rotation owned by the star population.
func StarPose(e *Entity, p, t, spin float64) Pose {
	pos := Lerp(e.Position.Chaos, e.Position.Target, p)
	if p < 1 {
		pos.Y += math.Sin(t) * starFloatAmp * (1 - p)
		pos.X += math.Cos(t) * starFloatAmp * (1 - p)
	}
	return Pose{
		Position: pos,
		Rotation: Vec3{Y: spin, Z: math.Sin(t*0.5) * starTiltAmp},
		Scale:    e.Scale * PopScale(p, starPopStrength),
	}
}

// SnowPosition returns a flake's position at clock t. Flakes fall at twice
// their speed and wrap around inside the box.
func SnowPosition(e *Entity, box SnowBox, t float64) Vec3 {
	pos := e.Position.Chaos
	pos.Y = glslMod(pos.Y-t*e.Speed*2, box.Height) - box.Height/2
	pos.X += math.Sin(t*0.5+e.Seed*10) * 0.5
	pos.Z += math.Cos(t*0.3+e.Seed*5) * 0.2
	return pos
}

// glslMod is x - y*floor(x/y): the result takes the sign of y.
func glslMod(x, y float64) float64 {
	if y == 0 {
		return 0
	}
	return x - y*math.Floor(x/y)
}
