package evergreen

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/hajimehoshi/ebiten/v2"
)

// Vec3 is a 3D vector used for positions, rotations (Euler XYZ, radians) and
// directions throughout the API.
type Vec3 = r3.Vector

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time. Components above 1 are
// allowed for emissive tints and are clamped when converted to bytes.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Palette colors shared by the tree populations.
var (
	ColorEmerald    = hexColor(0x004225)
	ColorDeepGreen  = hexColor(0x013220)
	ColorGold       = hexColor(0xFFD700)
	ColorChampagne  = hexColor(0xF7E7CE)
	ColorRichRed    = hexColor(0x800020)
	ColorWhiteGlow  = hexColor(0xFFFFFF)
	ColorBackground = hexColor(0x050505)
)

func hexColor(v uint32) Color {
	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}
}

// Scale multiplies the RGB components by k, leaving alpha untouched.
func (c Color) Scale(k float64) Color {
	return Color{c.R * k, c.G * k, c.B * k, c.A}
}

// Mix linearly interpolates the RGB components towards o by t. Alpha is taken from c.
func (c Color) Mix(o Color, t float64) Color {
	return Color{
		R: lerp(c.R, o.R, t),
		G: lerp(c.G, o.G, t),
		B: lerp(c.B, o.B, t),
		A: c.A,
	}
}

// toRGBA converts to a premultiplied color.RGBA, clamping each channel.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: clampByte(c.R * c.A),
		G: clampByte(c.G * c.A),
		B: clampByte(c.B * c.A),
		A: clampByte(c.A),
	}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Range is a general-purpose min/max range, sampled by the generators.
type Range struct {
	Min, Max float64
}

// Sample returns a value in [Min, Max) drawn from rng.
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	default:
		return ebiten.BlendSourceOver
	}
}

// TreeState is the global target of every population: scattered or assembled.
type TreeState uint8

const (
	TreeChaos  TreeState = iota // entities drift at their chaos positions
	TreeFormed                  // entities sit at their cone positions
)

// Toggle returns the opposite state.
func (s TreeState) Toggle() TreeState {
	if s == TreeChaos {
		return TreeFormed
	}
	return TreeChaos
}

// Progress returns the progress value the integrators move towards:
// 0 for TreeChaos, 1 for TreeFormed.
func (s TreeState) Progress() float64 {
	if s == TreeFormed {
		return 1
	}
	return 0
}

func (s TreeState) String() string {
	if s == TreeFormed {
		return "FORMED"
	}
	return "CHAOS"
}

// ParseTreeState accepts "formed" or "chaos" in any case.
func ParseTreeState(s string) (TreeState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "formed":
		return TreeFormed, nil
	case "chaos":
		return TreeChaos, nil
	}
	return 0, fmt.Errorf("unknown tree state %q", s)
}

// Category determines which population, render batch and material an entity
// belongs to.
type Category uint8

const (
	CategoryFoliage Category = iota // tree-body point particle
	CategoryGift                    // heavy box ornament
	CategoryBauble                  // medium sphere ornament
	CategoryLight                   // light, fast glowing bead
	CategoryStar                    // tree topper
	CategorySnow                    // falling background flake
)

var categoryNames = [...]string{"foliage", "gift", "bauble", "light", "star", "snow"}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}
