package evergreen

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Title is drawn at the top of the screen.
const Title = "The Grand Luxury Tree"

// Button labels, by current target.
const (
	LabelRestoreOrder = "RESTORE ORDER"
	LabelUnleashChaos = "UNLEASH CHAOS"
)

const (
	buttonWidth    = 220
	buttonHeight   = 48
	buttonMargin   = 48
	glowFadeTime   = 0.25
	debugGlyphW    = 6
	debugGlyphH    = 16
	titleTopMargin = 24
)

// ToggleButton is the bottom-center control that flips the global target.
type ToggleButton struct {
	hit   Rect
	hover bool
	glow  float32
	tween *gween.Tween
}

func newToggleButton() *ToggleButton {
	b := &ToggleButton{}
	b.layout(Rect{Width: 1280, Height: 720})
	return b
}

// ButtonLabel returns the text shown for the given target.
func ButtonLabel(target TreeState) string {
	if target == TreeChaos {
		return LabelRestoreOrder
	}
	return LabelUnleashChaos
}

// Bounds returns the button's hit rectangle in screen pixels.
func (b *ToggleButton) Bounds() Rect { return b.hit }

// Contains reports whether the screen point lies on the button.
func (b *ToggleButton) Contains(x, y float64) bool { return b.hit.Contains(x, y) }

// Hovered reports whether the pointer is over the button.
func (b *ToggleButton) Hovered() bool { return b.hover }

// Glow returns the hover glow intensity in [0, 1].
func (b *ToggleButton) Glow() float32 { return b.glow }

// setHover starts a glow fade when the hover state changes.
func (b *ToggleButton) setHover(h bool) {
	if h == b.hover {
		return
	}
	b.hover = h
	to := float32(0)
	if h {
		to = 1
	}
	b.tween = gween.New(b.glow, to, glowFadeTime, ease.OutQuad)
}

func (b *ToggleButton) update(dt float32) {
	if b.tween == nil {
		return
	}
	val, done := b.tween.Update(dt)
	b.glow = val
	if done {
		b.tween = nil
	}
}

// layout centers the button horizontally near the bottom of vp.
func (b *ToggleButton) layout(vp Rect) {
	b.hit = Rect{
		X:      vp.X + (vp.Width-buttonWidth)/2,
		Y:      vp.Y + vp.Height - buttonHeight - buttonMargin,
		Width:  buttonWidth,
		Height: buttonHeight,
	}
}

func (b *ToggleButton) draw(screen *ebiten.Image, target TreeState) {
	x, y := float32(b.hit.X), float32(b.hit.Y)
	w, h := float32(b.hit.Width), float32(b.hit.Height)

	if b.glow > 0 {
		halo := ColorGold
		halo.A = 0.35 * float64(b.glow)
		vector.DrawFilledRect(screen, x-6, y-6, w+12, h+12, halo.toRGBA(), true)
	}
	vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{0, 0, 0, 200}, true)
	vector.StrokeRect(screen, x, y, w, h, 2, ColorGold.toRGBA(), true)

	label := ButtonLabel(target)
	tx := int(b.hit.X + (b.hit.Width-float64(len(label)*debugGlyphW))/2)
	ty := int(b.hit.Y + (b.hit.Height-debugGlyphH)/2)
	ebitenutil.DebugPrintAt(screen, label, tx, ty)
}

// drawTitle prints the title centered at the top of vp.
func drawTitle(screen *ebiten.Image, vp Rect) {
	x := int(vp.X + (vp.Width-float64(len(Title)*debugGlyphW))/2)
	ebitenutil.DebugPrintAt(screen, Title, x, int(vp.Y)+titleTopMargin)
}
