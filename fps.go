package evergreen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often the FPS widget redraws its text, in seconds.
const fpsRefresh = 0.5

// fpsWidget displays the current FPS and TPS in the top-left corner.
type fpsWidget struct {
	img     *ebiten.Image
	elapsed float64
	text    string
}

func newFPSWidget() *fpsWidget {
	return &fpsWidget{text: "FPS: -\nTPS: -"}
}

func (w *fpsWidget) update(dt float64) {
	w.elapsed += dt
	if w.elapsed < fpsRefresh {
		return
	}
	w.elapsed = 0
	w.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if w.img != nil {
		w.redraw()
	}
}

func (w *fpsWidget) redraw() {
	w.img.Clear()
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, w.text)
}

func (w *fpsWidget) draw(screen *ebiten.Image) {
	if w.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		w.img = ebiten.NewImage(100, 32)
		w.redraw()
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(8, 8)
	screen.DrawImage(w.img, &op)
}
