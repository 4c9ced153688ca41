package evergreen

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Orbit and zoom sensitivity.
const (
	orbitRadiansPerPixel = 0.005
	zoomUnitsPerNotch    = 1.0
)

// pointerState tracks the mouse between frames.
type pointerState struct {
	pressed      bool
	x, y         float64
	downOnButton bool
}

// pollInput reads real keyboard and mouse input. Only Update calls it, so
// scripted runs through Step stay deterministic. Frames that consumed an
// injected event skip it.
func (s *Scene) pollInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.Toggle()
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		s.camera.Zoom(-wy * zoomUnitsPerNotch)
	}
	cx, cy := ebiten.CursorPosition()
	s.processPointer(float64(cx), float64(cy), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// processPointer feeds one pointer sample through the button and orbit
// controls. A press and release over the button toggles the target; a drag
// that started elsewhere orbits the camera.
func (s *Scene) processPointer(x, y float64, pressed bool) {
	p := &s.pointer
	over := s.button.Contains(x, y)
	s.button.setHover(over)

	if pressed && !p.pressed {
		p.downOnButton = over
	}
	if p.pressed && !p.downOnButton {
		s.camera.Orbit(-(x-p.x)*orbitRadiansPerPixel, -(y-p.y)*orbitRadiansPerPixel)
	}
	if !pressed && p.pressed {
		if p.downOnButton && over {
			s.Toggle()
		}
		p.downOnButton = false
	}

	p.pressed = pressed
	p.x, p.y = x, y
}
