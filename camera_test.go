package evergreen

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestNewCameraEye(t *testing.T) {
	cam := NewCamera(Rect{Width: 1280, Height: 720})
	if eye := cam.Eye(); !vecNear(eye, Vec3{Y: 2, Z: 25}, 1e-9) {
		t.Errorf("Eye = %v, want (0, 2, 25)", eye)
	}
}

func TestCameraProjectCenter(t *testing.T) {
	cam := NewCamera(Rect{Width: 1280, Height: 720})
	x, y, depth, ok := cam.Project(cam.Target)
	if !ok {
		t.Fatal("target not visible")
	}
	if math.Abs(x-640) > 1e-6 || math.Abs(y-360) > 1e-6 {
		t.Errorf("target projects to (%v, %v), want viewport center", x, y)
	}
	if math.Abs(depth-cam.Distance) > 1e-9 {
		t.Errorf("depth = %v, want %v", depth, cam.Distance)
	}
	if _, _, _, ok := cam.Project(Vec3{Y: 2, Z: 40}); ok {
		t.Error("point behind the camera reported visible")
	}
}

func TestCameraProjectAbove(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	_, yHigh, _, _ := cam.Project(Vec3{Y: 5})
	_, yLow, _, _ := cam.Project(Vec3{Y: -5})
	if !(yHigh < yLow) {
		t.Errorf("higher point at y=%v, lower at y=%v; screen Y should grow downward", yHigh, yLow)
	}
}

func TestCameraClamp(t *testing.T) {
	cam := NewCamera(Rect{Width: 100, Height: 100})
	cam.Zoom(-100)
	if cam.Distance != DefaultMinDistance {
		t.Errorf("Distance = %v, want %v", cam.Distance, float64(DefaultMinDistance))
	}
	cam.Zoom(1000)
	if cam.Distance != DefaultMaxDistance {
		t.Errorf("Distance = %v, want %v", cam.Distance, float64(DefaultMaxDistance))
	}
	cam.Orbit(0, 10)
	if cam.Pitch != cam.MaxPitch {
		t.Errorf("Pitch = %v, want %v", cam.Pitch, cam.MaxPitch)
	}
	cam.Orbit(0, -10)
	if cam.Pitch != cam.MinPitch {
		t.Errorf("Pitch = %v, want %v", cam.Pitch, cam.MinPitch)
	}
}

func TestCameraZoomTo(t *testing.T) {
	cam := NewCamera(Rect{Width: 100, Height: 100})
	cam.ZoomTo(15, 1, ease.Linear)
	if !cam.Zooming() {
		t.Fatal("Zooming() = false after ZoomTo")
	}
	cam.update(0.5)
	mid := cam.Distance
	if mid >= 25.1 || mid <= 15 {
		t.Errorf("Distance halfway = %v", mid)
	}
	cam.update(0.5)
	if cam.Zooming() || math.Abs(cam.Distance-15) > 1e-4 {
		t.Errorf("after tween: Zooming %v, Distance %v", cam.Zooming(), cam.Distance)
	}
}

func TestCameraZoomCancelsTween(t *testing.T) {
	cam := NewCamera(Rect{Width: 100, Height: 100})
	cam.ZoomTo(15, 1, ease.Linear)
	cam.Zoom(2)
	if cam.Zooming() {
		t.Error("manual Zoom did not cancel ZoomTo")
	}
}

func TestPixelsPerUnit(t *testing.T) {
	cam := NewCamera(Rect{Width: 100, Height: 720})
	if got := cam.PixelsPerUnit(0); got != 0 {
		t.Errorf("PixelsPerUnit(0) = %v", got)
	}
	if a, b := cam.PixelsPerUnit(10), cam.PixelsPerUnit(20); math.Abs(a-2*b) > 1e-9 {
		t.Errorf("PixelsPerUnit not inverse to depth: %v, %v", a, b)
	}
}
