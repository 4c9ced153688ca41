package evergreen

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera defaults.
const (
	DefaultFOV         = 45 * math.Pi / 180
	DefaultMinDistance = 10
	DefaultMaxDistance = 40
	defaultNear        = 0.1
	defaultFar         = 200
)

// zoomAnim holds an active zoom-to tween.
type zoomAnim struct {
	tween *gween.Tween
	done  bool
}

// Camera is an orbit camera looking at Target. Yaw and Pitch place the eye on
// a sphere of radius Distance around it; panning is not supported.
type Camera struct {
	Target Vec3
	// Yaw is the rotation around the world Y axis in radians.
	Yaw float64
	// Pitch is the polar angle from +Y in radians. π/2 is level with the target.
	Pitch    float64
	Distance float64
	FOV      float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	MinDistance float64
	MaxDistance float64
	// MinPitch and MaxPitch clamp the polar angle. MaxPitch slightly past π/2
	// keeps the eye from dipping under the ground plane.
	MinPitch float64
	MaxPitch float64

	view     Mat4
	viewProj Mat4
	dirty    bool

	zoomTween *zoomAnim
}

// NewCamera creates a camera at (0, 2, 25) looking at the origin.
func NewCamera(viewport Rect) *Camera {
	c := &Camera{
		FOV:         DefaultFOV,
		Viewport:    viewport,
		MinDistance: DefaultMinDistance,
		MaxDistance: DefaultMaxDistance,
		MinPitch:    0.01,
		MaxPitch:    math.Pi/2 + 0.1,
		dirty:       true,
	}
	c.SetEye(Vec3{Y: 2, Z: 25})
	return c
}

// SetEye places the camera at eye, converting to orbit coordinates around Target.
func (c *Camera) SetEye(eye Vec3) {
	d := eye.Sub(c.Target)
	c.Distance = d.Norm()
	if c.Distance == 0 {
		c.Distance = c.MinDistance
		c.Pitch = math.Pi / 2
	} else {
		c.Pitch = math.Acos(d.Y / c.Distance)
	}
	c.Yaw = math.Atan2(d.X, d.Z)
	c.clamp()
	c.dirty = true
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() Vec3 {
	sinP, cosP := math.Sincos(c.Pitch)
	sinY, cosY := math.Sincos(c.Yaw)
	return c.Target.Add(Vec3{
		X: c.Distance * sinP * sinY,
		Y: c.Distance * cosP,
		Z: c.Distance * sinP * cosY,
	})
}

// Orbit rotates the camera by the given yaw and pitch deltas in radians.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	c.clamp()
	c.dirty = true
}

// Zoom moves the camera towards (negative delta) or away from the target.
// A manual zoom cancels any running ZoomTo.
func (c *Camera) Zoom(delta float64) {
	c.zoomTween = nil
	c.Distance += delta
	c.clamp()
	c.dirty = true
}

// ZoomTo animates the orbit distance to dist over duration seconds.
func (c *Camera) ZoomTo(dist float64, duration float32, easeFn ease.TweenFunc) {
	c.zoomTween = &zoomAnim{
		tween: gween.New(float32(c.Distance), float32(dist), duration, easeFn),
	}
}

// Zooming reports whether a ZoomTo tween is running.
func (c *Camera) Zooming() bool {
	return c.zoomTween != nil && !c.zoomTween.done
}

// update advances the zoom tween. Called from Scene.Step.
func (c *Camera) update(dt float32) {
	if c.zoomTween == nil {
		return
	}
	val, done := c.zoomTween.tween.Update(dt)
	c.Distance = float64(val)
	c.zoomTween.done = done
	if done {
		c.zoomTween = nil
	}
	c.clamp()
	c.dirty = true
}

func (c *Camera) clamp() {
	if c.MaxDistance > 0 {
		c.Distance = math.Min(math.Max(c.Distance, c.MinDistance), c.MaxDistance)
	}
	if c.MaxPitch > c.MinPitch {
		c.Pitch = math.Min(math.Max(c.Pitch, c.MinPitch), c.MaxPitch)
	}
}

// MarkDirty forces the view matrix to be recomputed on next use. Call this
// after setting fields directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

func (c *Camera) aspect() float64 {
	if c.Viewport.Height <= 0 {
		return 1
	}
	return c.Viewport.Width / c.Viewport.Height
}

// computeMatrices recomputes the view and view-projection matrices if dirty.
func (c *Camera) computeMatrices() {
	if !c.dirty {
		return
	}
	c.view = LookAt(c.Eye(), c.Target, Vec3{Y: 1})
	c.viewProj = Perspective(c.FOV, c.aspect(), defaultNear, defaultFar).Mul(c.view)
	c.dirty = false
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() Mat4 {
	c.computeMatrices()
	return c.view
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() Mat4 {
	c.computeMatrices()
	return c.viewProj
}

// Project maps a world point to viewport pixels. depth is the distance in
// front of the camera; ok is false for points behind the near plane.
func (c *Camera) Project(world Vec3) (x, y, depth float64, ok bool) {
	c.computeMatrices()
	clip, w := c.viewProj.MulPoint(world)
	if w <= defaultNear {
		return 0, 0, w, false
	}
	ndcX := clip.X / w
	ndcY := clip.Y / w
	x = c.Viewport.X + (ndcX+1)*0.5*c.Viewport.Width
	y = c.Viewport.Y + (1-ndcY)*0.5*c.Viewport.Height
	return x, y, w, true
}

// PixelsPerUnit returns how many pixels one world unit spans at the given
// view depth.
func (c *Camera) PixelsPerUnit(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return c.Viewport.Height / (2 * math.Tan(c.FOV/2) * depth)
}
