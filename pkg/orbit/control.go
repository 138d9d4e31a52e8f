// Package orbit implements a damped orbit camera control.
package orbit

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/philipparndt/showcase/pkg/geometry"
)

const (
	// keep the camera off the poles
	maxPitch = math.Pi/2 - 0.1
	// velocities below this are treated as stopped
	restVelocity = 1e-6
)

// axis is one damped degree of freedom
type axis struct {
	velocity float64
	accel    float64
}

func (a *axis) settle(spring harmonica.Spring) {
	a.velocity, a.accel = spring.Update(a.velocity, a.accel, 0)
	if math.Abs(a.velocity) < restVelocity && math.Abs(a.accel) < restVelocity {
		a.velocity, a.accel = 0, 0
	}
}

func (a *axis) stop() {
	a.velocity, a.accel = 0, 0
}

func (a axis) moving() bool {
	return a.velocity != 0
}

// Control orbits a camera around Target. Drag input adds angular velocity
// that decays smoothly on every Update.
type Control struct {
	Target geometry.Vector3

	RotateSpeed float64 // radians per pixel of drag
	ZoomSpeed   float64
	MinDistance float64
	MaxDistance float64

	enabled  bool
	dragging bool
	spring   harmonica.Spring

	yaw, pitch, zoom axis

	onStart func()
	onEnd   func()
}

// New creates an enabled control updated at fps frames per second
func New(target geometry.Vector3, fps int) *Control {
	return &Control{
		Target:      target,
		RotateSpeed: 0.005,
		ZoomSpeed:   0.001,
		MinDistance: 0.01,
		MaxDistance: math.MaxFloat64,
		enabled:     true,
		// critically damped so the camera never swings back
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// OnStart registers the callback fired when a drag begins
func (c *Control) OnStart(fn func()) { c.onStart = fn }

// OnEnd registers the callback fired when a drag ends
func (c *Control) OnEnd(fn func()) { c.onEnd = fn }

// Enabled reports whether user input moves the camera
func (c *Control) Enabled() bool { return c.enabled }

// SetEnabled toggles user input. Disabling drops any remaining momentum.
func (c *Control) SetEnabled(enabled bool) {
	c.enabled = enabled
	if !enabled {
		c.yaw.stop()
		c.pitch.stop()
		c.zoom.stop()
	}
}

// Dragging reports whether a drag is in progress
func (c *Control) Dragging() bool { return c.dragging }

// BeginDrag starts a drag. The start callback fires even while disabled so
// listeners can take control back from an animation.
func (c *Control) BeginDrag() {
	if c.dragging {
		return
	}
	c.dragging = true
	if c.onStart != nil {
		c.onStart()
	}
}

// Drag feeds pointer movement in pixels
func (c *Control) Drag(dx, dy float64) {
	if !c.enabled || !c.dragging {
		return
	}
	c.yaw.velocity -= dx * c.RotateSpeed
	c.pitch.velocity += dy * c.RotateSpeed
}

// EndDrag finishes a drag and fires the end callback
func (c *Control) EndDrag() {
	if !c.dragging {
		return
	}
	c.dragging = false
	if c.onEnd != nil {
		c.onEnd()
	}
}

// Scroll zooms towards or away from the target
func (c *Control) Scroll(delta float64) {
	if !c.enabled {
		return
	}
	c.zoom.velocity += delta * c.ZoomSpeed
}

// Moving reports whether momentum is still being applied
func (c *Control) Moving() bool {
	return c.yaw.moving() || c.pitch.moving() || c.zoom.moving()
}

// Update applies one frame of momentum to the camera position and returns
// the new position. With no momentum the position is returned unchanged.
func (c *Control) Update(position geometry.Vector3) geometry.Vector3 {
	if !c.enabled || !c.Moving() {
		return position
	}

	offset := position.Sub(c.Target)
	radius := offset.Length()
	if radius == 0 {
		c.yaw.stop()
		c.pitch.stop()
		c.zoom.stop()
		return position
	}

	yaw := math.Atan2(offset.X, offset.Z) + c.yaw.velocity
	pitch := math.Asin(clamp(offset.Y/radius, -1, 1)) + c.pitch.velocity
	pitch = clamp(pitch, -maxPitch, maxPitch)
	radius = clamp(radius*(1+c.zoom.velocity), c.MinDistance, c.MaxDistance)

	c.yaw.settle(c.spring)
	c.pitch.settle(c.spring)
	c.zoom.settle(c.spring)

	return c.Target.Add(geometry.NewVector3(
		radius*math.Cos(pitch)*math.Sin(yaw),
		radius*math.Sin(pitch),
		radius*math.Cos(pitch)*math.Cos(yaw),
	))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
