package choreo

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/showcase/pkg/geometry"
)

// Pose is a snapshot of everything the choreography moves
type Pose struct {
	Orientation    mgl64.Quat
	CameraPosition geometry.Vector3
	FOV            float64 // degrees
	OrbitTarget    geometry.Vector3
}

// Capture copies live state into a Pose. The orientation is normalized.
func Capture(orientation mgl64.Quat, camera geometry.Vector3, fov float64, target geometry.Vector3) Pose {
	return Pose{
		Orientation:    normalize(orientation),
		CameraPosition: camera,
		FOV:            fov,
		OrbitTarget:    target,
	}
}

// ApproxEqual compares two poses component-wise. q and -q are the same rotation.
func (p Pose) ApproxEqual(other Pose, eps float64) bool {
	a, b := p.Orientation, other.Orientation
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return a.ApproxEqualThreshold(b, eps) &&
		p.CameraPosition.ApproxEqual(other.CameraPosition, eps) &&
		math.Abs(p.FOV-other.FOV) <= eps &&
		p.OrbitTarget.ApproxEqual(other.OrbitTarget, eps)
}

// Ease is the quadratic ease-in-out curve. t is clamped to [0,1].
func Ease(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// Progress returns elapsed/duration clamped to [0,1]; a zero duration is complete
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	return clamp01(float64(elapsed) / float64(duration))
}

// Blend interpolates between two poses. Orientation uses shortest-arc slerp,
// everything else is linear. t outside [0,1] returns the nearest endpoint
// unchanged so the result never overshoots.
func Blend(from, to Pose, t float64) Pose {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	return Pose{
		Orientation:    Slerp(from.Orientation, to.Orientation, t),
		CameraPosition: from.CameraPosition.Lerp(to.CameraPosition, t),
		FOV:            from.FOV + (to.FOV-from.FOV)*t,
		OrbitTarget:    from.OrbitTarget.Lerp(to.OrbitTarget, t),
	}
}

// Slerp interpolates along the shorter of the two arcs between a and b
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	a, b = normalize(a), normalize(b)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return normalize(mgl64.QuatSlerp(a, b, t))
}

func normalize(q mgl64.Quat) mgl64.Quat {
	if q.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return q.Normalize()
}

func clamp01(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
