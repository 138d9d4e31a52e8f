package choreo

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/showcase/pkg/geometry"
)

// Bounder reports world-space bounds as if the model had the given orientation
type Bounder interface {
	Bounds(orientation mgl64.Quat) geometry.BoundingBox
}

// Locator finds the zoom target on the model's bounding box
type Locator struct {
	Axis          Axis
	Side          Side
	Tweak         geometry.Vector3
	FallbackTweak bool
}

// NewLocator builds a locator from the zoom configuration
func NewLocator(cfg ZoomConfig) Locator {
	return Locator{
		Axis:          cfg.Axis,
		Side:          cfg.Side,
		Tweak:         cfg.Tweak,
		FallbackTweak: cfg.FallbackTweak,
	}
}

// Locate returns the zoom target. Bounds are taken at the front orientation so
// the result does not depend on where the idle rotation currently is. Without
// a front orientation the current one is used instead.
func (l Locator) Locate(model Bounder, front *mgl64.Quat, current mgl64.Quat) geometry.Vector3 {
	orientation := current
	tweak := l.FallbackTweak
	if front != nil {
		orientation = *front
		tweak = true
	}

	bbox := model.Bounds(orientation)
	point := l.pick(bbox)
	if tweak {
		point = point.Add(l.Tweak)
	}
	return point
}

// pick places the point on the configured face, centered on the other two axes
func (l Locator) pick(bbox geometry.BoundingBox) geometry.Vector3 {
	axis := l.axisIndex(bbox)

	extent := bbox.Max.Component(axis)
	if l.Side == SideMin {
		extent = bbox.Min.Component(axis)
	}
	return bbox.Center().WithComponent(axis, extent)
}

func (l Locator) axisIndex(bbox geometry.BoundingBox) int {
	switch l.Axis {
	case AxisX:
		return 0
	case AxisY:
		return 1
	case AxisZ:
		return 2
	default:
		return bbox.LongestAxis()
	}
}
