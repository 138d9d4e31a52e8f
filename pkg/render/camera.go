package render

import (
	"math"

	"github.com/philipparndt/showcase/pkg/geometry"
)

// Camera is a perspective camera looking at Target
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // vertical field of view in degrees
	Near     float64
}

// NewCamera creates a camera framing a bounding box from the given direction.
// The distance is chosen so the largest dimension fits the field of view.
func NewCamera(bbox geometry.BoundingBox, direction geometry.Vector3, fov float64) *Camera {
	center := bbox.Center()
	radius := bbox.Diagonal() / 2
	if radius == 0 {
		radius = 1
	}
	distance := radius / math.Tan(fov*math.Pi/360) * 1.1

	dir := direction.Normalize()
	if dir == (geometry.Vector3{}) {
		dir = geometry.NewVector3(0, 0, 1)
	}

	return &Camera{
		Position: center.Add(dir.Mul(distance)),
		Target:   center,
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      fov,
		Near:     0.01,
	}
}

// basis returns the camera's right, up and forward unit vectors
func (c *Camera) basis() (right, up, forward geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return right, up, forward
}

// Project projects a world point to screen coordinates. The third value is
// the view-space depth; points behind the near plane report ok=false.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (x, y, depth float64, ok bool) {
	right, up, forward := c.basis()

	relative := point.Sub(c.Position)
	vx := relative.Dot(right)
	vy := relative.Dot(up)
	vz := relative.Dot(forward)

	if vz <= c.Near {
		return 0, 0, vz, false
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV * math.Pi / 360)

	x = (vx/(vz*fovScale*aspect))*(width/2) + (width / 2)
	y = (-vy/(vz*fovScale))*(height/2) + (height / 2)
	return x, y, vz, true
}
