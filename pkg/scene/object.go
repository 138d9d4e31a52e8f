// Package scene holds the posed model the choreography animates.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/showcase/pkg/geometry"
	"github.com/philipparndt/showcase/pkg/mesh"
)

// Object places a mesh in the world
type Object struct {
	Mesh        *mesh.Mesh
	Position    geometry.Vector3
	Scale       float64
	Orientation mgl64.Quat
}

// NewObject creates an object at the origin with unit scale and identity orientation
func NewObject(m *mesh.Mesh) *Object {
	return &Object{
		Mesh:        m,
		Scale:       1,
		Orientation: mgl64.QuatIdent(),
	}
}

// Transform maps a model-space point to world space using the given orientation
func (o *Object) Transform(orientation mgl64.Quat, p geometry.Vector3) geometry.Vector3 {
	scaled := p.Mul(o.Scale).Vec()
	return geometry.FromVec(orientation.Rotate(scaled)).Add(o.Position)
}

// WorldPoint maps a model-space point using the current orientation
func (o *Object) WorldPoint(p geometry.Vector3) geometry.Vector3 {
	return o.Transform(o.Orientation, p)
}

// Bounds computes the world-space axis-aligned box as if the object had the
// given orientation. The live orientation is left untouched.
func (o *Object) Bounds(orientation mgl64.Quat) geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	if o.Mesh == nil {
		return bbox
	}

	orientation = orientation.Normalize()
	for _, tri := range o.Mesh.Triangles {
		bbox.Extend(o.Transform(orientation, tri.V1))
		bbox.Extend(o.Transform(orientation, tri.V2))
		bbox.Extend(o.Transform(orientation, tri.V3))
	}
	return bbox
}

// CurrentBounds computes the world-space box for the live orientation
func (o *Object) CurrentBounds() geometry.BoundingBox {
	return o.Bounds(o.Orientation)
}
