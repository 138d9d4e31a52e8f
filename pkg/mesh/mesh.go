package mesh

import (
	"github.com/philipparndt/showcase/pkg/geometry"
)

// Mesh is a triangle soup in model space
type Mesh struct {
	Name      string
	Triangles []geometry.Triangle
}

// New creates an empty mesh
func New(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the mesh
func (m *Mesh) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the model-space bounding box
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the mesh
func (m *Mesh) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}

// Translate moves every vertex by offset
func (m *Mesh) Translate(offset geometry.Vector3) {
	for i := range m.Triangles {
		t := &m.Triangles[i]
		t.V1 = t.V1.Add(offset)
		t.V2 = t.V2.Add(offset)
		t.V3 = t.V3.Add(offset)
	}
}
