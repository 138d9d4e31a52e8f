package mesh

import (
	"testing"

	"github.com/philipparndt/showcase/pkg/geometry"
)

func TestMeshTranslate(t *testing.T) {
	m := New("tri")
	m.AddTriangle(geometry.NewTriangle(geometry.Vector3{},
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(2, 0, 0),
		geometry.NewVector3(0, 2, 0),
	))

	m.Translate(geometry.NewVector3(-1, -1, 3))

	bbox := m.BoundingBox()
	if bbox.Min != geometry.NewVector3(-1, -1, 3) {
		t.Errorf("Min = %v, want (-1, -1, 3)", bbox.Min)
	}
	if bbox.Max != geometry.NewVector3(1, 1, 3) {
		t.Errorf("Max = %v, want (1, 1, 3)", bbox.Max)
	}
}

func TestMeshSurfaceArea(t *testing.T) {
	m := New("tri")
	m.AddTriangle(geometry.NewTriangle(geometry.Vector3{},
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(2, 0, 0),
		geometry.NewVector3(0, 2, 0),
	))

	if got := m.SurfaceArea(); got != 2 {
		t.Errorf("SurfaceArea() = %v, want 2", got)
	}
	if got := m.TriangleCount(); got != 1 {
		t.Errorf("TriangleCount() = %v, want 1", got)
	}
}
