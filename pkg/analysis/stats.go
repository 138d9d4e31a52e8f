// Package analysis summarizes a mesh for the info command.
package analysis

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/showcase/pkg/choreo"
	"github.com/philipparndt/showcase/pkg/geometry"
	"github.com/philipparndt/showcase/pkg/mesh"
	"github.com/philipparndt/showcase/pkg/scene"
)

// Stats contains the measurements of a mesh
type Stats struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	LongestAxis   int
}

// Analyze measures a mesh in model space
func Analyze(m *mesh.Mesh) Stats {
	stats := Stats{
		BoundingBox:   m.BoundingBox(),
		SurfaceArea:   m.SurfaceArea(),
		TriangleCount: m.TriangleCount(),
	}
	stats.Dimensions = stats.BoundingBox.Size()
	stats.LongestAxis = stats.BoundingBox.LongestAxis()

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, triangle := range m.Triangles {
		v := triangle.Vertices()
		for i := range v {
			length := v[i].Distance(v[(i+1)%3])
			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
			stats.EdgeCount++
		}
	}

	if stats.EdgeCount > 0 {
		stats.MinEdgeLength = minLength
		stats.MaxEdgeLength = maxLength
		stats.AvgEdgeLength = totalLength / float64(stats.EdgeCount)
	}

	return stats
}

// ZoomTarget returns where the zoom-in would end for obj shown in its
// current orientation as the front orientation
func ZoomTarget(obj *scene.Object, cfg choreo.ZoomConfig) geometry.Vector3 {
	front := obj.Orientation
	if front == (mgl64.Quat{}) {
		front = mgl64.QuatIdent()
	}
	return choreo.NewLocator(cfg).Locate(obj, &front, front)
}

// AxisName returns the letter of a box axis index
func AxisName(axis int) string {
	switch axis {
	case 0:
		return "X"
	case 1:
		return "Y"
	case 2:
		return "Z"
	}
	return fmt.Sprintf("axis(%d)", axis)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
