package window

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/showcase/internal/app"
	"github.com/philipparndt/showcase/pkg/geometry"
	"github.com/philipparndt/showcase/pkg/mesh"
	"github.com/philipparndt/showcase/pkg/render"
)

// Surface draws scenes into the current raylib window.
// All methods must be called from the thread that opened the window.
type Surface struct {
	source *mesh.Mesh
	model  rl.Model
	loaded bool

	// Status is drawn in the top left corner when set
	Status func() string
}

// Draw renders one frame
func (s *Surface) Draw(sc render.Scene) {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

	if sc.Object == nil || sc.Object.Mesh == nil {
		rl.DrawText("Loading...", 10, 10, 20, rl.LightGray)
		return
	}

	if sc.Object.Mesh != s.source {
		s.upload(sc.Object.Mesh)
	}

	rl.BeginMode3D(rl.Camera3D{
		Position:   toRaylib(sc.Camera.Position),
		Target:     toRaylib(sc.Camera.Target),
		Up:         toRaylib(sc.Camera.Up),
		Fovy:       float32(sc.Camera.FOV),
		Projection: rl.CameraPerspective,
	})

	q := sc.Object.Orientation.Normalize()
	s.model.Transform = rl.QuaternionToMatrix(rl.NewQuaternion(
		float32(q.V[0]), float32(q.V[1]), float32(q.V[2]), float32(q.W),
	))
	rl.DrawModel(s.model, toRaylib(sc.Object.Position), float32(sc.Object.Scale), lightTint(sc))

	if sc.Lights.Spot > 0 {
		alpha := uint8(math.Min(255, 60*sc.Lights.Spot))
		rl.DrawSphere(toRaylib(sc.Lights.SpotPosition), 0.01, rl.NewColor(255, 240, 200, alpha))
	}

	rl.EndMode3D()

	if s.Status != nil {
		rl.DrawText(s.Status(), 10, 10, 18, rl.LightGray)
	}
	rl.DrawFPS(10, int32(rl.GetScreenHeight())-24)
}

// Close releases GPU resources
func (s *Surface) Close() {
	if s.loaded {
		rl.UnloadModel(s.model)
		s.loaded = false
	}
}

func (s *Surface) upload(m *mesh.Mesh) {
	s.Close()
	s.model = rl.LoadModelFromMesh(meshToRaylib(m))
	s.source = m
	s.loaded = true
}

// lightTint approximates the dynamic lights with a tint over the baked key light:
// the brightness of a surface at the camera target facing the camera.
func lightTint(sc render.Scene) rl.Color {
	facing := sc.Camera.Position.Sub(sc.Camera.Target).Normalize()
	lights := sc.Lights
	lights.KeyIntensity = 0
	level := math.Min(1, 0.6+0.5*render.Shade(lights, facing, sc.Camera.Target))
	v := uint8(255 * level)
	return rl.NewColor(v, v, v, 255)
}

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// meshToRaylib converts a mesh to a raylib mesh with the key light baked into vertex colors
func meshToRaylib(m *mesh.Mesh) rl.Mesh {
	triangleCount := len(m.Triangles)
	vertexCount := triangleCount * 3

	out := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	colors := make([]uint8, vertexCount*4)

	lights := render.DefaultLights()
	lights.Ambient = 0.3

	idx := 0
	for _, triangle := range m.Triangles {
		normal := triangle.CalculateNormal()
		shade := math.Min(1, render.Shade(lights, normal, triangle.Center()))

		r := uint8(200 * shade)
		g := uint8(205 * shade)
		b := uint8(215 * shade)

		for _, v := range triangle.Vertices() {
			vertices[idx*3+0] = float32(v.X)
			vertices[idx*3+1] = float32(v.Y)
			vertices[idx*3+2] = float32(v.Z)
			normals[idx*3+0] = float32(normal.X)
			normals[idx*3+1] = float32(normal.Y)
			normals[idx*3+2] = float32(normal.Z)
			colors[idx*4+0] = r
			colors[idx*4+1] = g
			colors[idx*4+2] = b
			colors[idx*4+3] = 255
			idx++
		}
	}

	if len(vertices) > 0 {
		out.Vertices = &vertices[0]
		out.Normals = &normals[0]
		out.Colors = &colors[0]
	}

	rl.UploadMesh(&out, false)

	return out
}

func statusLine(d *app.Driver) func() string {
	return func() string {
		m := d.Machine()
		if !m.Loaded() {
			return "Loading..."
		}
		return fmt.Sprintf("%s  auto-rotate: %v", m.Mode(), m.AutoRotate())
	}
}
