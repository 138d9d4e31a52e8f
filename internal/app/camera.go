package app

import (
	"math"

	"github.com/philipparndt/showcase/internal/config"
	"github.com/philipparndt/showcase/pkg/geometry"
	"github.com/philipparndt/showcase/pkg/render"
	"github.com/philipparndt/showcase/pkg/scene"
)

// defaultCamera is used before a model is loaded
func defaultCamera(cfg config.Config) render.Camera {
	dir := cfg.Scene.CameraDirection.Normalize()
	distance := cfg.Scene.CameraDistance
	if distance == 0 {
		distance = 3
	}
	return render.Camera{
		Position: dir.Mul(distance),
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      cfg.Choreo.NormalFOV,
		Near:     0.01,
	}
}

// frameCamera places the camera along the configured direction so the
// whole object fits the normal field of view
func frameCamera(cfg config.Config, obj *scene.Object) render.Camera {
	bbox := obj.CurrentBounds()
	if bbox.IsEmpty() {
		return defaultCamera(cfg)
	}

	cam := *render.NewCamera(bbox, cfg.Scene.CameraDirection, cfg.Choreo.NormalFOV)
	if d := cfg.Scene.CameraDistance; d > 0 {
		dir := cam.Position.Sub(cam.Target).Normalize()
		cam.Position = cam.Target.Add(dir.Mul(d))
	}
	cam.Near = math.Min(cam.Near, bbox.Diagonal()*0.001)
	return cam
}

func keyLights(cfg config.Config) render.Lights {
	lights := render.DefaultLights()
	lights.KeyDirection = cfg.Scene.KeyLight
	lights.KeyIntensity = cfg.Scene.KeyIntensity
	lights.Ambient = cfg.Choreo.Lighting.Ambient
	return lights
}
