package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/philipparndt/showcase/pkg/geometry"
	"github.com/philipparndt/showcase/pkg/mesh"
	"github.com/philipparndt/showcase/pkg/scene"
)

func quad() *scene.Object {
	m := mesh.New("quad")
	a := geometry.NewVector3(-1, -1, 0)
	b := geometry.NewVector3(1, -1, 0)
	c := geometry.NewVector3(1, 1, 0)
	d := geometry.NewVector3(-1, 1, 0)
	m.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, a, b, c))
	m.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, a, c, d))
	return scene.NewObject(m)
}

func frontCamera() Camera {
	return Camera{
		Position: geometry.NewVector3(0, 0, 5),
		Target:   geometry.NewVector3(0, 0, 0),
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      30,
		Near:     0.01,
	}
}

func TestCameraProjectCenter(t *testing.T) {
	cam := frontCamera()
	x, y, depth, ok := cam.Project(geometry.NewVector3(0, 0, 0), 200, 100)
	if !ok {
		t.Fatal("expected target to be visible")
	}
	if math.Abs(x-100) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Errorf("Project(target) = (%v, %v), want (100, 50)", x, y)
	}
	if math.Abs(depth-5) > 1e-9 {
		t.Errorf("depth = %v, want 5", depth)
	}
}

func TestCameraProjectBehind(t *testing.T) {
	cam := frontCamera()
	if _, _, _, ok := cam.Project(geometry.NewVector3(0, 0, 10), 100, 100); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestCameraProjectUpIsUp(t *testing.T) {
	cam := frontCamera()
	_, y, _, _ := cam.Project(geometry.NewVector3(0, 1, 0), 100, 100)
	if y >= 50 {
		t.Errorf("point above target projected to y=%v, want above center", y)
	}
}

func TestNewCameraFramesBox(t *testing.T) {
	bbox := geometry.NewBoundingBox()
	bbox.Extend(geometry.NewVector3(-1, -1, -1))
	bbox.Extend(geometry.NewVector3(1, 1, 1))

	cam := NewCamera(bbox, geometry.NewVector3(0, 0, -1), 30)
	if cam.Target != bbox.Center() {
		t.Errorf("Target = %v, want %v", cam.Target, bbox.Center())
	}
	if cam.Position.Z >= 0 {
		t.Errorf("camera should sit on -Z, got %v", cam.Position)
	}

	for _, corner := range []geometry.Vector3{bbox.Min, bbox.Max} {
		x, y, _, ok := cam.Project(corner, 100, 100)
		if !ok || x < 0 || x > 100 || y < 0 || y > 100 {
			t.Errorf("corner %v not in view: (%v, %v, %v)", corner, x, y, ok)
		}
	}
}

func TestRenderEmptyScene(t *testing.T) {
	r := NewRenderer(32, 16)
	img := r.Render(Scene{Camera: frontCamera(), Lights: DefaultLights()})

	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 16 {
		t.Fatalf("size = %v, want 32x16", img.Bounds())
	}
	got := img.RGBAAt(5, 5)
	if diff(got.R, r.Background.R) > 1 || diff(got.B, r.Background.B) > 1 {
		t.Errorf("pixel = %v, want background %v", got, r.Background)
	}
}

func TestRenderDrawsObject(t *testing.T) {
	r := NewRenderer(64, 64)
	img := r.Render(Scene{Object: quad(), Camera: frontCamera(), Lights: DefaultLights()})

	center := img.RGBAAt(32, 32)
	if diff(center.R, r.Background.R) <= 1 {
		t.Error("expected the quad to cover the image center")
	}
	corner := img.RGBAAt(0, 0)
	if diff(corner.R, r.Background.R) > 1 {
		t.Errorf("corner = %v, want background", corner)
	}
}

func TestRenderSpotBrightens(t *testing.T) {
	r := NewRenderer(32, 32)
	r.Supersample = 1

	base := Scene{Object: quad(), Camera: frontCamera(), Lights: DefaultLights()}
	lit := base
	lit.Lights.Spot = 3
	lit.Lights.SpotPosition = geometry.NewVector3(0, 0, 2)
	lit.Lights.SpotTarget = geometry.NewVector3(0, 0, 0)

	dark := r.Render(base).RGBAAt(16, 16)
	bright := r.Render(lit).RGBAAt(16, 16)
	if bright.R <= dark.R {
		t.Errorf("spot lit pixel %v should be brighter than %v", bright, dark)
	}
}

func TestShadeAmbientOnly(t *testing.T) {
	l := Lights{Ambient: 0.5}
	got := Shade(l, geometry.NewVector3(0, 0, 1), geometry.Vector3{})
	if got != 0.5 {
		t.Errorf("Shade = %v, want 0.5", got)
	}
}

func TestShadeKeyFacingAway(t *testing.T) {
	l := Lights{KeyDirection: geometry.NewVector3(0, 0, 1), KeyIntensity: 2}
	got := Shade(l, geometry.NewVector3(0, 0, -1), geometry.Vector3{})
	if got != 0 {
		t.Errorf("Shade = %v, want 0 for a surface facing away", got)
	}
}

func TestDrawOutline(t *testing.T) {
	r := NewRenderer(64, 64)
	r.Supersample = 1
	s := Scene{Object: quad(), Camera: frontCamera()}
	img := r.Render(s)

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	DrawOutline(img, s, white)

	found := false
	for x := 0; x < 64 && !found; x++ {
		for y := 0; y < 64; y++ {
			if img.RGBAAt(x, y) == white {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("expected outline pixels")
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
