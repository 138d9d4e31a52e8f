// Package render rasterizes the showcased model in software. It backs the
// fyne window and the headless frame recorder.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/philipparndt/showcase/pkg/geometry"
	"github.com/philipparndt/showcase/pkg/scene"
	"golang.org/x/image/draw"
)

// Lights describes the lights applied to the model
type Lights struct {
	// KeyDirection points from the scene towards the directional key light.
	KeyDirection geometry.Vector3
	KeyIntensity float64
	Ambient      float64

	Spot         float64
	SpotPosition geometry.Vector3
	SpotTarget   geometry.Vector3
	SpotAngle    float64 // half cone angle in radians
}

// DefaultLights returns the key light at (1,1,1) with intensity 2 and a dim ambient
func DefaultLights() Lights {
	return Lights{
		KeyDirection: geometry.NewVector3(1, 1, 1),
		KeyIntensity: 2,
		Ambient:      0.4,
		SpotAngle:    math.Pi / 6,
	}
}

// Scene is everything needed to draw one frame
type Scene struct {
	Object *scene.Object
	Camera Camera
	Lights Lights
}

// Renderer draws scenes to RGBA images
type Renderer struct {
	Width       int
	Height      int
	Supersample int
	Background  color.RGBA
	Color       color.RGBA
}

// NewRenderer creates a renderer with 2x supersampling
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		Width:       width,
		Height:      height,
		Supersample: 2,
		Background:  color.RGBA{R: 30, G: 30, B: 36, A: 255},
		Color:       color.RGBA{R: 200, G: 200, B: 210, A: 255},
	}
}

// Render draws the scene. A scene without an object yields the background only.
func (r *Renderer) Render(s Scene) *image.RGBA {
	ss := r.Supersample
	if ss < 1 {
		ss = 1
	}
	w, h := r.Width*ss, r.Height*ss

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: r.Background}, image.Point{}, draw.Src)

	if s.Object != nil && s.Object.Mesh != nil {
		zbuffer := make([]float64, w*h)
		for i := range zbuffer {
			zbuffer[i] = math.Inf(1)
		}
		r.drawObject(img, zbuffer, s)
	}

	if ss == 1 {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func (r *Renderer) drawObject(img *image.RGBA, zbuffer []float64, s Scene) {
	width := float64(img.Bounds().Dx())
	height := float64(img.Bounds().Dy())
	cam := s.Camera

	for _, tri := range s.Object.Mesh.Triangles {
		v1 := s.Object.WorldPoint(tri.V1)
		v2 := s.Object.WorldPoint(tri.V2)
		v3 := s.Object.WorldPoint(tri.V3)

		x1, y1, z1, ok1 := cam.Project(v1, width, height)
		x2, y2, z2, ok2 := cam.Project(v2, width, height)
		x3, y3, z3, ok3 := cam.Project(v3, width, height)
		if !ok1 || !ok2 || !ok3 {
			continue
		}

		normal := v2.Sub(v1).Cross(v3.Sub(v1)).Normalize()
		center := v1.Add(v2).Add(v3).Mul(1.0 / 3.0)
		// Two-sided: STL winding is not trustworthy.
		if normal.Dot(cam.Position.Sub(center)) < 0 {
			normal = normal.Mul(-1)
		}

		shade := Shade(s.Lights, normal, center)
		fillTriangle(img, zbuffer, x1, y1, z1, x2, y2, z2, x3, y3, z3, tint(r.Color, shade))
	}
}

// Shade returns the light intensity reaching a surface point with the given normal
func Shade(l Lights, normal, point geometry.Vector3) float64 {
	intensity := l.Ambient

	if l.KeyIntensity > 0 {
		key := l.KeyDirection.Normalize()
		// Scaled so a head-on key at intensity 2 saturates together with the default ambient.
		intensity += 0.3 * l.KeyIntensity * math.Max(0, normal.Dot(key))
	}

	if l.Spot > 0 {
		toLight := l.SpotPosition.Sub(point).Normalize()
		axis := l.SpotTarget.Sub(l.SpotPosition).Normalize()
		cosAngle := toLight.Mul(-1).Dot(axis)
		cone := math.Cos(l.SpotAngle)
		if cosAngle > cone {
			falloff := (cosAngle - cone) / (1 - cone)
			intensity += 0.3 * l.Spot * falloff * math.Max(0, normal.Dot(toLight))
		}
	}

	return intensity
}

func tint(c color.RGBA, intensity float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, float64(v)*intensity))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// DrawOutline draws the projected bounding box edges of the object
func DrawOutline(img *image.RGBA, s Scene, col color.RGBA) {
	if s.Object == nil {
		return
	}
	bbox := s.Object.CurrentBounds()
	if bbox.IsEmpty() {
		return
	}

	width := float64(img.Bounds().Dx())
	height := float64(img.Bounds().Dy())

	corners := [8]geometry.Vector3{}
	for i := range corners {
		c := bbox.Min
		if i&1 != 0 {
			c.X = bbox.Max.X
		}
		if i&2 != 0 {
			c.Y = bbox.Max.Y
		}
		if i&4 != 0 {
			c.Z = bbox.Max.Z
		}
		corners[i] = c
	}

	for i := range corners {
		for _, bit := range []int{1, 2, 4} {
			j := i | bit
			if j == i {
				continue
			}
			x1, y1, _, ok1 := s.Camera.Project(corners[i], width, height)
			x2, y2, _, ok2 := s.Camera.Project(corners[j], width, height)
			if ok1 && ok2 {
				drawLine(img, int(x1), int(y1), int(x2), int(y2), col)
			}
		}
	}
}
