// Package gui shows the choreography in a fyne window using the software renderer.
package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/showcase/pkg/orbit"
	"github.com/philipparndt/showcase/pkg/render"
)

// View displays rendered frames and turns pointer input into orbit control input.
// It must only be used from the fyne main goroutine.
type View struct {
	widget.BaseWidget

	renderer *render.Renderer
	control  *orbit.Control
	image    *canvas.Image
	dragging bool
	scale    float32
}

// NewView creates a view drawing with r and steering control
func NewView(r *render.Renderer, control *orbit.Control) *View {
	v := &View{
		renderer: r,
		control:  control,
		image:    canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))),
		scale:    1,
	}
	v.image.FillMode = canvas.ImageFillStretch
	v.image.ScaleMode = canvas.ImageScaleFastest
	v.ExtendBaseWidget(v)
	return v
}

// Draw renders the scene at the widget's current size
func (v *View) Draw(s render.Scene) {
	size := v.Size()
	w, h := int(size.Width*v.scale), int(size.Height*v.scale)
	if w < 1 || h < 1 {
		return
	}
	v.renderer.Width = w
	v.renderer.Height = h

	v.image.Image = v.renderer.Render(s)
	v.image.Refresh()
}

// SetPixelScale sets the ratio of rendered pixels to widget units
func (v *View) SetPixelScale(scale float32) {
	if scale > 0 {
		v.scale = scale
	}
}

// CreateRenderer creates the renderer for the widget
func (v *View) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.image)
}

// MinSize keeps the view usable in small windows
func (v *View) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

// Dragged handles mouse drag events for rotation
func (v *View) Dragged(event *fyne.DragEvent) {
	if !v.dragging {
		v.dragging = true
		v.control.BeginDrag()
	}
	v.control.Drag(float64(event.Dragged.DX), float64(event.Dragged.DY))
}

// DragEnd handles the end of a drag event
func (v *View) DragEnd() {
	v.dragging = false
	v.control.EndDrag()
}

// Scrolled handles scroll events for zooming
func (v *View) Scrolled(event *fyne.ScrollEvent) {
	v.control.Scroll(-float64(event.Scrolled.DY) * 0.5)
}
