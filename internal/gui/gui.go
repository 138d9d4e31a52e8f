package gui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/showcase/internal/app"
	"github.com/philipparndt/showcase/pkg/render"
)

// Run opens a fyne window and drives d from a frame ticker until the window closes
func Run(d *app.Driver, title string) {
	cfg := d.Config()

	a := fyneapp.New()
	w := a.NewWindow(title)

	renderer := render.NewRenderer(cfg.Render.Width, cfg.Render.Height)
	renderer.Supersample = cfg.Render.Supersample
	view := NewView(renderer, d.Orbit())
	d.SetSurface(view)

	status := widget.NewLabel("Loading...")
	info := widget.NewLabel("")
	info.Wrapping = fyne.TextWrapWord

	openButton := widget.NewButton("Open File", func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if reader == nil {
				return
			}
			defer reader.Close()
			d.Load(reader.URI().Path())
		}, w)
	})

	instructions := widget.NewLabel(
		"Drag to orbit the camera\n" +
			"Scroll to zoom\n" +
			"The showcase resumes after you let go",
	)

	panel := container.NewVBox(
		widget.NewLabel("Showcase"),
		widget.NewSeparator(),
		status,
		info,
		widget.NewSeparator(),
		instructions,
		openButton,
	)

	w.SetContent(container.NewBorder(nil, nil, nil, panel, view))
	w.Resize(fyne.NewSize(float32(cfg.Render.Width)+220, float32(cfg.Render.Height)))

	done := make(chan struct{})
	w.SetOnClosed(func() { close(done) })

	start := time.Now()
	go func() {
		ticker := time.NewTicker(cfg.FrameInterval())
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fyne.Do(func() {
					view.SetPixelScale(w.Canvas().Scale())
					d.Tick(time.Since(start))
					status.SetText(statusText(d))
					info.SetText(infoText(d))
				})
			}
		}
	}()

	w.ShowAndRun()
}

func statusText(d *app.Driver) string {
	m := d.Machine()
	if !m.Loaded() {
		return "Loading..."
	}
	return fmt.Sprintf("Mode: %s\nAuto-rotate: %v", m.Mode(), m.AutoRotate())
}

func infoText(d *app.Driver) string {
	obj := d.Scene().Object
	if obj == nil {
		return ""
	}
	size := obj.Mesh.BoundingBox().Size()
	return fmt.Sprintf("Model: %s\nTriangles: %d\n\nDimensions:\n  X: %.2f\n  Y: %.2f\n  Z: %.2f",
		obj.Mesh.Name, obj.Mesh.TriangleCount(), size.X, size.Y, size.Z)
}
