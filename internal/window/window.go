// Package window hosts the driver in a raylib window.
package window

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/showcase/internal/app"
)

// Run opens a raylib window and drives d until the window closes
func Run(d *app.Driver, title string) {
	cfg := d.Config()

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Render.Width), int32(cfg.Render.Height), title)
	rl.SetTargetFPS(int32(cfg.Render.FPS))

	surface := &Surface{Status: statusLine(d)}
	d.SetSurface(surface)

	start := time.Now()
	for !rl.WindowShouldClose() {
		handleInput(d.Orbit())
		d.Tick(time.Since(start))
	}

	surface.Close()
	rl.CloseWindow()
}
