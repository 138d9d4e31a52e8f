package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/showcase/pkg/orbit"
)

// handleInput feeds raylib mouse input into the orbit control
func handleInput(c *orbit.Control) {
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		c.BeginDrag()
	}

	if c.Dragging() && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			c.Drag(float64(delta.X), float64(delta.Y))
		}
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		c.EndDrag()
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Scroll(float64(-wheel) * 50)
	}
}
