package render

import (
	"image"
	"image/color"
	"math"
)

// fillTriangle fills a triangle with depth testing. Smaller depth is closer.
func fillTriangle(img *image.RGBA, zbuffer []float64, x1, y1, z1, x2, y2, z2, x3, y3, z3 float64, col color.RGBA) {
	vertices := [3][3]float64{
		{x1, y1, z1},
		{x2, y2, z2},
		{x3, y3, z3},
	}

	// Sort vertices by Y coordinate (top to bottom)
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}
	if vertices[1][1] > vertices[2][1] {
		vertices[1], vertices[2] = vertices[2], vertices[1]
	}
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}

	x1, y1, z1 = vertices[0][0], vertices[0][1], vertices[0][2]
	x2, y2, z2 = vertices[1][0], vertices[1][1], vertices[1][2]
	x3, y3, z3 = vertices[2][0], vertices[2][1], vertices[2][2]

	bounds := img.Bounds()
	width := bounds.Dx()

	for y := int(math.Max(0, math.Ceil(y1))); y <= int(math.Min(float64(bounds.Max.Y-1), y3)); y++ {
		fy := float64(y)

		// The long edge 1-3 always spans the scanline.
		xa, za := edgeAt(fy, x1, y1, z1, x3, y3, z3)

		var xb, zb float64
		if fy < y2 {
			xb, zb = edgeAt(fy, x1, y1, z1, x2, y2, z2)
		} else {
			xb, zb = edgeAt(fy, x2, y2, z2, x3, y3, z3)
		}

		if xa > xb {
			xa, xb = xb, xa
			za, zb = zb, za
		}

		start := int(math.Max(0, math.Ceil(xa)))
		end := int(math.Min(float64(width-1), xb))

		for x := start; x <= end; x++ {
			t := 0.0
			if xb != xa {
				t = (float64(x) - xa) / (xb - xa)
			}
			z := za + t*(zb-za)

			idx := y*width + x
			if z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// edgeAt interpolates x and depth along an edge at scanline y
func edgeAt(y, x1, y1, z1, x2, y2, z2 float64) (float64, float64) {
	if y2 == y1 {
		return x1, z1
	}
	t := (y - y1) / (y2 - y1)
	return x1 + t*(x2-x1), z1 + t*(z2-z1)
}

// drawLine draws a line on an image using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
