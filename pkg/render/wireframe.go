package render

import (
	"math"

	"github.com/taigrr/softcube/pkg/math3d"
)

// maxLineCoord bounds line endpoints so Bresenham never walks a
// pathological distance for points projected far off screen.
const maxLineCoord = 1 << 16

// DrawTriangleOutline draws the three edges of triangle (a, b, c).
// Triangles with non-finite corners are skipped.
func DrawTriangleOutline(fb *Framebuffer, a, b, c math3d.Vec2, color Color) {
	if !finite2(a) || !finite2(b) || !finite2(c) {
		return
	}
	ax, ay := linePoint(a)
	bx, by := linePoint(b)
	cx, cy := linePoint(c)

	fb.DrawLine(ax, ay, bx, by, color)
	fb.DrawLine(bx, by, cx, cy, color)
	fb.DrawLine(cx, cy, ax, ay, color)
}

// linePoint maps a screen position to the pixel containing it.
func linePoint(p math3d.Vec2) (int, int) {
	clamp := func(v float64) int {
		return int(math.Max(-maxLineCoord, math.Min(maxLineCoord, math.Floor(v))))
	}
	return clamp(p.X), clamp(p.Y)
}
