package render

import (
	"math"

	"github.com/taigrr/softcube/pkg/math3d"
)

// spanFunc receives one scanline of covered pixels, [x0, x1) on row y.
// Both bounds are already clipped to the framebuffer.
type spanFunc func(y, x0, x1 int)

// edgeWalker steps x along a triangle edge one scanline at a time using the
// inverse slope dx/dy.
type edgeWalker struct {
	x, step float64
}

// newEdgeWalker starts walking edge a→b at scanline center yc.
// The edge must have non-zero height.
func newEdgeWalker(a, b math3d.Vec2, yc float64) edgeWalker {
	step := (b.X - a.X) / (b.Y - a.Y)
	return edgeWalker{x: a.X + (yc-a.Y)*step, step: step}
}

func finite2(p math3d.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// scanTriangle walks the pixels of triangle (a, b, c) row by row. The
// corners are sorted by y and the triangle is split at the middle corner
// into a flat-bottom half and a flat-top half, the fourth corner lying on
// the long edge. A pixel is covered when its center (x+0.5, y+0.5) lies in
// the half-open span [left, right) of its row. Halves with zero height are
// skipped, as are triangles with non-finite corners.
func scanTriangle(width, height int, a, b, c math3d.Vec2, span spanFunc) {
	if !finite2(a) || !finite2(b) || !finite2(c) {
		return
	}

	// Sort by ascending y.
	if b.Y < a.Y {
		a, b = b, a
	}
	if c.Y < b.Y {
		b, c = c, b
	}
	if b.Y < a.Y {
		a, b = b, a
	}
	if c.Y == a.Y {
		return
	}

	// Split point on the long edge a→c at the middle corner's y.
	split := math3d.V2(a.X+(b.Y-a.Y)*(c.X-a.X)/(c.Y-a.Y), b.Y)

	// Flat-bottom half: rows centered in [a.Y, b.Y).
	if b.Y > a.Y {
		scanHalf(width, height, a.Y, b.Y, a, b, a, c, span)
	}
	// Flat-top half: rows centered in [b.Y, c.Y).
	if c.Y > b.Y {
		scanHalf(width, height, b.Y, c.Y, b, c, split, c, span)
	}
}

// scanHalf fills rows whose centers lie in [yTop, yBot), bounded by edges
// l0→l1 and r0→r1 (which one is left is decided per row).
func scanHalf(width, height int, yTop, yBot float64, l0, l1, r0, r1 math3d.Vec2, span spanFunc) {
	first := ceilClamp(yTop-0.5, 0, height)
	last := ceilClamp(yBot-0.5, 0, height) - 1 // inclusive
	if first > last {
		return
	}

	yc := float64(first) + 0.5
	e1 := newEdgeWalker(l0, l1, yc)
	e2 := newEdgeWalker(r0, r1, yc)

	for y := first; y <= last; y++ {
		xl, xr := e1.x, e2.x
		if xl > xr {
			xl, xr = xr, xl
		}
		x0 := ceilClamp(xl-0.5, 0, width)
		x1 := ceilClamp(xr-0.5, 0, width)
		if x0 < x1 {
			span(y, x0, x1)
		}
		e1.x += e1.step
		e2.x += e2.step
	}
}

// ceilClamp returns ceil(v) limited to [lo, hi]. Clamping happens before
// the int conversion so far off-screen coordinates cannot overflow.
func ceilClamp(v float64, lo, hi int) int {
	v = math.Ceil(v)
	if v <= float64(lo) {
		return lo
	}
	if v >= float64(hi) {
		return hi
	}
	return int(v)
}

// FillTriangle fills triangle (a, b, c) with a solid color using the
// flat-top/flat-bottom scanline split. Writes are clipped to the buffer.
func FillTriangle(fb *Framebuffer, a, b, c math3d.Vec2, color Color) {
	scanTriangle(fb.Width, fb.Height, a, b, c, func(y, x0, x1 int) {
		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		for x := x0; x < x1; x++ {
			row[x] = color
		}
	})
}
