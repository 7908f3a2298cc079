package render

import (
	"math"
)

// minTriangleArea is the smallest doubled screen-space area a textured
// triangle may have before it is treated as collinear and skipped.
const minTriangleArea = 1e-9

// edgeCoeffs returns A, B, C such that A*x + B*y + C is the signed doubled
// area of the triangle (x0,y0), (x1,y1), (x,y).
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// edgeFunc evaluates edge function at point (x, y)
func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

// DrawTexturedTriangle fills triangle (a, b, c) with texels from tex,
// scaled by intensity.
//
// Rows are walked with the same split scan as FillTriangle. For each
// covered pixel the barycentric weights of its center are computed from
// edge functions. When every corner has a non-zero W, 1/w, u/w and v/w are
// interpolated and divided back (perspective-correct); otherwise u and v
// are interpolated linearly in screen space. Collinear triangles are
// skipped. A nil texture draws nothing; callers fall back to FillTriangle.
func DrawTexturedTriangle(fb *Framebuffer, tex *Texture, a, b, c ScreenVertex, intensity float64) {
	if tex == nil || tex.Width <= 0 || tex.Height <= 0 {
		return
	}

	// Edge a→b evaluated at c is twice the signed area.
	abA, abB, abC := edgeCoeffs(a.X, a.Y, b.X, b.Y)
	area := edgeFunc(abA, abB, abC, c.X, c.Y)
	if math.Abs(area) < minTriangleArea || math.IsNaN(area) || math.IsInf(area, 0) {
		return
	}
	inv := 1 / area

	bcA, bcB, bcC := edgeCoeffs(b.X, b.Y, c.X, c.Y)
	caA, caB, caC := edgeCoeffs(c.X, c.Y, a.X, a.Y)

	perspective := a.W != 0 && b.W != 0 && c.W != 0
	var iwa, iwb, iwc float64
	if perspective {
		iwa, iwb, iwc = 1/a.W, 1/b.W, 1/c.W
	}

	scanTriangle(fb.Width, fb.Height, a.Point(), b.Point(), c.Point(), func(y, x0, x1 int) {
		py := float64(y) + 0.5
		px := float64(x0) + 0.5

		// Weights of a, b and c at the first pixel center, stepped by the
		// x coefficient for every pixel after it.
		wa := edgeFunc(bcA, bcB, bcC, px, py) * inv
		wb := edgeFunc(caA, caB, caC, px, py) * inv
		wc := edgeFunc(abA, abB, abC, px, py) * inv
		da, db, dc := bcA*inv, caA*inv, abA*inv

		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		for x := x0; x < x1; x++ {
			var u, v float64
			iw := wa*iwa + wb*iwb + wc*iwc
			if perspective && iw != 0 {
				u = (wa*a.UV.X*iwa + wb*b.UV.X*iwb + wc*c.UV.X*iwc) / iw
				v = (wa*a.UV.Y*iwa + wb*b.UV.Y*iwb + wc*c.UV.Y*iwc) / iw
			} else {
				u = wa*a.UV.X + wb*b.UV.X + wc*c.UV.X
				v = wa*a.UV.Y + wb*b.UV.Y + wc*c.UV.Y
			}
			row[x] = tex.Sample(u, v).Shade(intensity)

			wa += da
			wb += db
			wc += dc
		}
	})
}
