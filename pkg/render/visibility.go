package render

import (
	"cmp"
	"slices"

	"github.com/taigrr/softcube/pkg/math3d"
)

// FaceNormal returns the unit normal of triangle (a, b, c), computed as
// normalize(normalize(b-a) × normalize(c-a)). With clockwise winding seen
// from the front it points out of the front side. ok is false for a
// degenerate triangle (coincident or collinear corners).
func FaceNormal(a, b, c math3d.Vec3) (n math3d.Vec3, ok bool) {
	ab, ok := b.Sub(a).Normalize()
	if !ok {
		return n, false
	}
	ac, ok := c.Sub(a).Normalize()
	if !ok {
		return n, false
	}
	return ab.Cross(ac).Normalize()
}

// Facing reports whether a face with the given normal and first vertex v0
// survives culling. d = normal · (v0 - camera) is negative when the front
// side faces the camera: CullBack discards d > 0 and CullFront discards
// d <= 0.
func Facing(normal, v0, camera math3d.Vec3, mode CullMode) bool {
	d := normal.Dot(v0.Sub(camera))
	switch mode {
	case CullFront:
		return d > 0
	case CullNone:
		return true
	default:
		return d <= 0
	}
}

// AverageDepth returns the mean of the working depths of a face's corners.
func AverageDepth(depth []float64, face [3]int) float64 {
	return (depth[face[0]] + depth[face[1]] + depth[face[2]]) / 3
}

// DrawItem is one face that survived culling, waiting to be rasterized.
type DrawItem struct {
	Face      int
	Depth     float64
	Intensity float64
}

// SortBackToFront orders items by descending depth so nearer faces are
// drawn last and overwrite farther ones. The sort is stable: faces with
// equal depth keep their mesh order.
func SortBackToFront(items []DrawItem) {
	slices.SortStableFunc(items, func(a, b DrawItem) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
}
