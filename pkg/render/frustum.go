package render

import (
	"github.com/taigrr/softcube/pkg/math3d"
)

// Plane represents a plane in 3D space using the equation: Ax + By + Cz + D = 0
// where (A, B, C) is the normal and D is the distance from origin.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize normalizes the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum represents the 6 planes of a view frustum.
// Each plane's normal points inward (toward the center of the frustum).
type Frustum struct {
	Planes [6]Plane
}

// FrustumPlane indices for clarity.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts frustum planes from a projection matrix
// using the Gribb/Hartmann method. The matrix is expected to map depth to
// [0, 1] as PerspectiveLH does, so the near plane is row 2 alone.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	var f Frustum

	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)
	plane := func(a math3d.Vec4) Plane {
		return Plane{Normal: math3d.V3(a.X, a.Y, a.Z), D: a.W}
	}
	add := func(a, b math3d.Vec4) math3d.Vec4 { return math3d.V4(a.X+b.X, a.Y+b.Y, a.Z+b.Z, a.W+b.W) }
	sub := func(a, b math3d.Vec4) math3d.Vec4 { return math3d.V4(a.X-b.X, a.Y-b.Y, a.Z-b.Z, a.W-b.W) }

	f.Planes[FrustumLeft] = plane(add(r3, r0))
	f.Planes[FrustumRight] = plane(sub(r3, r0))
	f.Planes[FrustumBottom] = plane(add(r3, r1))
	f.Planes[FrustumTop] = plane(sub(r3, r1))
	f.Planes[FrustumNear] = plane(r2)
	f.Planes[FrustumFar] = plane(sub(r3, r2))

	for i := range f.Planes {
		f.Planes[i].Normalize()
	}

	return f
}

// RejectTriangle reports whether a triangle can be skipped without
// clipping: either all three vertices lie outside the same plane, or any
// vertex is behind the near plane, where projection would fold it back
// onto the screen.
func (f Frustum) RejectTriangle(a, b, c math3d.Vec3) bool {
	near := f.Planes[FrustumNear]
	if near.DistanceToPoint(a) < 0 || near.DistanceToPoint(b) < 0 || near.DistanceToPoint(c) < 0 {
		return true
	}
	for i := range f.Planes {
		p := f.Planes[i]
		if p.DistanceToPoint(a) < 0 && p.DistanceToPoint(b) < 0 && p.DistanceToPoint(c) < 0 {
			return true
		}
	}
	return false
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// BoundsOf returns the smallest AABB containing every point.
func BoundsOf(points []math3d.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box
}

// IntersectAABB tests if the AABB intersects or is inside the frustum.
// Returns true if any part of the AABB is visible.
// Uses the "positive vertex" optimization for faster rejection.
func (f Frustum) IntersectAABB(box AABB) bool {
	for i := range f.Planes {
		plane := f.Planes[i]

		// The corner furthest along the plane normal. If it is outside,
		// the whole box is.
		pVertex := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			selectComponent(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			selectComponent(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)

		if plane.DistanceToPoint(pVertex) < 0 {
			return false
		}
	}

	return true
}

func selectComponent(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
