package math3d

// Vec4 represents a homogeneous point. After projection X and Y hold the
// perspective-divided coordinates, Z the projected depth and W the divisor.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// V4FromV3 creates a Vec4 from a Vec3 with the given W.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// PerspectiveDivide divides X and Y by W. When W is zero the vector is
// returned un-divided. Z is left alone so it keeps the projected depth.
func (v Vec4) PerspectiveDivide() Vec4 {
	if v.W == 0 {
		return v
	}
	return Vec4{v.X / v.W, v.Y / v.W, v.Z, v.W}
}
