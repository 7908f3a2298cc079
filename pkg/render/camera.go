package render

import (
	"github.com/taigrr/softcube/pkg/math3d"
)

// Camera describes the fixed viewpoint. The camera looks down +Z with +Y up
// and +X to the right; working positions are expressed relative to it.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Projection parameters
	FOVDegrees float64 // Vertical field of view
	Near       float64 // Near plane distance
	Far        float64 // Far plane distance

	// FOVFactor scales x/z and y/z in raw-divide projection.
	FOVFactor float64
}

// DefaultCamera returns a camera at the origin with a 60° field of view,
// clip planes at 0.1 and 100, and a raw-divide factor of 640.
func DefaultCamera() Camera {
	return Camera{
		FOVDegrees: 60,
		Near:       0.1,
		Far:        100,
		FOVFactor:  640,
	}
}

// ProjectionMatrix returns the perspective matrix for a width x height
// viewport. The aspect term is height/width so x is scaled into the same
// units as y.
func (c Camera) ProjectionMatrix(width, height int) math3d.Mat4 {
	aspect := float64(height) / float64(width)
	return math3d.PerspectiveLH(c.FOVDegrees, aspect, c.Near, c.Far)
}

// Frustum returns the view frustum for a width x height viewport, in
// camera-relative coordinates.
func (c Camera) Frustum(width, height int) Frustum {
	return NewFrustumFromMatrix(c.ProjectionMatrix(width, height))
}
