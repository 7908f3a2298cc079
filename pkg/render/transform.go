package render

import (
	"github.com/taigrr/softcube/pkg/math3d"
)

// MeshSource is the read-only view of a mesh the pipeline consumes.
// models.Mesh implements it; the interface keeps render free of a
// dependency on the loaders.
type MeshSource interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) math3d.Vec3
	GetFace(i int) [3]int
	// GetFaceColor returns the packed ARGB base color.
	GetFaceColor(i int) uint32
	GetFaceUV(i int) ([3]math3d.Vec2, bool)
}

// ScreenVertex is a projected vertex. X and Y are pixel coordinates with Y
// growing downward, Z is the projected depth and W the perspective divisor
// (the camera-space z). UV is filled in per face corner by the renderer.
type ScreenVertex struct {
	X, Y, Z, W float64
	UV         math3d.Vec2
}

// Point returns the 2D screen position.
func (v ScreenVertex) Point() math3d.Vec2 {
	return math3d.V2(v.X, v.Y)
}

// Frame is the per-frame working state: one entry per mesh vertex. It is
// fully rewritten by TransformVertices and may be reused across frames
// without carrying anything over.
type Frame struct {
	// Working holds camera-relative positions after rotation and translation.
	Working []math3d.Vec3
	Screen  []ScreenVertex
	// Depth is the camera-space z of each working position.
	Depth []float64
}

func (f *Frame) reset(n int) {
	if cap(f.Working) < n {
		f.Working = make([]math3d.Vec3, n)
		f.Screen = make([]ScreenVertex, n)
		f.Depth = make([]float64, n)
		return
	}
	f.Working = f.Working[:n]
	f.Screen = f.Screen[:n]
	f.Depth = f.Depth[:n]
}

// TransformVertices runs the transform stage for every vertex of mesh:
// rotate by angles (X, then Y, then Z), push Distance along +Z, move into
// camera-relative space and project to the screen. proj is only used in
// ProjectMatrix mode.
func TransformVertices(cfg *Config, proj math3d.Mat4, mesh MeshSource, angles math3d.Vec3, frame *Frame) {
	n := mesh.VertexCount()
	frame.reset(n)

	push := math3d.V3(0, 0, cfg.Distance)
	for i := range n {
		p := mesh.GetVertex(i).Rotate(angles).Add(push).Sub(cfg.Camera.Position)

		frame.Working[i] = p
		frame.Depth[i] = p.Z
		frame.Screen[i] = project(cfg, proj, p)
	}
}

// project maps a camera-relative point to screen space.
func project(cfg *Config, proj math3d.Mat4, p math3d.Vec3) ScreenVertex {
	halfW := float64(cfg.Width) / 2
	halfH := float64(cfg.Height) / 2

	if cfg.Projection == ProjectRawDivide {
		x, y := cfg.Camera.FOVFactor*p.X, cfg.Camera.FOVFactor*p.Y
		if p.Z != 0 {
			x /= p.Z
			y /= p.Z
		}
		return ScreenVertex{
			X: x + halfW,
			Y: halfH - y,
			Z: p.Z,
			W: p.Z,
		}
	}

	c := proj.Project(p)
	return ScreenVertex{
		X: c.X*halfW + halfW,
		Y: halfH - c.Y*halfH,
		Z: c.Z,
		W: c.W,
	}
}
