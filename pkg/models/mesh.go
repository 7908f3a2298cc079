// Package models provides the mesh representation consumed by the softcube
// pipeline, the built-in cube, and a GLTF mesh source.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/softcube/pkg/math3d"
)

var (
	// ErrEmptyMesh is returned by Validate for a mesh without faces.
	ErrEmptyMesh = errors.New("mesh has no faces")
	// ErrFaceIndex is returned by Validate when a face points past the vertex array.
	ErrFaceIndex = errors.New("face index out of range")
)

// Face is a triangle: three indices into Mesh.Vertices, a packed ARGB base
// color and an optional per-corner texture coordinate triple.
// The order A, B, C is the winding used for culling.
type Face struct {
	A, B, C int
	Color   uint32
	UV      [3]math3d.Vec2
	HasUV   bool
}

// Indices returns the face's vertex indices in winding order.
func (f Face) Indices() [3]int {
	return [3]int{f.A, f.B, f.C}
}

// Mesh owns a vertex array and the faces built on it.
// Rendering reads a mesh but never modifies it.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Transform applies a transformation matrix to all vertices in place.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it uniformly so its largest
// extent equals size. A mesh with no extent is only centered.
func (m *Mesh) Fit(size float64) {
	m.CalculateBounds()
	center := m.Center()
	ext := m.Size()
	maxDim := max(ext.X, ext.Y, ext.Z)

	transform := math3d.Translate(center.Negate())
	if maxDim > 0 {
		transform = math3d.ScaleUniform(size / maxDim).Mul(transform)
	}
	m.Transform(transform)
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// Validate checks that the mesh has faces and every face index refers to an
// existing vertex.
func (m *Mesh) Validate() error {
	if len(m.Faces) == 0 {
		return ErrEmptyMesh
	}
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f.Indices() {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d: index %d of %d vertices: %w", i, idx, n, ErrFaceIndex)
			}
		}
	}
	return nil
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// GetVertex returns the model-space position of vertex i.
// Implements render.MeshSource.
func (m *Mesh) GetVertex(i int) math3d.Vec3 {
	return m.Vertices[i]
}

// GetFace returns the vertex indices for face i.
// Implements render.MeshSource.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].Indices()
}

// GetFaceColor returns the packed ARGB base color of face i.
func (m *Mesh) GetFaceColor(i int) uint32 {
	return m.Faces[i].Color
}

// GetFaceUV returns the per-corner texture coordinates of face i, if any.
func (m *Mesh) GetFaceUV(i int) ([3]math3d.Vec2, bool) {
	f := m.Faces[i]
	return f.UV, f.HasUV
}
