package models

import "github.com/taigrr/softcube/pkg/math3d"

// Cube face colors, packed ARGB.
const (
	CubeFront  uint32 = 0xFFFF0000
	CubeRight  uint32 = 0xFF00FF00
	CubeBack   uint32 = 0xFF0000FF
	CubeLeft   uint32 = 0xFFFFFF00
	CubeTop    uint32 = 0xFF00FFFF
	CubeBottom uint32 = 0xFFFFFFFF
)

var cubeVertices = [8]math3d.Vec3{
	{X: -1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: -1, Z: 1},
}

// Each quad is two triangles sharing the same corner UV layout.
var (
	cubeUVFirst  = [3]math3d.Vec2{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}}
	cubeUVSecond = [3]math3d.Vec2{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}}
)

var cubeQuads = [6]struct {
	first, second [3]int
	color         uint32
}{
	{[3]int{0, 1, 2}, [3]int{0, 2, 3}, CubeFront},
	{[3]int{3, 2, 4}, [3]int{3, 4, 5}, CubeRight},
	{[3]int{5, 4, 6}, [3]int{5, 6, 7}, CubeBack},
	{[3]int{7, 6, 1}, [3]int{7, 1, 0}, CubeLeft},
	{[3]int{1, 6, 4}, [3]int{1, 4, 2}, CubeTop},
	{[3]int{5, 7, 0}, [3]int{5, 0, 3}, CubeBottom},
}

var cube = buildCube()

// NewCube returns the unit cube spanning [-1,1] on every axis: 8 vertices,
// 12 clockwise triangles (front, right, back, left, top, bottom) with one
// color and a full [0,1] UV square per side. Each call returns a fresh copy.
func NewCube() *Mesh {
	return cube.Clone()
}

func buildCube() *Mesh {
	m := NewMesh("cube")
	m.Vertices = append(m.Vertices, cubeVertices[:]...)

	for _, q := range cubeQuads {
		m.Faces = append(m.Faces,
			Face{A: q.first[0], B: q.first[1], C: q.first[2], Color: q.color, UV: cubeUVFirst, HasUV: true},
			Face{A: q.second[0], B: q.second[1], C: q.second[2], Color: q.color, UV: cubeUVSecond, HasUV: true},
		)
	}

	m.CalculateBounds()
	return m
}
