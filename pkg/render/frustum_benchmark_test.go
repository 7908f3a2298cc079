package render

import (
	"math/rand"
	"testing"

	"github.com/taigrr/softcube/pkg/math3d"
)

// BenchmarkFrustumExtract benchmarks frustum plane extraction from the projection matrix.
func BenchmarkFrustumExtract(b *testing.B) {
	proj := DefaultCamera().ProjectionMatrix(800, 600)

	for b.Loop() {
		_ = NewFrustumFromMatrix(proj)
	}
}

// BenchmarkAABBIntersection benchmarks AABB vs frustum intersection test.
func BenchmarkAABBIntersection(b *testing.B) {
	frustum := DefaultCamera().Frustum(800, 600)
	box := AABB{Min: math3d.V3(-1, -1, 5), Max: math3d.V3(1, 1, 7)}

	for b.Loop() {
		_ = frustum.IntersectAABB(box)
	}
}

// BenchmarkRejectTriangle benchmarks the per-face trivial reject over a
// mix of visible and off-screen triangles.
func BenchmarkRejectTriangle(b *testing.B) {
	frustum := DefaultCamera().Frustum(800, 600)

	rng := rand.New(rand.NewSource(42))
	tris := make([][3]math3d.Vec3, 256)
	for i := range tris {
		for j := range 3 {
			tris[i][j] = math3d.V3(rng.Float64()*40-20, rng.Float64()*40-20, rng.Float64()*60-10)
		}
	}

	i := 0
	for b.Loop() {
		t := tris[i%len(tris)]
		_ = frustum.RejectTriangle(t[0], t[1], t[2])
		i++
	}
}
