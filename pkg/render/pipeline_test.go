package render

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/taigrr/softcube/pkg/math3d"
	"github.com/taigrr/softcube/pkg/models"
)

// testMesh is a minimal MeshSource for hand-built geometry.
type testMesh struct {
	verts []math3d.Vec3
	faces [][3]int
	color uint32
}

func (m *testMesh) VertexCount() int                     { return len(m.verts) }
func (m *testMesh) TriangleCount() int                   { return len(m.faces) }
func (m *testMesh) GetVertex(i int) math3d.Vec3          { return m.verts[i] }
func (m *testMesh) GetFace(i int) [3]int                 { return m.faces[i] }
func (m *testMesh) GetFaceColor(int) uint32              { return m.color }
func (m *testMesh) GetFaceUV(int) ([3]math3d.Vec2, bool) { return [3]math3d.Vec2{}, false }

func newTestRenderer(t *testing.T, modify func(*Config)) *Renderer {
	t.Helper()
	cfg := DefaultConfig(160, 120)
	if modify != nil {
		modify(&cfg)
	}
	r, err := NewRenderer(cfg, nil)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestNewRenderer(t *testing.T) {
	fb := NewFramebuffer(160, 120)
	r, err := NewRenderer(DefaultConfig(160, 120), fb)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if r.Framebuffer() != fb {
		t.Error("renderer should draw into the given framebuffer")
	}
	if r.Texture() != nil {
		t.Error("new renderer should have no texture")
	}

	if _, err := NewRenderer(DefaultConfig(160, 120), NewFramebuffer(10, 10)); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("size mismatch: err = %v, want ErrInvalidSize", err)
	}

	bad := DefaultConfig(160, 120)
	bad.Camera.FOVDegrees = -5
	if _, err := NewRenderer(bad, nil); !errors.Is(err, ErrFOV) {
		t.Errorf("bad config: err = %v, want ErrFOV", err)
	}
}

func TestRenderCubeFront(t *testing.T) {
	r := newTestRenderer(t, nil)
	stats := r.Render(models.NewCube(), math3d.Zero3())

	want := Stats{Faces: 12, Culled: 10, Drawn: 2}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	fb := r.Framebuffer()
	if got := fb.GetPixel(80, 60); got != Color(models.CubeFront) {
		t.Errorf("center = %#08x, want front red", uint32(got))
	}
	if got := fb.GetPixel(0, 0); got != 0xFF333333 {
		t.Errorf("grid dot = %#08x, want 0xFF333333", uint32(got))
	}
	if got := fb.GetPixel(1, 1); got != ColorBlack {
		t.Errorf("background = %#08x, want black", uint32(got))
	}

	// The front face covers roughly x 59..100, y 39..80.
	for _, p := range [][2]int{{60, 40}, {99, 40}, {60, 79}, {99, 79}} {
		if fb.GetPixel(p[0], p[1]) != Color(models.CubeFront) {
			t.Errorf("pixel %v should be inside the front face", p)
		}
	}
	for _, p := range [][2]int{{58, 60}, {101, 60}, {80, 38}, {80, 81}} {
		if fb.GetPixel(p[0], p[1]) == Color(models.CubeFront) {
			t.Errorf("pixel %v should be outside the front face", p)
		}
	}
}

func TestRenderCullModes(t *testing.T) {
	tests := []struct {
		name   string
		cull   CullMode
		want   Stats
		center Color
	}{
		{"back", CullBack, Stats{Faces: 12, Culled: 10, Drawn: 2}, Color(models.CubeFront)},
		{"front", CullFront, Stats{Faces: 12, Culled: 2, Drawn: 10}, ColorBlack},
		{"none", CullNone, Stats{Faces: 12, Drawn: 12}, Color(models.CubeFront)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRenderer(t, func(c *Config) { c.Cull = tc.cull })
			stats := r.Render(models.NewCube(), math3d.Zero3())
			if stats != tc.want {
				t.Errorf("stats = %+v, want %+v", stats, tc.want)
			}
			// With front faces culled the far back face shows through. It is
			// turned away from the light, so it shades black.
			if got := r.Framebuffer().GetPixel(81, 61); got != tc.center {
				t.Errorf("center = %#08x, want %#08x", uint32(got), uint32(tc.center))
			}
		})
	}
}

func TestRenderRotatedCubeCounts(t *testing.T) {
	corner := math.Atan(1 / math.Sqrt2)
	tests := []struct {
		name   string
		angles math3d.Vec3
		drawn  []int
	}{
		{"front", math3d.Zero3(), []int{0, 1}},
		{"corner", math3d.V3(corner, math.Pi/4, 0), []int{0, 1, 6, 7, 10, 11}},
		{"flipped", math3d.V3(math.Pi, 0, 0), []int{4, 5}},
		{"quarter turn", math3d.V3(0, math.Pi/2, 0), []int{6, 7}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRenderer(t, nil)
			stats := r.Render(models.NewCube(), tc.angles)
			if stats.Drawn != len(tc.drawn) || stats.Culled != 12-len(tc.drawn) {
				t.Fatalf("stats = %+v, want %d drawn", stats, len(tc.drawn))
			}
			var got []int
			for _, it := range r.items {
				got = append(got, it.Face)
			}
			slices.Sort(got)
			if !slices.Equal(got, tc.drawn) {
				t.Errorf("drawn faces = %v, want %v", got, tc.drawn)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	r := newTestRenderer(t, nil)
	cube := models.NewCube()
	angles := math3d.V3(0.7, 1.9, -0.4)

	r.Render(cube, angles)
	first := slices.Clone(r.Framebuffer().Pixels)

	r.Render(cube, math3d.V3(2, 2, 2))
	r.Render(cube, angles)
	if !slices.Equal(first, r.Framebuffer().Pixels) {
		t.Error("same mesh and angles produced different pixels")
	}

	other := newTestRenderer(t, nil)
	other.Render(cube, angles)
	if !slices.Equal(first, other.Framebuffer().Pixels) {
		t.Error("fresh renderer produced different pixels")
	}
}

func TestRenderDoesNotModifyMesh(t *testing.T) {
	r := newTestRenderer(t, nil)
	cube := models.NewCube()
	before := cube.Clone()

	r.Render(cube, math3d.V3(1, 2, 3))
	if !slices.Equal(before.Vertices, cube.Vertices) || !slices.Equal(before.Faces, cube.Faces) {
		t.Error("Render modified the mesh")
	}
}

func TestRenderTexturedQuadrants(t *testing.T) {
	r := newTestRenderer(t, func(c *Config) { c.Mode = ModeTextured })
	r.SetTexture(quadTexture())
	r.Render(models.NewCube(), math3d.Zero3())

	fb := r.Framebuffer()
	tests := []struct {
		x, y int
		want Color
	}{
		{65, 45, ColorRed},
		{95, 45, ColorGreen},
		{65, 75, ColorBlue},
		{95, 75, ColorWhite},
	}
	for _, tc := range tests {
		if got := fb.GetPixel(tc.x, tc.y); got != tc.want {
			t.Errorf("pixel (%d,%d) = %#08x, want %#08x", tc.x, tc.y, uint32(got), uint32(tc.want))
		}
	}
}

func TestRenderTexturedFallback(t *testing.T) {
	cube := models.NewCube()
	angles := math3d.V3(0.5, 0.9, 0.1)

	flat := newTestRenderer(t, nil)
	flat.Render(cube, angles)

	textured := newTestRenderer(t, func(c *Config) { c.Mode = ModeTextured })
	textured.Render(cube, angles)
	if !slices.Equal(flat.Framebuffer().Pixels, textured.Framebuffer().Pixels) {
		t.Error("textured mode without a texture should match flat fill")
	}

	// A mesh without UVs also falls back, even with a texture.
	noUV := cube.Clone()
	for i := range noUV.Faces {
		noUV.Faces[i].HasUV = false
	}
	textured.SetTexture(quadTexture())
	textured.Render(noUV, angles)
	if !slices.Equal(flat.Framebuffer().Pixels, textured.Framebuffer().Pixels) {
		t.Error("faces without UVs should be filled flat")
	}
}

func TestRenderWireframe(t *testing.T) {
	r := newTestRenderer(t, func(c *Config) { c.Mode = ModeWireframe })
	r.Render(models.NewCube(), math3d.Zero3())
	fb := r.Framebuffer()

	if got := fb.GetPixel(80, 39); got != ColorWhite {
		t.Errorf("top edge = %#08x, want white", uint32(got))
	}
	if got := fb.GetPixel(81, 61); got != ColorBlack {
		t.Errorf("interior = %#08x, want background", uint32(got))
	}

	if err := r.SetMode(ModeFilledWireframe); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	r.Render(models.NewCube(), math3d.Zero3())
	if got := fb.GetPixel(80, 39); got != ColorWhite {
		t.Errorf("filled top edge = %#08x, want white", uint32(got))
	}
	if got := fb.GetPixel(81, 61); got != Color(models.CubeFront) {
		t.Errorf("filled interior = %#08x, want red", uint32(got))
	}
}

func TestRendererSetMode(t *testing.T) {
	r := newTestRenderer(t, nil)

	for _, m := range []RenderMode{ModeTextured, ModeWireframe, ModeFilledWireframe, ModeFlat} {
		if err := r.SetMode(m); err != nil {
			t.Errorf("SetMode(%v): %v", m, err)
		}
		if got := r.Config().Mode; got != m {
			t.Errorf("Mode = %v, want %v", got, m)
		}
	}

	for _, m := range []RenderMode{-1, ModeFilledWireframe + 1} {
		if err := r.SetMode(m); !errors.Is(err, ErrUnknownMode) {
			t.Errorf("SetMode(%v) = %v, want ErrUnknownMode", m, err)
		}
	}
	if got := r.Config().Mode; got != ModeFlat {
		t.Errorf("rejected mode changed Mode to %v", got)
	}
	if err := r.Config().Validate(); err != nil {
		t.Errorf("Validate after rejected SetMode: %v", err)
	}
}

func TestRenderRawProjection(t *testing.T) {
	r := newTestRenderer(t, func(c *Config) { c.Projection = ProjectRawDivide })
	stats := r.Render(models.NewCube(), math3d.Zero3())

	// 640/5 puts the front face corners well outside a 160x120 buffer.
	if stats.Drawn != 2 || stats.Clipped != 0 {
		t.Errorf("stats = %+v, want 2 drawn, none clipped", stats)
	}
	for _, p := range [][2]int{{1, 1}, {80, 60}, {158, 118}} {
		if got := r.Framebuffer().GetPixel(p[0], p[1]); got != Color(models.CubeFront) {
			t.Errorf("pixel %v = %#08x, want red", p, uint32(got))
		}
	}
}

func TestRenderBehindCamera(t *testing.T) {
	for _, proj := range []ProjectionMode{ProjectMatrix, ProjectRawDivide} {
		t.Run(proj.String(), func(t *testing.T) {
			r := newTestRenderer(t, func(c *Config) {
				c.Projection = proj
				c.Camera.Position = math3d.V3(0, 0, 10)
			})
			stats := r.Render(models.NewCube(), math3d.Zero3())
			if stats.Clipped != 12 || stats.Drawn != 0 {
				t.Errorf("stats = %+v, want all faces clipped", stats)
			}
			if got := r.Framebuffer().GetPixel(81, 61); got != ColorBlack {
				t.Errorf("center = %#08x, want background", uint32(got))
			}
		})
	}
}

func TestRenderDegenerateFaces(t *testing.T) {
	mesh := &testMesh{
		verts: []math3d.Vec3{
			{X: -1, Y: -1, Z: 0}, {X: -1, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 2, Y: 2, Z: 0},
		},
		faces: [][3]int{
			{0, 1, 2}, // visible
			{0, 0, 1}, // repeated vertex
			{0, 2, 3}, // collinear
		},
		color: uint32(ColorCyan),
	}
	r := newTestRenderer(t, nil)
	stats := r.Render(mesh, math3d.Zero3())

	want := Stats{Faces: 3, Degenerate: 2, Drawn: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestRenderPainterOrder(t *testing.T) {
	// Two overlapping squares facing the camera: the near one is listed
	// first but must end up on top.
	quad := func(z float64) []math3d.Vec3 {
		return []math3d.Vec3{{X: -1, Y: -1, Z: z}, {X: -1, Y: 1, Z: z}, {X: 1, Y: 1, Z: z}, {X: 1, Y: -1, Z: z}}
	}
	verts := append(quad(-1), quad(1)...)
	mesh := models.NewMesh("layers")
	mesh.Vertices = verts
	mesh.Faces = []models.Face{
		{A: 0, B: 1, C: 2, Color: models.CubeFront},
		{A: 0, B: 2, C: 3, Color: models.CubeFront},
		{A: 4, B: 5, C: 6, Color: models.CubeBack},
		{A: 4, B: 6, C: 7, Color: models.CubeBack},
	}

	r := newTestRenderer(t, nil)
	stats := r.Render(mesh, math3d.Zero3())
	if stats.Drawn != 4 {
		t.Fatalf("stats = %+v, want 4 drawn", stats)
	}
	if got := r.Framebuffer().GetPixel(81, 61); got != Color(models.CubeFront) {
		t.Errorf("center = %#08x, want the near square", uint32(got))
	}
	if r.items[0].Depth < r.items[len(r.items)-1].Depth {
		t.Error("draw list not sorted back to front")
	}
}

func TestRenderUnclampedLight(t *testing.T) {
	r := newTestRenderer(t, func(c *Config) {
		c.ClampLight = false
		c.LightDir = math3d.V3(0, 0, 1)
	})
	r.Render(models.NewCube(), math3d.Zero3())
	// Intensity -1 still shades to black rather than wrapping.
	if got := r.Framebuffer().GetPixel(81, 61); got != ColorBlack {
		t.Errorf("center = %#08x, want black", uint32(got))
	}
}

func BenchmarkRenderCube(b *testing.B) {
	cfg := DefaultConfig(640, 480)
	r, err := NewRenderer(cfg, nil)
	if err != nil {
		b.Fatal(err)
	}
	cube := models.NewCube()
	angles := math3d.V3(0.5, 0.8, 0.2)

	for b.Loop() {
		r.Render(cube, angles)
	}
}

func BenchmarkRenderCubeTextured(b *testing.B) {
	cfg := DefaultConfig(640, 480)
	cfg.Mode = ModeTextured
	r, err := NewRenderer(cfg, nil)
	if err != nil {
		b.Fatal(err)
	}
	r.SetTexture(NewCheckerTexture(64, 64, 8, ColorWhite, ColorGray))
	cube := models.NewCube()
	angles := math3d.V3(0.5, 0.8, 0.2)

	for b.Loop() {
		r.Render(cube, angles)
	}
}
