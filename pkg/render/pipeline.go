package render

import (
	"fmt"
	"log/slog"

	"github.com/taigrr/softcube/pkg/math3d"
)

// Stats counts what happened to a mesh's faces during one Render call.
type Stats struct {
	Faces      int // Faces in the mesh
	Degenerate int // Faces without a usable normal
	Clipped    int // Faces rejected by the frustum test
	Culled     int // Faces rejected by the culling mode
	Drawn      int // Faces rasterized
}

// Renderer runs the full pipeline into a framebuffer. It keeps its working
// buffers between frames to avoid allocations, but no frame depends on the
// previous one: the same mesh and angles always produce the same pixels.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	cfg     Config
	fb      *Framebuffer
	proj    math3d.Mat4
	frustum Frustum
	light   math3d.Vec3
	texture *Texture

	frame Frame
	items []DrawItem
}

// NewRenderer validates cfg and returns a renderer drawing into fb. A nil
// fb allocates a framebuffer of the configured size.
func NewRenderer(cfg Config, fb *Framebuffer) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if fb == nil {
		fb = NewFramebuffer(cfg.Width, cfg.Height)
	}
	if fb.Width != cfg.Width || fb.Height != cfg.Height {
		return nil, fmt.Errorf("framebuffer %dx%d, config %dx%d: %w",
			fb.Width, fb.Height, cfg.Width, cfg.Height, ErrInvalidSize)
	}

	light, _ := cfg.LightDir.Normalize()
	r := &Renderer{
		cfg:     cfg,
		fb:      fb,
		proj:    cfg.Camera.ProjectionMatrix(cfg.Width, cfg.Height),
		frustum: cfg.Camera.Frustum(cfg.Width, cfg.Height),
		light:   light,
	}

	Logger().Info("renderer created",
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
		slog.String("mode", cfg.Mode.String()),
		slog.String("cull", cfg.Cull.String()),
		slog.String("projection", cfg.Projection.String()),
	)
	return r, nil
}

// Config returns the renderer's configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Framebuffer returns the buffer the renderer draws into.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// SetTexture sets the texture used by ModeTextured. nil is valid and makes
// textured rendering fall back to flat fill.
func (r *Renderer) SetTexture(tex *Texture) {
	r.texture = tex
}

// Texture returns the current texture, which may be nil.
func (r *Renderer) Texture() *Texture {
	return r.texture
}

// SetMode switches the rasterization mode. An unknown mode returns
// ErrUnknownMode and leaves the current one in place.
func (r *Renderer) SetMode(m RenderMode) error {
	if !m.valid() {
		return fmt.Errorf("%v: %w", m, ErrUnknownMode)
	}
	r.cfg.Mode = m
	return nil
}

// Render draws mesh rotated by angles: clear, transform, cull, shade,
// sort, then rasterize back to front. It runs to completion on the calling
// goroutine.
func (r *Renderer) Render(mesh MeshSource, angles math3d.Vec3) Stats {
	cfg := &r.cfg
	r.fb.ClearGrid(cfg.Background, cfg.GridColor, cfg.GridSpacing)

	TransformVertices(cfg, r.proj, mesh, angles, &r.frame)

	stats := Stats{Faces: mesh.TriangleCount()}
	r.items = r.items[:0]

	// Whole-mesh early out. Raw-divide projection does not follow the
	// matrix frustum, so only the near plane applies there.
	if cfg.Projection == ProjectMatrix && !r.frustum.IntersectAABB(BoundsOf(r.frame.Working)) {
		stats.Clipped = stats.Faces
		Logger().Debug("mesh outside frustum", slog.Int("faces", stats.Faces))
		return stats
	}

	camera := math3d.Zero3() // working positions are camera-relative
	for i := range stats.Faces {
		idx := mesh.GetFace(i)
		v0, v1, v2 := r.frame.Working[idx[0]], r.frame.Working[idx[1]], r.frame.Working[idx[2]]

		normal, ok := FaceNormal(v0, v1, v2)
		if !ok {
			stats.Degenerate++
			continue
		}
		if r.rejected(v0, v1, v2) {
			stats.Clipped++
			continue
		}
		if !Facing(normal, v0, camera, cfg.Cull) {
			stats.Culled++
			continue
		}

		r.items = append(r.items, DrawItem{
			Face:      i,
			Depth:     AverageDepth(r.frame.Depth, idx),
			Intensity: LightIntensity(normal, r.light, cfg.ClampLight),
		})
	}

	SortBackToFront(r.items)

	for _, it := range r.items {
		r.draw(mesh, it)
	}
	stats.Drawn = len(r.items)

	Logger().Debug("frame rendered",
		slog.Int("faces", stats.Faces),
		slog.Int("drawn", stats.Drawn),
		slog.Int("culled", stats.Culled),
		slog.Int("clipped", stats.Clipped),
		slog.Int("degenerate", stats.Degenerate),
	)
	return stats
}

func (r *Renderer) rejected(a, b, c math3d.Vec3) bool {
	if r.cfg.Projection == ProjectRawDivide {
		near := r.frustum.Planes[FrustumNear]
		return near.DistanceToPoint(a) < 0 || near.DistanceToPoint(b) < 0 || near.DistanceToPoint(c) < 0
	}
	return r.frustum.RejectTriangle(a, b, c)
}

// draw rasterizes one sorted face according to the render mode.
func (r *Renderer) draw(mesh MeshSource, it DrawItem) {
	idx := mesh.GetFace(it.Face)
	sa, sb, sc := r.frame.Screen[idx[0]], r.frame.Screen[idx[1]], r.frame.Screen[idx[2]]
	color := Color(mesh.GetFaceColor(it.Face))

	switch r.cfg.Mode {
	case ModeWireframe:
		DrawTriangleOutline(r.fb, sa.Point(), sb.Point(), sc.Point(), r.cfg.WireColor)
	case ModeFilledWireframe:
		FillTriangle(r.fb, sa.Point(), sb.Point(), sc.Point(), color.Shade(it.Intensity))
		DrawTriangleOutline(r.fb, sa.Point(), sb.Point(), sc.Point(), r.cfg.WireColor)
	case ModeTextured:
		if uv, ok := mesh.GetFaceUV(it.Face); ok && r.texture != nil {
			sa.UV, sb.UV, sc.UV = uv[0], uv[1], uv[2]
			DrawTexturedTriangle(r.fb, r.texture, sa, sb, sc, it.Intensity)
			return
		}
		FillTriangle(r.fb, sa.Point(), sb.Point(), sc.Point(), color.Shade(it.Intensity))
	default:
		FillTriangle(r.fb, sa.Point(), sb.Point(), sc.Point(), color.Shade(it.Intensity))
	}
}
