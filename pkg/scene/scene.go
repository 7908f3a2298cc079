// Package scene owns what changes between frames: the mesh being shown,
// its texture and the rotation accumulator. The renderer only ever sees a
// snapshot of it.
package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/taigrr/softcube/pkg/models"
	"github.com/taigrr/softcube/pkg/render"
)

// ErrUnsupportedModel is returned for model files that are not GLTF.
var ErrUnsupportedModel = errors.New("unsupported model format")

// FitSize is the largest extent a loaded model is scaled to, matching the
// built-in cube.
const FitSize = 2.0

// Checker colors used when a texture is requested but none is available.
var (
	CheckerLight = render.RGB(200, 200, 200)
	CheckerDark  = render.RGB(100, 100, 100)
)

// Options selects the assets a scene is built from.
type Options struct {
	// ModelPath is a .gltf or .glb file. Empty means the built-in cube.
	ModelPath string
	// TexturePath overrides any texture embedded in the model.
	TexturePath string
	// Checker falls back to a procedural checkerboard when no other
	// texture could be loaded.
	Checker bool
	// FPS is the rate Step is called at. Zero means 60.
	FPS int
}

// Scene is the mesh, texture and rotation shown by a viewer.
type Scene struct {
	Name     string
	Mesh     *models.Mesh
	Texture  *render.Texture // may be nil
	Rotation *Rotation
}

// Load builds a scene from opts. Model errors are fatal; texture errors are
// logged and leave the scene untextured, which renders as flat fill.
func Load(opts Options) (*Scene, error) {
	log := render.Logger()
	s := &Scene{
		Name:     "cube",
		Rotation: NewRotation(opts.FPS),
	}

	var embedded *render.Texture
	if opts.ModelPath == "" {
		s.Mesh = models.NewCube()
	} else {
		ext := strings.ToLower(filepath.Ext(opts.ModelPath))
		if ext != ".glb" && ext != ".gltf" {
			return nil, fmt.Errorf("%s: %w (use .gltf or .glb)", opts.ModelPath, ErrUnsupportedModel)
		}
		mesh, img, err := models.LoadGLTF(opts.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		mesh.Fit(FitSize)
		s.Mesh = mesh
		s.Name = filepath.Base(opts.ModelPath)
		if img != nil {
			embedded = render.TextureFromImage(img)
		}
	}

	if opts.TexturePath != "" {
		tex, err := render.LoadTexture(opts.TexturePath)
		if err != nil {
			log.Warn("texture unavailable, using fallback", slog.String("path", opts.TexturePath), slog.Any("err", err))
		} else {
			s.Texture = tex
		}
	}
	if s.Texture == nil && embedded != nil {
		s.Texture = embedded
		log.Info("using embedded texture", slog.Int("width", embedded.Width), slog.Int("height", embedded.Height))
	}
	if s.Texture == nil && opts.Checker {
		s.Texture = render.NewCheckerTexture(64, 64, 8, CheckerLight, CheckerDark)
	}

	log.Info("scene loaded",
		slog.String("name", s.Name),
		slog.Int("vertices", s.Mesh.VertexCount()),
		slog.Int("triangles", s.Mesh.TriangleCount()),
		slog.Bool("textured", s.Texture != nil),
	)
	return s, nil
}

// Step advances the animation by dt seconds.
func (s *Scene) Step(dt float64) {
	s.Rotation.Advance(dt)
	s.Rotation.Wrap()
}

// Render draws the current state with r.
func (s *Scene) Render(r *render.Renderer) render.Stats {
	r.SetTexture(s.Texture)
	return r.Render(s.Mesh, s.Rotation.Angles)
}
