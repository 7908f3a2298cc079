package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taigrr/softcube/pkg/math3d"
)

// Configuration errors.
var (
	ErrInvalidSize = errors.New("framebuffer size must be positive")
	ErrClipPlanes  = errors.New("clip planes must satisfy 0 < near < far")
	ErrFOV         = errors.New("field of view must be in (0, 180) degrees")
	ErrZeroLight   = errors.New("light direction has zero length")
	ErrUnknownMode = errors.New("unknown mode")
)

// CullMode selects which faces the visibility stage discards.
type CullMode int

const (
	// CullBack discards faces whose normal points away from the camera.
	CullBack CullMode = iota
	// CullFront discards faces whose normal points toward the camera.
	CullFront
	// CullNone keeps every face.
	CullNone
)

func (m CullMode) String() string {
	switch m {
	case CullBack:
		return "back"
	case CullFront:
		return "front"
	case CullNone:
		return "none"
	}
	return fmt.Sprintf("CullMode(%d)", int(m))
}

// ProjectionMode selects how camera-space points reach the screen.
type ProjectionMode int

const (
	// ProjectMatrix uses the perspective matrix built from the camera.
	ProjectMatrix ProjectionMode = iota
	// ProjectRawDivide scales x and y by Camera.FOVFactor / z.
	ProjectRawDivide
)

func (m ProjectionMode) String() string {
	switch m {
	case ProjectMatrix:
		return "matrix"
	case ProjectRawDivide:
		return "raw"
	}
	return fmt.Sprintf("ProjectionMode(%d)", int(m))
}

// RenderMode selects how visible faces are rasterized.
type RenderMode int

const (
	ModeFlat RenderMode = iota
	ModeTextured
	ModeWireframe
	ModeFilledWireframe
)

func (m RenderMode) String() string {
	switch m {
	case ModeFlat:
		return "flat"
	case ModeTextured:
		return "textured"
	case ModeWireframe:
		return "wireframe"
	case ModeFilledWireframe:
		return "filled-wireframe"
	}
	return fmt.Sprintf("RenderMode(%d)", int(m))
}

func (m RenderMode) valid() bool {
	return m >= ModeFlat && m <= ModeFilledWireframe
}

// ParseCullMode parses "back", "front" or "none".
func ParseCullMode(s string) (CullMode, error) {
	for _, m := range []CullMode{CullBack, CullFront, CullNone} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("cull %q: %w", s, ErrUnknownMode)
}

// ParseProjectionMode parses "matrix" or "raw".
func ParseProjectionMode(s string) (ProjectionMode, error) {
	for _, m := range []ProjectionMode{ProjectMatrix, ProjectRawDivide} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("projection %q: %w", s, ErrUnknownMode)
}

// ParseRenderMode parses "flat", "textured", "wireframe" or "filled-wireframe".
func ParseRenderMode(s string) (RenderMode, error) {
	for _, m := range []RenderMode{ModeFlat, ModeTextured, ModeWireframe, ModeFilledWireframe} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("render mode %q: %w", s, ErrUnknownMode)
}

// Config holds everything a Renderer needs to turn a mesh and a set of
// rotation angles into pixels. It is read once by NewRenderer.
type Config struct {
	Width, Height int
	Camera        Camera

	// Distance pushes the object along +Z so it sits in front of the camera.
	Distance float64
	// LightDir is the single directional light. Face intensity is
	// normal · normalize(LightDir).
	LightDir math3d.Vec3

	Cull       CullMode
	Projection ProjectionMode
	// ClampLight clamps face intensity to [0, 1].
	ClampLight bool
	Mode       RenderMode

	Background Color
	// GridColor dots the background every GridSpacing pixels.
	// A GridSpacing of 0 disables the grid.
	GridColor   Color
	GridSpacing int
	// WireColor is used for outlines in the wireframe modes.
	WireColor Color
}

// DefaultConfig returns the configuration for a width x height buffer: a
// 60° camera at the origin, the object 6 units away, light shining along
// -Z, backface culling, matrix projection and clamped flat shading.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:       width,
		Height:      height,
		Camera:      DefaultCamera(),
		Distance:    6,
		LightDir:    math3d.V3(0, 0, -1),
		Cull:        CullBack,
		Projection:  ProjectMatrix,
		ClampLight:  true,
		Mode:        ModeFlat,
		Background:  ColorBlack,
		GridColor:   0xFF333333,
		GridSpacing: 5,
		WireColor:   ColorWhite,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", c.Width, c.Height, ErrInvalidSize)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("near %v far %v: %w", c.Camera.Near, c.Camera.Far, ErrClipPlanes)
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		return fmt.Errorf("fov %v: %w", c.Camera.FOVDegrees, ErrFOV)
	}
	if _, ok := c.LightDir.Normalize(); !ok {
		return ErrZeroLight
	}
	if c.Cull < CullBack || c.Cull > CullNone {
		return fmt.Errorf("%v: %w", c.Cull, ErrUnknownMode)
	}
	if c.Projection < ProjectMatrix || c.Projection > ProjectRawDivide {
		return fmt.Errorf("%v: %w", c.Projection, ErrUnknownMode)
	}
	if !c.Mode.valid() {
		return fmt.Errorf("%v: %w", c.Mode, ErrUnknownMode)
	}
	return nil
}
