package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrEmptyTexture is returned for images with no pixels.
var ErrEmptyTexture = errors.New("texture has no pixels")

// WrapMode determines how texel coordinates outside the texture are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

// Texture is a row-major grid of packed colors. It is read-only once loaded
// and may be shared by any number of renderers.
type Texture struct {
	Width  int
	Height int
	Pixels []Color
	Wrap   WrapMode
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// LoadTexture loads a texture from a PNG, JPEG, BMP, TIFF or WebP file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	tex := TextureFromImage(img)
	if len(tex.Pixels) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyTexture)
	}
	return tex, nil
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := NewTexture(bounds.Dx(), bounds.Dy())

	for y := range tex.Height {
		for x := range tex.Width {
			tex.Pixels[y*tex.Width+x] = ColorFromStd(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	if checkSize < 1 {
		checkSize = 1
	}
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.Pixels[y*width+x] = c1
			} else {
				tex.Pixels[y*width+x] = c2
			}
		}
	}
	return tex
}

// Texel returns the texel at integer coordinates. Coordinates outside the
// texture wrap with a non-negative modulo, or clamp to the edge for
// WrapClamp, so every call indexes inside Pixels.
func (t *Texture) Texel(x, y int) Color {
	if t.Width <= 0 || t.Height <= 0 {
		return 0
	}
	x = wrapIndex(x, t.Width, t.Wrap)
	y = wrapIndex(y, t.Height, t.Wrap)
	return t.Pixels[y*t.Width+x]
}

// Sample returns the nearest texel for texture coordinates (u, v), where
// (0,0) is the top-left corner of the image and (1,1) the bottom-right.
func (t *Texture) Sample(u, v float64) Color {
	return t.Texel(texelCoord(u, t.Width), texelCoord(v, t.Height))
}

// texelCoord maps a texture coordinate to an unwrapped texel index.
func texelCoord(u float64, size int) int {
	f := math.Floor(u * float64(size))
	// Keep huge or non-finite coordinates inside int range before wrapping.
	if math.IsNaN(f) {
		return 0
	}
	const limit = 1 << 30
	f = math.Max(-limit, math.Min(limit, f))
	return int(f)
}

// wrapIndex wraps a texel index into [0, size).
func wrapIndex(x, size int, mode WrapMode) int {
	switch mode {
	case WrapClamp:
		if x < 0 {
			return 0
		}
		if x >= size {
			return size - 1
		}
		return x
	default:
		x %= size
		if x < 0 {
			x += size
		}
		return x
	}
}
