// Package render implements the softcube software pipeline: vertex transform
// and projection, backface culling, painter's ordering, flat lighting and
// scanline rasterization into a packed 32-bit pixel buffer.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// ErrBufferSize is returned when a destination slice is too small.
var ErrBufferSize = errors.New("destination buffer too small")

// Framebuffer is a row-major grid of packed ARGB pixels. The rasterizer
// writes into it and a presenter copies it out once per frame.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// ClearGrid fills the framebuffer with bg and puts a dot of color dot at
// every pixel whose x and y are both multiples of spacing.
// A spacing below 1 clears without dots.
func (fb *Framebuffer) ClearGrid(bg, dot Color, spacing int) {
	fb.Clear(bg)
	if spacing < 1 {
		return
	}
	for y := 0; y < fb.Height; y += spacing {
		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		for x := 0; x < fb.Width; x += spacing {
			row[x] = dot
		}
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, c := range fb.Pixels {
		o := i * 4
		img.Pix[o] = c.R()
		img.Pix[o+1] = c.G()
		img.Pix[o+2] = c.B()
		img.Pix[o+3] = c.A()
	}
	return img
}

// Scaled returns the framebuffer enlarged by an integer factor with
// nearest-neighbour sampling, which keeps pixel edges hard.
func (fb *Framebuffer) Scaled(factor int) image.Image {
	src := fb.ToImage()
	if factor <= 1 {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, fb.Width*factor, fb.Height*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// RGBABytes writes the framebuffer into dst as premultiplied RGBA bytes,
// four per pixel, the layout window toolkits upload as textures.
func (fb *Framebuffer) RGBABytes(dst []byte) error {
	if len(dst) < len(fb.Pixels)*4 {
		return fmt.Errorf("need %d bytes, have %d: %w", len(fb.Pixels)*4, len(dst), ErrBufferSize)
	}
	for i, c := range fb.Pixels {
		r, g, b, a := uint32(c.R()), uint32(c.G()), uint32(c.B()), uint32(c.A())
		if a != 0xFF {
			r, g, b = r*a/0xFF, g*a/0xFF, b*a/0xFF
		}
		o := i * 4
		dst[o] = uint8(r)
		dst[o+1] = uint8(g)
		dst[o+2] = uint8(b)
		dst[o+3] = uint8(a)
	}
	return nil
}

// SavePNG saves the framebuffer as a PNG file, enlarged by scale.
func (fb *Framebuffer) SavePNG(path string, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.Scaled(scale)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
