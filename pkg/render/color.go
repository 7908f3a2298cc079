package render

import (
	"image/color"
	"math"
)

// Color is a packed 32-bit ARGB pixel (0xAARRGGBB), the format of every
// Framebuffer and Texture.
type Color uint32

// Colors for convenience
const (
	ColorBlack   Color = 0xFF000000
	ColorWhite   Color = 0xFFFFFFFF
	ColorRed     Color = 0xFFFF0000
	ColorGreen   Color = 0xFF00FF00
	ColorBlue    Color = 0xFF0000FF
	ColorYellow  Color = 0xFFFFFF00
	ColorCyan    Color = 0xFF00FFFF
	ColorMagenta Color = 0xFFFF00FF
	ColorGray    Color = 0xFF808080
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return ARGB(0xFF, r, g, b)
}

// ARGB creates a color from alpha and RGB values.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// ColorFromStd converts any color.Color to a packed Color.
func ColorFromStd(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// NRGBA returns the color as a non-premultiplied color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// RGBA implements color.Color, so a Color can be handed straight to
// image and terminal APIs.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Shade scales each RGB channel by f and keeps alpha. Every channel is
// masked out, scaled and masked back in on its own, so a channel saturates
// at 0 or 255 instead of bleeding into its neighbour.
func (c Color) Shade(f float64) Color {
	if f >= 1 {
		f = 1
	}
	if f <= 0 || math.IsNaN(f) {
		return c & 0xFF000000
	}
	r := uint32(float64(c&0x00FF0000)*f) & 0x00FF0000
	g := uint32(float64(c&0x0000FF00)*f) & 0x0000FF00
	b := uint32(float64(c&0x000000FF)*f) & 0x000000FF
	return c&0xFF000000 | Color(r|g|b)
}
