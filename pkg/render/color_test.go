package render

import (
	"image/color"
	"math"
	"testing"
)

func TestColorChannels(t *testing.T) {
	c := ARGB(0x80, 0x12, 0x34, 0x56)
	if c != 0x80123456 {
		t.Fatalf("ARGB = %#08x, want 0x80123456", uint32(c))
	}
	if c.A() != 0x80 || c.R() != 0x12 || c.G() != 0x34 || c.B() != 0x56 {
		t.Errorf("channels = %x %x %x %x", c.A(), c.R(), c.G(), c.B())
	}
	if RGB(0xFF, 0, 0) != ColorRed {
		t.Errorf("RGB(255,0,0) = %#08x, want ColorRed", uint32(RGB(0xFF, 0, 0)))
	}
}

func TestColorFromStd(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want Color
	}{
		{"opaque red", color.RGBA{R: 255, A: 255}, ColorRed},
		{"nrgba", color.NRGBA{R: 1, G: 2, B: 3, A: 255}, 0xFF010203},
		{"gray", color.Gray{Y: 0x80}, ColorGray},
		{"transparent", color.RGBA{}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ColorFromStd(tc.in); got != tc.want {
				t.Errorf("ColorFromStd(%v) = %#08x, want %#08x", tc.in, uint32(got), uint32(tc.want))
			}
		})
	}
}

func TestColorImplementsStd(t *testing.T) {
	var c color.Color = Color(0xFF204060)
	r, g, b, a := c.RGBA()
	wr, wg, wb, wa := color.NRGBA{R: 0x20, G: 0x40, B: 0x60, A: 0xFF}.RGBA()
	if r != wr || g != wg || b != wb || a != wa {
		t.Errorf("RGBA() = %d %d %d %d, want %d %d %d %d", r, g, b, a, wr, wg, wb, wa)
	}
}

func TestColorShade(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		f    float64
		want Color
	}{
		{"full", 0xFFFF8040, 1, 0xFFFF8040},
		{"half", 0xFFFF8040, 0.5, 0xFF7F4020},
		{"over one saturates", 0xFFFF8040, 2, 0xFFFF8040},
		{"zero keeps alpha", 0xFFFF8040, 0, 0xFF000000},
		{"negative keeps alpha", 0x80FF8040, -1, 0x80000000},
		{"nan keeps alpha", 0xFFFFFFFF, math.NaN(), 0xFF000000},
		{"no bleed between channels", 0xFF01FF01, 0.999, 0xFF00FE00},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Shade(tc.f); got != tc.want {
				t.Errorf("%#08x.Shade(%v) = %#08x, want %#08x", uint32(tc.c), tc.f, uint32(got), uint32(tc.want))
			}
		})
	}
}
