package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each cell is an upper half block (▀) whose foreground is the top
// pixel and background the bottom pixel, so the framebuffer height should be
// twice the number of terminal rows in area.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(x, topY)),
					Bg: cellColor(fb.GetPixel(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// cellColor maps transparent pixels to the terminal's default color.
func cellColor(c Color) color.Color {
	if c.A() == 0 {
		return nil
	}
	return c.NRGBA()
}

// TerminalSize returns the framebuffer dimensions that fill a terminal of
// cols x rows cells.
func TerminalSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}
