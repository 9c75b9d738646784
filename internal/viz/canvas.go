package viz

import "strings"

// Braille Patterns: 2x4 dots per character cell, Unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a terminal drawing surface with sub-character resolution:
// (Width*2) x (Height*4) addressable pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// PlotPoint maps a world coordinate into sub-pixel space and sets it.
// The world square [-scale, scale]² fills the canvas, y up.
func (c *Canvas) PlotPoint(wx, wy, scale float64) {
	if scale <= 0 {
		return
	}
	px := int((wx/scale + 1) / 2 * float64(c.Width*2))
	py := int((1 - wy/scale) / 2 * float64(c.Height*4))
	c.Set(px, py)
}
