package viz

import (
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/dtqw/internal/walk"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

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

// Set sets a pixel at (x, y) in sub-pixel coordinates, y growing downward.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
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

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// Bars draws values as vertical bars spread across the full canvas width,
// scaled so that max reaches the top. Each sub-pixel column samples the
// value that falls under it.
func (c *Canvas) Bars(values []float64, max float64) {
	if len(values) == 0 || max <= 0 {
		return
	}

	cols, rows := c.Width*2, c.Height*4
	for x := 0; x < cols; x++ {
		v := values[x*len(values)/cols]
		h := int(v/max*float64(rows) + 0.5)
		if h > rows {
			h = rows
		}
		for y := rows - h; y < rows; y++ {
			c.Set(x, y)
		}
	}
}

// DrawDistribution clears the canvas and draws d as bars scaled to its
// most likely position.
func (c *Canvas) DrawDistribution(d walk.Distribution) {
	c.Clear()
	if len(d.Probs) == 0 {
		return
	}
	c.Bars(d.Probs, floats.Max(d.Probs))
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
