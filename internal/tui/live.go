// Package tui prints a walk as it evolves using plain ANSI escapes, for
// terminals where the full viewer is not wanted.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/dtqw/internal/walk"
)

const (
	width       = 70
	height      = 16
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer is a [walk.Observer] that redraws the position distribution
// as a character bar chart, at most frameRate times per second. Step 0 and
// the final step are always drawn when frameRate is zero.
type LiveRenderer struct {
	out       io.Writer
	title     string
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	frames    int
}

func NewLiveRenderer(out io.Writer, title string, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:       out,
		title:     title,
		frameRate: frameRate,
		canvas:    canvas,
	}
}

// Frames is the number of frames drawn so far.
func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) OnStep(step int, s walk.State) {
	if r.frameRate > 0 {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
		r.lastFrame = time.Now()
	}

	d, err := walk.Measure(s)
	if err != nil {
		return
	}

	r.clear()
	r.drawBars(d.Probs)
	r.render(step, d)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) drawBars(probs []float64) {
	peak := 0.0
	for _, p := range probs {
		peak = max(peak, p)
	}
	if peak == 0 {
		return
	}

	for x := 0; x < width; x++ {
		p := probs[x*len(probs)/width]
		h := int(p / peak * float64(height))
		for y := height - h; y < height; y++ {
			r.canvas[y][x] = '#'
		}
	}
}

func (r *LiveRenderer) render(step int, d walk.Distribution) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  step=%d\n", r.title, step))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  %-*d%*d\n", width/2, -d.Lattice.N, width-width/2, d.Lattice.N))
	b.WriteString(fmt.Sprintf("  total=%.12f\n", d.Total()))

	fmt.Fprint(r.out, b.String())
	r.frames++
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
