package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dtqw/internal/walk"
)

type PlotOptions struct {
	Height  int
	Width   int
	Caption string
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Height: 15, Width: 80}
}

// PlotDistribution draws P(position) as an ASCII line graph. The x axis runs
// from -N on the left to N on the right.
func PlotDistribution(d walk.Distribution, opts PlotOptions) string {
	if len(d.Probs) == 0 {
		return ""
	}

	caption := opts.Caption
	if caption == "" {
		caption = fmt.Sprintf("P(x), x in [%d, %d]", -d.Lattice.N, d.Lattice.N)
	}

	data := d.Probs
	if len(data) == 1 {
		// asciigraph needs two points to draw a line
		data = []float64{data[0], data[0]}
	}

	return asciigraph.Plot(data,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(caption),
	)
}

// PlotSeries draws any series with the same options, for timing sweeps and
// metric histories.
func PlotSeries(data []float64, opts PlotOptions) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(opts.Caption),
	)
}
