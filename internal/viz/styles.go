package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/dtqw/internal/analysis"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(20)

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// Sparkline renders values as a single line of block characters, sampled
// down to at most width cells.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := min(max(int(norm*float64(len(chars)-1)), 0), len(chars)-1)

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			b.WriteString(SparkMid.Render(c))
		default:
			b.WriteString(SparkLow.Render(c))
		}
	}
	return b.String()
}

// RenderSummary formats a run summary as a labelled table.
func RenderSummary(title string, s analysis.Summary) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(title) + "\n")

	row := func(label, value string) {
		b.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("total probability", fmt.Sprintf("%.12f", s.Total))
	row("mean position", fmt.Sprintf("%.4f", s.Mean))
	row("std dev", fmt.Sprintf("%.4f", s.StdDev))
	row("classical std dev", fmt.Sprintf("%.4f", s.ClassicalStdDev))
	row("spread ratio", fmt.Sprintf("%.3f", s.SpreadRatio))
	row("entropy (nats)", fmt.Sprintf("%.4f", s.Entropy))
	row("asymmetry", fmt.Sprintf("%.3e", s.Asymmetry))

	if len(s.Peaks) > 0 {
		peaks := make([]string, len(s.Peaks))
		for i, p := range s.Peaks {
			peaks[i] = fmt.Sprintf("%d (%.4f)", p.Position, p.Probability)
		}
		row("peaks", strings.Join(peaks, ", "))
	}
	return b.String()
}
