// Package export renders walk results as standalone SVG images.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/dtqw/internal/viz"
	"github.com/san-kum/dtqw/internal/walk"
)

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64, color string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(header(width, height))
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", color))

	dotRadius := scale * 0.4
	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// DistributionDotsSVG renders d on a cols x rows braille canvas and exports
// the dots, so the image matches the terminal plot.
func DistributionDotsSVG(d walk.Distribution, cols, rows int, scale float64, color string) string {
	if len(d.Probs) == 0 || cols <= 0 || rows <= 0 {
		return ""
	}
	c := viz.NewCanvas(cols, rows)
	c.DrawDistribution(d)
	return CanvasToSVG(c, scale, color)
}

// DistributionToSVG draws one bar per lattice site, scaled so the most
// likely position fills the height.
func DistributionToSVG(d walk.Distribution, width, height int, color string) string {
	if len(d.Probs) == 0 {
		return ""
	}

	peak := 0.0
	for _, p := range d.Probs {
		peak = max(peak, p)
	}
	if peak == 0 {
		peak = 1
	}

	var sb strings.Builder
	sb.WriteString(header(float64(width), float64(height)))
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", color))

	bw := float64(width) / float64(len(d.Probs))
	for i, p := range d.Probs {
		h := p / peak * float64(height)
		if h <= 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\"><title>%d: %.6g</title></rect>\n",
			float64(i)*bw, float64(height)-h, bw*0.9, h, d.Lattice.Position(i), p))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// Point is one (x, y) sample of a series.
type Point struct{ X, Y float64 }

// SeriesToSVG draws a polyline through points, for timing sweeps.
func SeriesToSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(header(float64(width), float64(height)))
	sb.WriteString(fmt.Sprintf("<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"M", strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}

func header(width, height float64) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}
