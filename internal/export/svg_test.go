package export

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/dtqw/internal/viz"
	"github.com/san-kum/dtqw/internal/walk"
)

func TestDistributionToSVG(t *testing.T) {
	d, err := walk.RunWalk(5, 5, math.Pi/4, math.Pi/4)
	if err != nil {
		t.Fatal(err)
	}

	svg := DistributionToSVG(d, 440, 200, "#00ff00")
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	// 6 of the 11 sites are reachable after 5 steps
	if got := strings.Count(svg, "<rect x="); got != 6 {
		t.Errorf("expected 6 bars, got %d", got)
	}
	if !strings.Contains(svg, "<title>-3: 0.34375</title>") {
		t.Error("expected the peak at -3 to be labelled")
	}
}

func TestDistributionToSVGEmpty(t *testing.T) {
	if DistributionToSVG(walk.Distribution{}, 10, 10, "#fff") != "" {
		t.Error("expected empty output")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]Point{{0, 0}}, 100, 100, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}

	svg := SeriesToSVG([]Point{{1, 1}, {2, 4}, {3, 9}}, 100, 100, "#ff00ff")
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments, got:\n%s", svg)
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	svg := CanvasToSVG(c, 2, "#00ff00")
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if CanvasToSVG(nil, 1, "#fff") != "" {
		t.Error("expected empty output for nil canvas")
	}
}

func TestDistributionDotsSVG(t *testing.T) {
	d, err := walk.RunWalk(0, 3, math.Pi/4, 0)
	if err != nil {
		t.Fatal(err)
	}

	// a stationary walker fills every sub-pixel of a 2x1 canvas
	svg := DistributionDotsSVG(d, 2, 1, 2, "#00ff88")
	if got := strings.Count(svg, "<circle"); got != 8 {
		t.Errorf("expected 8 dots, got %d", got)
	}
	if DistributionDotsSVG(d, 0, 1, 2, "#fff") != "" {
		t.Error("expected empty output for an empty canvas")
	}
}
