package metrics

import (
	"math"

	"github.com/san-kum/dtqw/internal/walk"
)

// NormDrift records the largest |‖ψ‖² - 1| seen over a run. A unitary walk
// keeps it at roundoff level; anything larger points at the operator.
type NormDrift struct {
	name     string
	maxDrift float64
	samples  int
}

func NewNormDrift() *NormDrift {
	return &NormDrift{name: "norm_drift"}
}

func (n *NormDrift) Name() string { return n.name }

func (n *NormDrift) OnStep(step int, s walk.State) {
	norm := s.Norm()
	n.maxDrift = math.Max(n.maxDrift, math.Abs(norm*norm-1))
	n.samples++
}

func (n *NormDrift) Value() float64 { return n.maxDrift }

func (n *NormDrift) Reset() {
	n.maxDrift = 0
	n.samples = 0
}
