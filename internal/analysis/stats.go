package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/dtqw/internal/walk"
)

// Mean is the expected position. Probabilities are used as weights, so a
// leaky distribution gives the mean conditioned on the walker surviving.
func Mean(d walk.Distribution) float64 {
	if floats.Sum(d.Probs) == 0 {
		return 0
	}
	return stat.Mean(d.PositionsFloat(), d.Probs)
}

// StdDev is the standard deviation of the position.
func StdDev(d walk.Distribution) float64 {
	if floats.Sum(d.Probs) == 0 {
		return 0
	}
	xs := d.PositionsFloat()
	sq := make([]float64, len(xs))
	floats.MulTo(sq, xs, xs)

	m := stat.Mean(xs, d.Probs)
	v := stat.Mean(sq, d.Probs) - m*m
	return math.Sqrt(math.Max(v, 0))
}

// Entropy is the Shannon entropy of the distribution in nats.
func Entropy(d walk.Distribution) float64 {
	return stat.Entropy(d.Probs)
}

// Asymmetry is max |P(p) - P(-p)| over the lattice.
func Asymmetry(d walk.Distribution) float64 {
	worst := 0.0
	for p := 1; p <= d.Lattice.N; p++ {
		worst = math.Max(worst, math.Abs(d.At(p)-d.At(-p)))
	}
	return worst
}

// TotalVariation is half the L1 distance between two distributions.
func TotalVariation(a, b walk.Distribution) (float64, error) {
	if len(a.Probs) != len(b.Probs) {
		return 0, fmt.Errorf("%w: %d vs %d positions", walk.ErrDimensionMismatch, len(a.Probs), len(b.Probs))
	}
	return 0.5 * floats.Distance(a.Probs, b.Probs, 1), nil
}

// Peaks returns up to k local maxima, largest first.
func Peaks(d walk.Distribution, k int) []walk.PositionProbability {
	var peaks []walk.PositionProbability
	n := len(d.Probs)
	for i, p := range d.Probs {
		if p == 0 {
			continue
		}
		if i > 0 && d.Probs[i-1] > p {
			continue
		}
		if i < n-1 && d.Probs[i+1] > p {
			continue
		}
		peaks = append(peaks, walk.PositionProbability{Position: d.Lattice.Position(i), Probability: p})
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Probability > peaks[j].Probability
	})
	if k >= 0 && len(peaks) > k {
		peaks = peaks[:k]
	}
	return peaks
}

// Summary collects the statistics of one distribution.
type Summary struct {
	Total           float64                    `json:"total"`
	Mean            float64                    `json:"mean"`
	StdDev          float64                    `json:"std_dev"`
	Entropy         float64                    `json:"entropy"`
	Asymmetry       float64                    `json:"asymmetry"`
	ClassicalStdDev float64                    `json:"classical_std_dev"`
	SpreadRatio     float64                    `json:"spread_ratio"`
	Peaks           []walk.PositionProbability `json:"peaks"`
}

// Summarize computes a [Summary] for a distribution reached after steps steps.
func Summarize(d walk.Distribution, steps int) Summary {
	s := Summary{
		Total:     d.Total(),
		Mean:      Mean(d),
		StdDev:    StdDev(d),
		Entropy:   Entropy(d),
		Asymmetry: Asymmetry(d),
		Peaks:     Peaks(d, 2),
	}
	if classical, err := ClassicalWalk(d.Lattice, steps); err == nil {
		s.ClassicalStdDev = StdDev(classical)
	}
	if s.ClassicalStdDev > 0 {
		s.SpreadRatio = s.StdDev / s.ClassicalStdDev
	}
	return s
}
