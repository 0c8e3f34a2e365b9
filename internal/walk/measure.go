package walk

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance bounds |total - 1| for a distribution produced by unitary evolution.
const DefaultTolerance = 1e-9

// Distribution is the probability of finding the walker at each position.
// Probs is indexed by site, so Probs[0] is position -N.
type Distribution struct {
	Lattice Lattice
	Probs   []float64
}

// PositionProbability is one (position, probability) pair.
type PositionProbability struct {
	Position    int     `json:"position"`
	Probability float64 `json:"probability"`
}

// Measure reads the classical position distribution out of a state:
// P(p) = |a_p|² + |b_p|². It is a pure read with no collapse; calling it
// again on the same state gives the same distribution.
func Measure(s State) (Distribution, error) {
	l, err := stateLattice(s)
	if err != nil {
		return Distribution{}, err
	}

	probs := make([]float64, l.Size())
	for i := range probs {
		a, b := s.Amplitudes(i)
		probs[i] = sqAbs(a) + sqAbs(b)
	}
	return Distribution{Lattice: l, Probs: probs}, nil
}

// MeasureProjective computes the same distribution with explicit projectors
// M_k = |k⟩⟨k| ⊗ I₂ and P(k) = ⟨ψ|M_k|ψ⟩. It costs O(P³) and exists to
// cross-check [Measure].
func MeasureProjective(s State) (Distribution, error) {
	l, err := stateLattice(s)
	if err != nil {
		return Distribution{}, err
	}

	p := l.Size()
	probs := make([]float64, p)
	for k := 0; k < p; k++ {
		site := NewMatrix(p, p)
		site.Set(k, k, 1)
		proj, err := Kron(site, Identity(2)).Apply(s)
		if err != nil {
			return Distribution{}, err
		}
		var v complex128
		for _, amp := range proj {
			v += amp * cmplx.Conj(amp)
		}
		probs[k] = real(v)
	}
	return Distribution{Lattice: l, Probs: probs}, nil
}

func stateLattice(s State) (Lattice, error) {
	if len(s)%2 != 0 {
		return Lattice{}, &DimensionError{What: "state", Expected: "even length 2P", Actual: fmt.Sprintf("length %d", len(s))}
	}
	return LatticeForSize(len(s) / 2)
}

func sqAbs(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// At returns the probability at position p, or 0 off the lattice.
func (d Distribution) At(p int) float64 {
	if !d.Lattice.Contains(p) {
		return 0
	}
	return d.Probs[d.Lattice.Site(p)]
}

// Positions returns -N..N in order.
func (d Distribution) Positions() []int {
	out := make([]int, len(d.Probs))
	for i := range out {
		out[i] = d.Lattice.Position(i)
	}
	return out
}

// PositionsFloat returns the positions as float64, for plotting and statistics.
func (d Distribution) PositionsFloat() []float64 {
	out := make([]float64, len(d.Probs))
	if len(out) == 1 {
		return out
	}
	return floats.Span(out, float64(-d.Lattice.N), float64(d.Lattice.N))
}

// Pairs returns the distribution as ordered (position, probability) pairs.
func (d Distribution) Pairs() []PositionProbability {
	out := make([]PositionProbability, len(d.Probs))
	for i, pr := range d.Probs {
		out[i] = PositionProbability{Position: d.Lattice.Position(i), Probability: pr}
	}
	return out
}

// Total is the summed probability.
func (d Distribution) Total() float64 {
	return floats.Sum(d.Probs)
}

// CheckNormalization returns a *DriftError unless |Total - 1| is within tol.
// A NaN total or tolerance always reports drift. It never rescales the
// distribution.
func (d Distribution) CheckNormalization(tol float64) error {
	total := d.Total()
	if !(math.Abs(total-1) <= tol) {
		return &DriftError{Total: total, Tolerance: tol}
	}
	return nil
}
