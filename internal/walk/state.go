package walk

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
)

// Lattice is the symmetric position range [-N, N].
type Lattice struct {
	N int
}

// NewLattice validates a half-width and returns the lattice.
func NewLattice(halfWidth int) (Lattice, error) {
	if halfWidth < 0 {
		return Lattice{}, fmt.Errorf("%w: half-width %d is negative", ErrInvalidLattice, halfWidth)
	}
	return Lattice{N: halfWidth}, nil
}

// LatticeForSize returns the lattice with P sites. P must be a positive odd integer.
func LatticeForSize(p int) (Lattice, error) {
	if err := validateSize(p); err != nil {
		return Lattice{}, err
	}
	return Lattice{N: (p - 1) / 2}, nil
}

func validateSize(p int) error {
	if p <= 0 || p%2 == 0 {
		return fmt.Errorf("%w: size %d is not a positive odd integer", ErrInvalidLattice, p)
	}
	return nil
}

// Size is the number of positions P = 2N+1.
func (l Lattice) Size() int { return 2*l.N + 1 }

// Dim is the dimension 2P of the joint position ⊗ coin space.
func (l Lattice) Dim() int { return 2 * l.Size() }

// Site maps a position in [-N, N] to its 0-based site index.
func (l Lattice) Site(p int) int { return p + l.N }

// Position maps a 0-based site index back to its position.
func (l Lattice) Position(site int) int { return site - l.N }

// Contains reports whether p lies on the lattice.
func (l Lattice) Contains(p int) bool { return p >= -l.N && p <= l.N }

// State is a joint amplitude vector in position-major order.
type State []complex128

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// Sites returns the number of lattice sites the state spans.
func (s State) Sites() int { return len(s) / 2 }

// Amplitudes returns the coin amplitudes (a, b) at a site index.
func (s State) Amplitudes(site int) (complex128, complex128) {
	return s[2*site], s[2*site+1]
}

// Norm is the Euclidean norm of the amplitude vector.
func (s State) Norm() float64 {
	return cmplxs.Norm(s, 2)
}

func (s State) IsValid() bool {
	for _, v := range s {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}
	return true
}

// LocalizedState places the walker at position 0 with coin cos φ|0⟩ + sin φ|1⟩.
func LocalizedState(l Lattice, phi float64) State {
	return LocalizedStateWithPhase(l, phi, 0)
}

// LocalizedStateWithPhase places the walker at position 0 with coin
// cos φ|0⟩ + e^{i·phase} sin φ|1⟩. A phase of π/2 gives the
// cos φ|0⟩ + i sin φ|1⟩ initial condition.
func LocalizedStateWithPhase(l Lattice, phi, phase float64) State {
	s := make(State, l.Dim())
	site := l.Site(0)
	s[2*site] = complex(math.Cos(phi), 0)
	s[2*site+1] = cmplx.Rect(math.Sin(phi), phase)
	return s
}
