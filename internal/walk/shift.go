package walk

import (
	"fmt"
	"strings"
)

// Boundary selects what happens to amplitude that would step off the lattice edge.
type Boundary int

const (
	// Cyclic joins the two edges into a ring. Unitary.
	Cyclic Boundary = iota
	// Reflecting keeps the walker on the edge site and flips its coin. Unitary.
	Reflecting
	// Absorbing drops amplitude that leaves the lattice. Not unitary: total
	// probability decreases once the walker reaches an edge.
	Absorbing
)

var boundaryNames = map[Boundary]string{
	Cyclic:     "cyclic",
	Reflecting: "reflecting",
	Absorbing:  "absorbing",
}

func (b Boundary) String() string {
	if name, ok := boundaryNames[b]; ok {
		return name
	}
	return fmt.Sprintf("boundary(%d)", int(b))
}

// Unitary reports whether the shift built with this boundary preserves norm.
func (b Boundary) Unitary() bool { return b == Cyclic || b == Reflecting }

// ParseBoundary resolves a boundary by name.
func ParseBoundary(name string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cyclic", "ring", "periodic":
		return Cyclic, nil
	case "reflecting", "reflect":
		return Reflecting, nil
	case "absorbing", "absorb", "truncated":
		return Absorbing, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBoundary, name)
}

// Shift moves coin-|0⟩ amplitude one site right and coin-|1⟩ amplitude one
// site left, with edges handled by Boundary.
type Shift struct {
	Lattice  Lattice
	Boundary Boundary
}

// NewShift returns the shift for a lattice of p sites.
func NewShift(p int, b Boundary) (Shift, error) {
	l, err := LatticeForSize(p)
	if err != nil {
		return Shift{}, err
	}
	if _, ok := boundaryNames[b]; !ok {
		return Shift{}, fmt.Errorf("%w: %d", ErrUnknownBoundary, int(b))
	}
	return Shift{Lattice: l, Boundary: b}, nil
}

// BuildShift returns the dense 2P x 2P shift matrix
//
//	S = Shift_R ⊗ |0⟩⟨0| + Shift_L ⊗ |1⟩⟨1|
//
// plus the edge terms of a reflecting boundary.
func BuildShift(p int, b Boundary) (*Matrix, error) {
	sh, err := NewShift(p, b)
	if err != nil {
		return nil, err
	}
	return sh.Matrix(), nil
}

// Matrix materialises the shift as a dense matrix.
func (sh Shift) Matrix() *Matrix {
	p := sh.Lattice.Size()
	right := NewMatrix(p, p)
	left := NewMatrix(p, p)
	for i := 0; i < p; i++ {
		if j, ok := sh.target(i, 1); ok {
			right.Set(j, i, 1)
		}
		if j, ok := sh.target(i, -1); ok {
			left.Set(j, i, 1)
		}
	}

	s, _ := Kron(right, projector(0, 0)).Add(Kron(left, projector(1, 1)))

	if sh.Boundary == Reflecting {
		top := NewMatrix(p, p)
		top.Set(p-1, p-1, 1)
		bottom := NewMatrix(p, p)
		bottom.Set(0, 0, 1)
		s, _ = s.Add(Kron(top, projector(1, 0)))
		s, _ = s.Add(Kron(bottom, projector(0, 1)))
	}
	return s
}

// projector returns the 2x2 outer product |i⟩⟨j|.
func projector(i, j int) *Matrix {
	m := NewMatrix(2, 2)
	m.Set(i, j, 1)
	return m
}

// target returns the site reached from site i moving by dir, and false when
// the move leaves a non-cyclic lattice.
func (sh Shift) target(i, dir int) (int, bool) {
	p := sh.Lattice.Size()
	j := i + dir
	if j >= 0 && j < p {
		return j, true
	}
	if sh.Boundary == Cyclic {
		return (j + p) % p, true
	}
	return 0, false
}

// Apply shifts a state by index permutation in O(P) without building a matrix.
func (sh Shift) Apply(s State) (State, error) {
	dim := sh.Lattice.Dim()
	if len(s) != dim {
		return nil, dimErr("shift apply", dim, 1, len(s), 1)
	}

	p := sh.Lattice.Size()
	out := make(State, dim)
	for i := 0; i < p; i++ {
		a, b := s.Amplitudes(i)
		if j, ok := sh.target(i, 1); ok {
			out[2*j] += a
		} else if sh.Boundary == Reflecting {
			out[2*i+1] += a
		}
		if j, ok := sh.target(i, -1); ok {
			out[2*j+1] += b
		} else if sh.Boundary == Reflecting {
			out[2*i] += b
		}
	}
	return out, nil
}
