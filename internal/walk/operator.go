package walk

import "fmt"

// Stepper advances a state by one application of the walk operator.
type Stepper interface {
	Step(s State) (State, error)
	Lattice() Lattice
}

// Operator is the dense single-step walk operator U = (I_P ⊗ C) · S.
// It is immutable once built and is reused for every step of a run.
type Operator struct {
	u       *Matrix
	lattice Lattice
}

// BuildWalkOperator composes a 2x2 coin with a 2P x 2P shift.
func BuildWalkOperator(coin, shift *Matrix) (*Operator, error) {
	cr, cc := coin.Dims()
	if cr != 2 || cc != 2 {
		return nil, dimErr("coin", 2, 2, cr, cc)
	}
	sr, sc := shift.Dims()
	if sr != sc || sr%2 != 0 {
		return nil, &DimensionError{What: "shift", Expected: "2Px2P", Actual: fmt.Sprintf("%dx%d", sr, sc)}
	}
	l, err := LatticeForSize(sr / 2)
	if err != nil {
		return nil, err
	}

	u, err := Kron(Identity(l.Size()), coin).Mul(shift)
	if err != nil {
		return nil, err
	}
	return &Operator{u: u, lattice: l}, nil
}

// NewOperator builds the dense walk operator from a coin and a shift rule.
func NewOperator(coin Coin, shift Shift) (*Operator, error) {
	return BuildWalkOperator(coin.Matrix(), shift.Matrix())
}

func (o *Operator) Lattice() Lattice { return o.lattice }

// Matrix returns a copy of U.
func (o *Operator) Matrix() *Matrix { return o.u.Clone() }

func (o *Operator) Step(s State) (State, error) {
	return o.u.Apply(s)
}

// Power returns U^k.
func (o *Operator) Power(k int) (*Matrix, error) {
	return o.u.Pow(k)
}

// UnitarityError is max |(U†U - I)_ij|.
func (o *Operator) UnitarityError() float64 {
	return o.u.UnitarityError()
}

// FactoredOperator applies the same step as [Operator] without materialising
// a 2P x 2P matrix: the shift is an index permutation and the coin acts on each
// site's 2-vector. One step costs O(P).
type FactoredOperator struct {
	coin  Coin
	shift Shift
}

func NewFactoredOperator(coin Coin, shift Shift) *FactoredOperator {
	return &FactoredOperator{coin: coin, shift: shift}
}

func (f *FactoredOperator) Lattice() Lattice { return f.shift.Lattice }

func (f *FactoredOperator) Step(s State) (State, error) {
	out, err := f.shift.Apply(s)
	if err != nil {
		return nil, err
	}
	for i := 0; i < out.Sites(); i++ {
		out[2*i], out[2*i+1] = f.coin.Flip(out[2*i], out[2*i+1])
	}
	return out, nil
}

// Dense builds the equivalent dense operator.
func (f *FactoredOperator) Dense() (*Operator, error) {
	return NewOperator(f.coin, f.shift)
}
