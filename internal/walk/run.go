package walk

import (
	"fmt"
	"math"
)

// Params fully describes one walk run.
type Params struct {
	N        int
	Steps    int
	Theta    float64
	Xi       float64
	Zeta     float64
	Phi      float64
	Phase    float64
	Boundary Boundary
	Strategy Strategy
	// MatrixFree steps with [FactoredOperator] instead of a dense operator.
	// Only valid with the Iterative strategy.
	MatrixFree bool
}

// DefaultParams returns a cyclic, iterative run with the default coin phases.
func DefaultParams(n, steps int, theta, phi float64) Params {
	return Params{
		N:        n,
		Steps:    steps,
		Theta:    theta,
		Xi:       DefaultXi,
		Zeta:     DefaultZeta,
		Phi:      phi,
		Boundary: Cyclic,
		Strategy: Iterative,
	}
}

func (p Params) Validate() error {
	if p.N < 0 {
		return fmt.Errorf("%w: half-width %d is negative", ErrInvalidLattice, p.N)
	}
	if p.Steps < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSteps, p.Steps)
	}
	for name, v := range map[string]float64{"theta": p.Theta, "xi": p.Xi, "zeta": p.Zeta, "phi": p.Phi, "phase": p.Phase} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("walk: %s must be finite, got %v", name, v)
		}
	}
	if p.MatrixFree && p.Strategy == MatrixPower {
		return fmt.Errorf("%w: matrix power needs a dense operator", ErrUnsupportedStrategy)
	}
	return nil
}

// Outcome is everything produced by one run.
type Outcome struct {
	Params       Params
	Lattice      Lattice
	Initial      State
	Final        State
	Distribution Distribution
	StepsTaken   int
}

// Simulate builds the operators once, evolves the localized initial state and
// measures the result.
func Simulate(p Params, observers ...Observer) (*Outcome, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	op, err := p.Stepper()
	if err != nil {
		return nil, err
	}

	eng := NewEngine(op)
	for _, o := range observers {
		eng.AddObserver(o)
	}

	l := op.Lattice()
	x0 := LocalizedStateWithPhase(l, p.Phi, p.Phase)
	res, err := eng.Evolve(x0, p.Steps, p.Strategy)
	if err != nil {
		return nil, err
	}

	dist, err := Measure(res.State)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Params:       p,
		Lattice:      l,
		Initial:      x0,
		Final:        res.State,
		Distribution: dist,
		StepsTaken:   res.StepsTaken,
	}, nil
}

// Stepper builds the step operator the params describe.
func (p Params) Stepper() (Stepper, error) {
	l, err := NewLattice(p.N)
	if err != nil {
		return nil, err
	}
	shift, err := NewShift(l.Size(), p.Boundary)
	if err != nil {
		return nil, err
	}
	coin := NewCoin(p.Theta, p.Xi, p.Zeta)
	if p.MatrixFree {
		return NewFactoredOperator(coin, shift), nil
	}
	return NewOperator(coin, shift)
}

// RunWalk runs a cyclic walk of the given number of steps on [-n, n] with
// coin angle theta and initial coin cos φ|0⟩ + sin φ|1⟩ at the origin, and
// returns the position distribution of length 2n+1.
func RunWalk(n, steps int, theta, phi float64) (Distribution, error) {
	out, err := Simulate(DefaultParams(n, steps, theta, phi))
	if err != nil {
		return Distribution{}, err
	}
	return out.Distribution, nil
}
