package walk

import (
	"fmt"
	"strings"
)

// Strategy selects how N steps are realised.
type Strategy int

const (
	// Iterative applies the step operator N times.
	Iterative Strategy = iota
	// MatrixPower raises U to the N-th power once and applies it once.
	MatrixPower
)

func (s Strategy) String() string {
	switch s {
	case Iterative:
		return "iterative"
	case MatrixPower:
		return "power"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy resolves a strategy by name.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "iterative", "iter", "step":
		return Iterative, nil
	case "power", "matrix-power", "matpow":
		return MatrixPower, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedStrategy, name)
}

// Observer is notified with the state after each completed step. Step 0 is
// the initial state.
type Observer interface {
	OnStep(step int, s State)
}

// Result is the outcome of an evolution.
type Result struct {
	State      State
	StepsTaken int
	Strategy   Strategy
}

// Engine evolves states under a fixed step operator.
type Engine struct {
	op        Stepper
	observers []Observer
}

func NewEngine(op Stepper) *Engine {
	return &Engine{op: op, observers: make([]Observer, 0)}
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) Lattice() Lattice { return e.op.Lattice() }

// Evolve advances initial by steps applications of the walk operator. The
// initial state is never modified. With zero steps the result is a copy that
// compares equal to initial element for element. No renormalization is done.
func (e *Engine) Evolve(initial State, steps int, strategy Strategy) (*Result, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	}
	if dim := e.op.Lattice().Dim(); len(initial) != dim {
		return nil, dimErr("initial state", dim, 1, len(initial), 1)
	}

	e.notify(0, initial)

	res := &Result{Strategy: strategy}
	switch strategy {
	case Iterative:
		x := initial.Clone()
		for i := 1; i <= steps; i++ {
			next, err := e.op.Step(x)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			x = next
			res.StepsTaken++
			e.notify(i, x)
		}
		res.State = x

	case MatrixPower:
		dense, ok := e.op.(*Operator)
		if !ok {
			return nil, fmt.Errorf("%w: %s needs a dense operator", ErrUnsupportedStrategy, strategy)
		}
		if steps == 0 {
			res.State = initial.Clone()
			return res, nil
		}
		un, err := dense.Power(steps)
		if err != nil {
			return nil, err
		}
		x, err := un.Apply(initial)
		if err != nil {
			return nil, err
		}
		res.State = x
		res.StepsTaken = steps
		e.notify(steps, x)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStrategy, strategy)
	}

	return res, nil
}

func (e *Engine) notify(step int, s State) {
	for _, o := range e.observers {
		o.OnStep(step, s)
	}
}

// Evolve is the observer-free form of [Engine.Evolve].
func Evolve(initial State, op Stepper, steps int, strategy Strategy) (State, error) {
	res, err := NewEngine(op).Evolve(initial, steps, strategy)
	if err != nil {
		return nil, err
	}
	return res.State, nil
}
