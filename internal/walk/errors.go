package walk

import (
	"errors"
	"fmt"
)

// Domain errors for walk construction and evolution.
var (
	// ErrInvalidLattice indicates a negative half-width or a lattice size that is not a positive odd integer.
	ErrInvalidLattice = errors.New("walk: invalid lattice size")

	// ErrInvalidSteps indicates a negative step count.
	ErrInvalidSteps = errors.New("walk: step count must be non-negative")

	// ErrDimensionMismatch indicates coin, shift and state sizes that do not agree.
	ErrDimensionMismatch = errors.New("walk: dimension mismatch")

	// ErrNumericalDrift indicates a distribution whose total is not 1 within tolerance.
	ErrNumericalDrift = errors.New("walk: probability not conserved")

	// ErrUnsupportedStrategy indicates an evolution strategy the operator cannot serve.
	ErrUnsupportedStrategy = errors.New("walk: unsupported evolution strategy")

	// ErrUnknownBoundary indicates an unrecognised boundary policy name.
	ErrUnknownBoundary = errors.New("walk: unknown boundary policy")
)

// DimensionError reports the expected and actual sizes of a mismatched operand.
type DimensionError struct {
	What     string
	Expected string
	Actual   string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("walk: dimension mismatch in %s: expected %s, got %s", e.What, e.Expected, e.Actual)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

func dimErr(what string, er, ec, ar, ac int) error {
	return &DimensionError{
		What:     what,
		Expected: fmt.Sprintf("%dx%d", er, ec),
		Actual:   fmt.Sprintf("%dx%d", ar, ac),
	}
}

// DriftError carries the measured total probability of a distribution that
// failed a normalization check.
type DriftError struct {
	Total     float64
	Tolerance float64
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("walk: total probability %.12f deviates from 1 by more than %g", e.Total, e.Tolerance)
}

func (e *DriftError) Unwrap() error {
	return ErrNumericalDrift
}
