package walk

import (
	"errors"
	"math"
	"testing"
)

func TestMeasureLocalized(t *testing.T) {
	l, _ := NewLattice(4)
	for _, phi := range []float64{0, 0.3, math.Pi / 4, 2.0} {
		d, err := Measure(LocalizedState(l, phi))
		if err != nil {
			t.Fatalf("measure: %v", err)
		}
		if math.Abs(d.At(0)-1) > 1e-15 {
			t.Errorf("phi=%v: expected probability 1 at origin, got %v", phi, d.At(0))
		}
		if d.At(1) != 0 || d.At(-4) != 0 {
			t.Errorf("phi=%v: expected no probability away from origin", phi)
		}
	}
}

func TestMeasureProjectiveAgrees(t *testing.T) {
	out, err := Simulate(DefaultParams(6, 6, math.Pi/5, 0.8))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	proj, err := MeasureProjective(out.Final)
	if err != nil {
		t.Fatalf("projective: %v", err)
	}
	for i := range proj.Probs {
		if math.Abs(proj.Probs[i]-out.Distribution.Probs[i]) > 1e-12 {
			t.Errorf("site %d: projective %v, direct %v", i, proj.Probs[i], out.Distribution.Probs[i])
		}
	}
}

func TestMeasureRepeatable(t *testing.T) {
	out, err := Simulate(DefaultParams(5, 4, math.Pi/4, math.Pi/4))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	before := out.Final.Clone()

	a, _ := Measure(out.Final)
	b, _ := Measure(out.Final)
	for i := range a.Probs {
		if a.Probs[i] != b.Probs[i] {
			t.Errorf("site %d: repeated measurement changed %v -> %v", i, a.Probs[i], b.Probs[i])
		}
	}
	for i := range before {
		if before[i] != out.Final[i] {
			t.Fatalf("measurement mutated the state at index %d", i)
		}
	}
}

func TestMeasureInvalidLength(t *testing.T) {
	for _, n := range []int{3, 4, 0} {
		_, err := Measure(make(State, n))
		if err == nil {
			t.Errorf("length %d: expected error", n)
		}
	}
	if _, err := Measure(make(State, 3)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("odd length: expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := Measure(make(State, 4)); !errors.Is(err, ErrInvalidLattice) {
		t.Errorf("even site count: expected ErrInvalidLattice, got %v", err)
	}
}

func TestCheckNormalization(t *testing.T) {
	ok := Distribution{Lattice: Lattice{N: 1}, Probs: []float64{0.25, 0.5, 0.25}}
	if err := ok.CheckNormalization(DefaultTolerance); err != nil {
		t.Errorf("expected normalized distribution, got %v", err)
	}

	leaky := Distribution{Lattice: Lattice{N: 1}, Probs: []float64{0.25, 0.5, 0.2}}
	err := leaky.CheckNormalization(DefaultTolerance)
	if !errors.Is(err, ErrNumericalDrift) {
		t.Fatalf("expected ErrNumericalDrift, got %v", err)
	}
	var de *DriftError
	if !errors.As(err, &de) || math.Abs(de.Total-0.95) > 1e-12 {
		t.Errorf("expected drift total 0.95, got %v", err)
	}
	if leaky.Probs[2] != 0.2 {
		t.Error("normalization check must not rescale")
	}
}

func TestCheckNormalizationNaN(t *testing.T) {
	ok := Distribution{Lattice: Lattice{N: 1}, Probs: []float64{0.25, 0.5, 0.25}}
	leaky := Distribution{Lattice: Lattice{N: 1}, Probs: []float64{0.25, 0.5, 0.2}}
	broken := Distribution{Lattice: Lattice{N: 1}, Probs: []float64{0.25, math.NaN(), 0.25}}

	if err := leaky.CheckNormalization(math.NaN()); !errors.Is(err, ErrNumericalDrift) {
		t.Errorf("NaN tolerance: expected ErrNumericalDrift, got %v", err)
	}
	if err := ok.CheckNormalization(math.NaN()); !errors.Is(err, ErrNumericalDrift) {
		t.Errorf("NaN tolerance on a normalized distribution: expected ErrNumericalDrift, got %v", err)
	}
	if err := broken.CheckNormalization(DefaultTolerance); !errors.Is(err, ErrNumericalDrift) {
		t.Errorf("NaN total: expected ErrNumericalDrift, got %v", err)
	}
}

func TestDistributionPairs(t *testing.T) {
	d := Distribution{Lattice: Lattice{N: 2}, Probs: []float64{0.1, 0.2, 0.4, 0.2, 0.1}}
	pairs := d.Pairs()

	if len(pairs) != 5 {
		t.Fatalf("expected 5 pairs, got %d", len(pairs))
	}
	for i, pp := range pairs {
		if pp.Position != i-2 {
			t.Errorf("pair %d: expected position %d, got %d", i, i-2, pp.Position)
		}
		if pp.Probability != d.Probs[i] {
			t.Errorf("pair %d: expected probability %v, got %v", i, d.Probs[i], pp.Probability)
		}
	}

	xs := d.PositionsFloat()
	if xs[0] != -2 || xs[4] != 2 || xs[2] != 0 {
		t.Errorf("unexpected float positions %v", xs)
	}
	if d.At(7) != 0 {
		t.Error("expected zero probability off the lattice")
	}
}
