package walk

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func TestWalkOperatorUnitary(t *testing.T) {
	for _, n := range []int{0, 1, 5, 20} {
		for _, b := range []Boundary{Cyclic, Reflecting} {
			p := DefaultParams(n, 0, math.Pi/4, math.Pi/4)
			p.Boundary = b
			op, err := p.Stepper()
			if err != nil {
				t.Fatalf("N=%d %s: %v", n, b, err)
			}
			if dev := op.(*Operator).UnitarityError(); dev > 1e-9 {
				t.Errorf("N=%d %s: expected unitary walk operator, deviation %g", n, b, dev)
			}
		}
	}
}

func TestBuildWalkOperatorDimensionMismatch(t *testing.T) {
	shift, _ := BuildShift(5, Cyclic)

	tests := []struct {
		name    string
		coin    *Matrix
		shift   *Matrix
		wantErr error
	}{
		{"coin 3x3", Identity(3), shift, ErrDimensionMismatch},
		{"coin 2x3", NewMatrix(2, 3), shift, ErrDimensionMismatch},
		{"shift not square", HadamardCoin().Matrix(), NewMatrix(6, 4), ErrDimensionMismatch},
		{"shift odd dimension", HadamardCoin().Matrix(), Identity(5), ErrDimensionMismatch},
		{"shift even lattice", HadamardCoin().Matrix(), Identity(4), ErrInvalidLattice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildWalkOperator(tt.coin, tt.shift)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDimensionErrorReportsSizes(t *testing.T) {
	shift, _ := BuildShift(3, Cyclic)
	_, err := BuildWalkOperator(Identity(3), shift)

	var de *DimensionError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DimensionError, got %T", err)
	}
	if de.Expected != "2x2" || de.Actual != "3x3" {
		t.Errorf("expected 2x2 vs 3x3, got %s vs %s", de.Expected, de.Actual)
	}
}

func TestFactoredMatchesDense(t *testing.T) {
	coin := NewCoin(0.6, 0.1, 1.2)
	for _, b := range []Boundary{Cyclic, Reflecting, Absorbing} {
		shift, _ := NewShift(9, b)
		fast := NewFactoredOperator(coin, shift)
		dense, err := fast.Dense()
		if err != nil {
			t.Fatalf("%s: %v", b, err)
		}

		x0 := LocalizedState(shift.Lattice, 0.3)
		a, err := Evolve(x0, fast, 12, Iterative)
		if err != nil {
			t.Fatalf("%s: %v", b, err)
		}
		d, err := Evolve(x0, dense, 12, Iterative)
		if err != nil {
			t.Fatalf("%s: %v", b, err)
		}
		for i := range a {
			if cmplx.Abs(a[i]-d[i]) > 1e-12 {
				t.Errorf("%s: index %d: factored %v, dense %v", b, i, a[i], d[i])
			}
		}
	}
}

func TestMatrixPow(t *testing.T) {
	u := NewMatrixFrom(2, 2, []complex128{1, 1i, 0.5, -1})

	p0, err := u.Pow(0)
	if err != nil {
		t.Fatalf("pow 0: %v", err)
	}
	if p0.At(0, 0) != 1 || p0.At(0, 1) != 0 || p0.At(1, 0) != 0 || p0.At(1, 1) != 1 {
		t.Errorf("U^0 should be identity, got %v", p0.data)
	}

	u2, _ := u.Mul(u)
	u3, _ := u2.Mul(u)
	p3, err := u.Pow(3)
	if err != nil {
		t.Fatalf("pow 3: %v", err)
	}
	for i := range u3.data {
		if cmplx.Abs(u3.data[i]-p3.data[i]) > 1e-12 {
			t.Errorf("U^3[%d] = %v, want %v", i, p3.data[i], u3.data[i])
		}
	}

	if _, err := u.Pow(-1); !errors.Is(err, ErrInvalidSteps) {
		t.Errorf("expected ErrInvalidSteps for negative power, got %v", err)
	}
}

func TestKron(t *testing.T) {
	a := NewMatrixFrom(2, 2, []complex128{1, 2, 3, 4})
	b := NewMatrixFrom(2, 2, []complex128{0, 1, 1, 0})
	k := Kron(a, b)

	expected := []complex128{
		0, 1, 0, 2,
		1, 0, 2, 0,
		0, 3, 0, 4,
		3, 0, 4, 0,
	}
	for i, v := range expected {
		if k.data[i] != v {
			t.Errorf("kron[%d] = %v, want %v", i, k.data[i], v)
		}
	}
}

func TestConjTranspose(t *testing.T) {
	m := NewMatrixFrom(2, 3, []complex128{1 + 1i, 2, 3i, 4, 5 - 2i, 6})
	h := m.ConjTranspose()

	if r, c := h.Dims(); r != 3 || c != 2 {
		t.Fatalf("expected 3x2, got %dx%d", r, c)
	}
	if h.At(0, 0) != 1-1i || h.At(2, 0) != -3i || h.At(1, 1) != 5+2i {
		t.Errorf("unexpected adjoint %v", h.data)
	}
}
