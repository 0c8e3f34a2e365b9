package walk

import (
	"errors"
	"math/cmplx"
	"testing"
)

func TestBuildShiftUnitary(t *testing.T) {
	for _, b := range []Boundary{Cyclic, Reflecting} {
		for _, p := range []int{1, 3, 11, 21} {
			s, err := BuildShift(p, b)
			if err != nil {
				t.Fatalf("%s P=%d: %v", b, p, err)
			}
			if rows, cols := s.Dims(); rows != 2*p || cols != 2*p {
				t.Errorf("%s P=%d: expected %dx%d, got %dx%d", b, p, 2*p, 2*p, rows, cols)
			}
			if dev := s.UnitarityError(); dev > 1e-12 {
				t.Errorf("%s P=%d: expected unitary shift, deviation %g", b, p, dev)
			}
		}
	}
}

func TestBuildShiftAbsorbingNotUnitary(t *testing.T) {
	s, err := BuildShift(5, Absorbing)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if dev := s.UnitarityError(); dev < 0.5 {
		t.Errorf("expected absorbing shift to lose norm, deviation %g", dev)
	}
}

func TestBuildShiftInvalidSize(t *testing.T) {
	for _, p := range []int{0, 2, 10, -3} {
		_, err := BuildShift(p, Cyclic)
		if !errors.Is(err, ErrInvalidLattice) {
			t.Errorf("P=%d: expected ErrInvalidLattice, got %v", p, err)
		}
	}
}

func TestBuildShiftUnknownBoundary(t *testing.T) {
	_, err := BuildShift(5, Boundary(42))
	if !errors.Is(err, ErrUnknownBoundary) {
		t.Errorf("expected ErrUnknownBoundary, got %v", err)
	}
}

func TestShiftSingleSiteIsIdentity(t *testing.T) {
	s, err := BuildShift(1, Cyclic)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	id := Identity(2)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if s.At(i, j) != id.At(i, j) {
				t.Errorf("S[%d][%d] = %v, want %v", i, j, s.At(i, j), id.At(i, j))
			}
		}
	}
}

func TestShiftDirection(t *testing.T) {
	sh, err := NewShift(5, Cyclic)
	if err != nil {
		t.Fatalf("new shift failed: %v", err)
	}

	tests := []struct {
		name      string
		fromIndex int
		toIndex   int
	}{
		{"coin 0 moves right", 2 * 2, 2 * 3},
		{"coin 1 moves left", 2*2 + 1, 2*1 + 1},
		{"coin 0 wraps at right edge", 2 * 4, 0},
		{"coin 1 wraps at left edge", 1, 2*4 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := make(State, 10)
			s[tt.fromIndex] = 1
			out, err := sh.Apply(s)
			if err != nil {
				t.Fatalf("apply failed: %v", err)
			}
			if out[tt.toIndex] != 1 {
				t.Errorf("expected amplitude at index %d, got state %v", tt.toIndex, out)
			}
		})
	}
}

func TestShiftReflectingEdges(t *testing.T) {
	sh, _ := NewShift(3, Reflecting)

	s := State{0, 0, 0, 0, 1, 0}
	out, _ := sh.Apply(s)
	if out[5] != 1 {
		t.Errorf("expected coin flip at right edge, got %v", out)
	}

	s = State{0, 1, 0, 0, 0, 0}
	out, _ = sh.Apply(s)
	if out[0] != 1 {
		t.Errorf("expected coin flip at left edge, got %v", out)
	}
}

func TestShiftApplyMatchesMatrix(t *testing.T) {
	s := make(State, 14)
	for i := range s {
		s[i] = complex(float64(i+1)*0.1, float64(7-i)*0.05)
	}

	for _, b := range []Boundary{Cyclic, Reflecting, Absorbing} {
		sh, err := NewShift(7, b)
		if err != nil {
			t.Fatalf("%s: %v", b, err)
		}
		fast, err := sh.Apply(s)
		if err != nil {
			t.Fatalf("%s: %v", b, err)
		}
		dense, err := sh.Matrix().Apply(s)
		if err != nil {
			t.Fatalf("%s: %v", b, err)
		}
		for i := range fast {
			if cmplx.Abs(fast[i]-dense[i]) > 1e-15 {
				t.Errorf("%s: index %d: permutation %v, matrix %v", b, i, fast[i], dense[i])
			}
		}
	}
}

func TestShiftApplyDimensionMismatch(t *testing.T) {
	sh, _ := NewShift(3, Cyclic)
	_, err := sh.Apply(make(State, 4))
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestParseBoundary(t *testing.T) {
	tests := []struct {
		in      string
		want    Boundary
		wantErr bool
	}{
		{"cyclic", Cyclic, false},
		{"", Cyclic, false},
		{"Reflecting", Reflecting, false},
		{"absorbing", Absorbing, false},
		{"truncated", Absorbing, false},
		{"sticky", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseBoundary(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownBoundary) {
				t.Errorf("ParseBoundary(%q): expected ErrUnknownBoundary, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseBoundary(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}
