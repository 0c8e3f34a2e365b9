package walk

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
)

// Matrix is a dense row-major complex matrix.
type Matrix struct {
	rows, cols int
	data       []complex128
}

// NewMatrix returns a zero matrix with the given dimensions.
func NewMatrix(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("walk: negative matrix dimension %dx%d", rows, cols))
	}
	return &Matrix{rows: rows, cols: cols, data: make([]complex128, rows*cols)}
}

// NewMatrixFrom wraps row-major data. The slice is copied.
func NewMatrixFrom(rows, cols int, data []complex128) *Matrix {
	if len(data) != rows*cols {
		panic(fmt.Sprintf("walk: %d values for a %dx%d matrix", len(data), rows, cols))
	}
	m := NewMatrix(rows, cols)
	copy(m.data, data)
	return m
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

func (m *Matrix) Dims() (int, int)           { return m.rows, m.cols }
func (m *Matrix) At(i, j int) complex128     { return m.data[i*m.cols+j] }
func (m *Matrix) Set(i, j int, v complex128) { m.data[i*m.cols+j] = v }

func (m *Matrix) Clone() *Matrix {
	return NewMatrixFrom(m.rows, m.cols, m.data)
}

func (m *Matrix) general() cblas128.General {
	return cblas128.General{Rows: m.rows, Cols: m.cols, Stride: m.cols, Data: m.data}
}

// Kron returns the Kronecker product a ⊗ b.
func Kron(a, b *Matrix) *Matrix {
	out := NewMatrix(a.rows*b.rows, a.cols*b.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			av := a.At(i, j)
			if av == 0 {
				continue
			}
			for k := 0; k < b.rows; k++ {
				row := (i*b.rows + k) * out.cols
				for l := 0; l < b.cols; l++ {
					out.data[row+j*b.cols+l] = av * b.At(k, l)
				}
			}
		}
	}
	return out
}

// Add returns m + b.
func (m *Matrix) Add(b *Matrix) (*Matrix, error) {
	if m.rows != b.rows || m.cols != b.cols {
		return nil, dimErr("matrix sum", m.rows, m.cols, b.rows, b.cols)
	}
	out := m.Clone()
	for i, v := range b.data {
		out.data[i] += v
	}
	return out, nil
}

// Mul returns the product m · b.
func (m *Matrix) Mul(b *Matrix) (*Matrix, error) {
	if m.cols != b.rows {
		return nil, dimErr("matrix product", m.cols, b.cols, b.rows, b.cols)
	}
	out := NewMatrix(m.rows, b.cols)
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, m.general(), b.general(), 0, out.general())
	return out, nil
}

// Apply returns m · s as a new state.
func (m *Matrix) Apply(s State) (State, error) {
	if m.cols != len(s) {
		return nil, dimErr("operator apply", m.rows, m.cols, len(s), 1)
	}
	out := make(State, m.rows)
	cblas128.Gemv(blas.NoTrans, 1, m.general(),
		cblas128.Vector{N: len(s), Inc: 1, Data: s},
		0, cblas128.Vector{N: len(out), Inc: 1, Data: out})
	return out, nil
}

// ConjTranspose returns the Hermitian adjoint m†.
func (m *Matrix) ConjTranspose() *Matrix {
	out := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*m.rows+i] = cmplx.Conj(m.data[i*m.cols+j])
		}
	}
	return out
}

// Pow raises a square matrix to a non-negative integer power by repeated squaring.
func (m *Matrix) Pow(k int) (*Matrix, error) {
	if m.rows != m.cols {
		return nil, dimErr("matrix power", m.rows, m.rows, m.rows, m.cols)
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: power %d", ErrInvalidSteps, k)
	}

	result := Identity(m.rows)
	base := m.Clone()
	for k > 0 {
		if k&1 == 1 {
			result, _ = result.Mul(base)
		}
		k >>= 1
		if k > 0 {
			base, _ = base.Mul(base)
		}
	}
	return result, nil
}

// UnitarityError returns max |(m†m - I)_ij|. A unitary matrix gives a value
// at the level of floating-point roundoff.
func (m *Matrix) UnitarityError() float64 {
	g := NewMatrix(m.cols, m.cols)
	cblas128.Gemm(blas.ConjTrans, blas.NoTrans, 1, m.general(), m.general(), 0, g.general())

	worst := 0.0
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			v := g.At(i, j)
			if i == j {
				v -= 1
			}
			if d := cmplx.Abs(v); d > worst {
				worst = d
			}
		}
	}
	return worst
}
