package walk

import (
	"math"
	"math/cmplx"
)

const (
	// DefaultXi and DefaultZeta reduce the coin to the balanced 45° coin at θ = π/4.
	DefaultXi   = 0.0
	DefaultZeta = math.Pi / 2
)

// Coin is a 2x2 unitary acting on the coin basis {|0⟩, |1⟩}:
//
//	C = [[e^{iξ} cos θ,  e^{iζ} sin θ],
//	     [e^{-iζ} sin θ, -e^{-iξ} cos θ]]
//
// The conjugate phase in the lower right keeps C unitary for every real θ, ξ, ζ.
// At ξ = 0 both diagonal phases are 1.
type Coin struct {
	Theta, Xi, Zeta float64
	c               [2][2]complex128
}

// NewCoin builds the coin for the given angles in radians.
func NewCoin(theta, xi, zeta float64) Coin {
	cos, sin := math.Cos(theta), math.Sin(theta)
	exi := cmplx.Rect(1, xi)
	ezeta := cmplx.Rect(1, zeta)
	return Coin{
		Theta: theta,
		Xi:    xi,
		Zeta:  zeta,
		c: [2][2]complex128{
			{exi * complex(cos, 0), ezeta * complex(sin, 0)},
			{cmplx.Conj(ezeta) * complex(sin, 0), -cmplx.Conj(exi) * complex(cos, 0)},
		},
	}
}

// CoinFromTheta builds a coin with the default phases.
func CoinFromTheta(theta float64) Coin {
	return NewCoin(theta, DefaultXi, DefaultZeta)
}

// HadamardCoin is the balanced coin at θ = π/4 with default phases.
func HadamardCoin() Coin {
	return CoinFromTheta(math.Pi / 4)
}

func (c Coin) At(i, j int) complex128 { return c.c[i][j] }

// Matrix returns the coin as a dense 2x2 matrix.
func (c Coin) Matrix() *Matrix {
	return NewMatrixFrom(2, 2, []complex128{c.c[0][0], c.c[0][1], c.c[1][0], c.c[1][1]})
}

// Flip applies the coin to one pair of coin amplitudes.
func (c Coin) Flip(a, b complex128) (complex128, complex128) {
	return c.c[0][0]*a + c.c[0][1]*b, c.c[1][0]*a + c.c[1][1]*b
}
