package analysis

import (
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/dtqw/internal/walk"
)

// MomentumSpectrum transforms each coin component of a state to lattice
// momentum k = 2πj/P and returns |A_j|² + |B_j|² normalized so that the
// spectrum sums to the state's total probability.
func MomentumSpectrum(s walk.State) ([]float64, error) {
	d, err := walk.Measure(s)
	if err != nil {
		return nil, err
	}

	p := d.Lattice.Size()
	up := make([]complex128, p)
	down := make([]complex128, p)
	for i := 0; i < p; i++ {
		up[i], down[i] = s.Amplitudes(i)
	}

	fu := fft.FFT(up)
	fd := fft.FFT(down)

	spectrum := make([]float64, p)
	for j := range spectrum {
		spectrum[j] = (sqAbs(fu[j]) + sqAbs(fd[j])) / float64(p)
	}
	return spectrum, nil
}

// Momenta returns the momentum values 2πj/P matching [MomentumSpectrum].
func Momenta(p int) []float64 {
	out := make([]float64, p)
	for j := range out {
		out[j] = 2 * math.Pi * float64(j) / float64(p)
	}
	return out
}

func sqAbs(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}
