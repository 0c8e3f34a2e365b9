package analysis

import (
	"fmt"

	"github.com/san-kum/dtqw/internal/walk"
)

// ClassicalWalk returns the distribution of an unbiased random walk started at
// the origin after steps steps on the same ring lattice. Its standard
// deviation grows as sqrt(steps) until it reaches the edges.
func ClassicalWalk(l walk.Lattice, steps int) (walk.Distribution, error) {
	if steps < 0 {
		return walk.Distribution{}, fmt.Errorf("%w: got %d", walk.ErrInvalidSteps, steps)
	}

	p := l.Size()
	probs := make([]float64, p)
	probs[l.Site(0)] = 1
	for s := 0; s < steps; s++ {
		next := make([]float64, p)
		for i, v := range probs {
			if v == 0 {
				continue
			}
			next[(i+1)%p] += v / 2
			next[(i-1+p)%p] += v / 2
		}
		probs = next
	}
	return walk.Distribution{Lattice: l, Probs: probs}, nil
}
