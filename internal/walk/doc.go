// Package walk implements a discrete-time quantum walk on a finite
// one-dimensional lattice.
//
// The package is built from small, immutable pieces:
//
//   - [Coin]: 2x2 unitary acting on the internal two-level degree of freedom
//   - [BuildShift]: coin-conditioned position shift for a [Boundary] policy
//   - [BuildWalkOperator]: the single-step operator U = (I ⊗ C) · S
//   - [Evolve]: N-step evolution, iterative or by matrix power
//   - [Measure]: classical probability read-out over positions
//
// # Example
//
//	dist, err := walk.RunWalk(50, 50, math.Pi/4, math.Pi/4)
//	if err != nil {
//	    return err
//	}
//	for _, pp := range dist.Pairs() {
//	    fmt.Println(pp.Position, pp.Probability)
//	}
//
// # State Layout
//
// A [State] holds 2P complex amplitudes in position-major order: the amplitude
// of position p with coin value c lives at index 2*(p+N)+c.
//
// # Normalization
//
// Evolution never renormalizes. Unitary boundaries preserve the total
// probability to floating-point roundoff; [Distribution.CheckNormalization]
// reports any drift so that a broken operator is visible instead of hidden.
//
// # Thread Safety
//
// Operators are immutable after construction and may be shared between
// goroutines. States are values; every step returns a fresh slice.
package walk
