// Package analysis derives read-outs from a finished quantum walk.
//
// Everything here consumes a [walk.Distribution] or a final [walk.State]
// and never touches the engine:
//
//   - [Mean], [StdDev], [Entropy], [Asymmetry]: distribution statistics
//   - [TotalVariation]: distance between two distributions on one lattice
//   - [ClassicalWalk]: the unbiased random walk with the same step count
//   - [Peaks]: the largest local maxima
//   - [MomentumSpectrum]: probability over lattice momenta
//
// # Ballistic Spread
//
// A quantum walk spreads linearly in the step count while the classical walk
// spreads as its square root:
//
//	s := analysis.Summarize(dist, steps)
//	if s.SpreadRatio > 1 {
//	    // faster than diffusive
//	}
package analysis
