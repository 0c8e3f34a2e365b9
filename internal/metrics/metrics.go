package metrics

import "github.com/san-kum/dtqw/internal/walk"

// Metric accumulates a scalar over the states of one run.
type Metric interface {
	walk.Observer
	Name() string
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded for every run.
func Defaults() []Metric {
	return []Metric{
		NewNormDrift(),
		NewSpread(),
		NewEntropy(),
		NewAsymmetry(),
		NewReturnProbability(),
	}
}

// Collect returns name -> value for a set of metrics.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Observers adapts metrics for [walk.Simulate].
func Observers(ms []Metric) []walk.Observer {
	out := make([]walk.Observer, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}
