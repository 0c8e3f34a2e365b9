package metrics

import (
	"github.com/san-kum/dtqw/internal/analysis"
	"github.com/san-kum/dtqw/internal/walk"
)

// lastDistribution keeps the distribution of the most recent observed state.
type lastDistribution struct {
	dist walk.Distribution
	ok   bool
}

func (l *lastDistribution) observe(s walk.State) {
	d, err := walk.Measure(s)
	if err != nil {
		l.ok = false
		return
	}
	l.dist, l.ok = d, true
}

func (l *lastDistribution) reset() { l.dist, l.ok = walk.Distribution{}, false }

// Spread is the positional standard deviation of the last observed state.
type Spread struct {
	name string
	last lastDistribution
}

func NewSpread() *Spread { return &Spread{name: "spread"} }

func (s *Spread) Name() string                      { return s.name }
func (s *Spread) OnStep(step int, state walk.State) { s.last.observe(state) }
func (s *Spread) Reset()                            { s.last.reset() }

func (s *Spread) Value() float64 {
	if !s.last.ok {
		return 0
	}
	return analysis.StdDev(s.last.dist)
}

// Entropy is the Shannon entropy in nats of the last observed distribution.
type Entropy struct {
	name string
	last lastDistribution
}

func NewEntropy() *Entropy { return &Entropy{name: "entropy"} }

func (e *Entropy) Name() string                      { return e.name }
func (e *Entropy) OnStep(step int, state walk.State) { e.last.observe(state) }
func (e *Entropy) Reset()                            { e.last.reset() }

func (e *Entropy) Value() float64 {
	if !e.last.ok {
		return 0
	}
	return analysis.Entropy(e.last.dist)
}

// Asymmetry is the largest |P(p) - P(-p)| seen over the run.
type Asymmetry struct {
	name  string
	worst float64
}

func NewAsymmetry() *Asymmetry { return &Asymmetry{name: "asymmetry"} }

func (a *Asymmetry) Name() string { return a.name }

func (a *Asymmetry) OnStep(step int, state walk.State) {
	d, err := walk.Measure(state)
	if err != nil {
		return
	}
	if v := analysis.Asymmetry(d); v > a.worst {
		a.worst = v
	}
}

func (a *Asymmetry) Value() float64 { return a.worst }
func (a *Asymmetry) Reset()         { a.worst = 0 }

// ReturnProbability averages the probability at the origin over observed steps.
type ReturnProbability struct {
	name    string
	sum     float64
	samples int
}

func NewReturnProbability() *ReturnProbability {
	return &ReturnProbability{name: "return_probability"}
}

func (r *ReturnProbability) Name() string { return r.name }

func (r *ReturnProbability) OnStep(step int, state walk.State) {
	d, err := walk.Measure(state)
	if err != nil {
		return
	}
	r.sum += d.At(0)
	r.samples++
}

func (r *ReturnProbability) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.sum / float64(r.samples)
}

func (r *ReturnProbability) Reset() {
	r.sum = 0
	r.samples = 0
}
