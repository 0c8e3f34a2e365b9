package experiment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/dtqw/internal/analysis"
	"github.com/san-kum/dtqw/internal/config"
	"github.com/san-kum/dtqw/internal/metrics"
	"github.com/san-kum/dtqw/internal/walk"
)

type Experiment struct {
	cfg       *config.Config
	params    walk.Params
	metrics   []metrics.Metric
	observers []walk.Observer
}

// Result is one finished run with its diagnostics.
type Result struct {
	Outcome *walk.Outcome
	Metrics map[string]float64
	Summary analysis.Summary
	Elapsed time.Duration
	// Drift is non-nil when the total probability left the configured
	// tolerance. The distribution is returned as measured.
	Drift error
}

// New validates cfg and prepares an experiment.
func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	p, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	return &Experiment{cfg: cfg, params: p}, nil
}

// Setup attaches the metrics to record and any extra observers, such as a
// live renderer.
func (e *Experiment) Setup(ms []metrics.Metric, observers ...walk.Observer) {
	e.metrics = ms
	e.observers = observers
}

func (e *Experiment) Params() walk.Params { return e.params }

// Run executes the walk. The engine itself cannot be interrupted; when ctx
// ends first Run returns ctx.Err() and the abandoned run's result is dropped.
// Metrics and observers are detached before Run returns, so none of them sees
// a step of the abandoned run afterwards.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type done struct {
		res *Result
		err error
	}
	ch := make(chan done, 1)
	g := &gate{observers: append(metrics.Observers(e.metrics), e.observers...)}

	go func() {
		res, err := e.run(g)
		ch <- done{res, err}
	}()

	select {
	case <-ctx.Done():
		g.close()
		return nil, ctx.Err()
	case d := <-ch:
		return d.res, d.err
	}
}

func (e *Experiment) run(g *gate) (*Result, error) {
	for _, m := range e.metrics {
		m.Reset()
	}

	start := time.Now()
	out, err := walk.Simulate(e.params, g)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil, errDetached
	}

	return &Result{
		Outcome: out,
		Metrics: metrics.Collect(e.metrics),
		Summary: analysis.Summarize(out.Distribution, out.StepsTaken),
		Elapsed: elapsed,
		Drift:   out.Distribution.CheckNormalization(e.cfg.Tolerance),
	}, nil
}

var errDetached = errors.New("experiment: run abandoned")

// gate forwards steps to observers until it is closed. close waits for an
// OnStep in progress to return.
type gate struct {
	mu        sync.Mutex
	closed    bool
	observers []walk.Observer
}

func (g *gate) OnStep(step int, s walk.State) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	for _, o := range g.observers {
		o.OnStep(step, s)
	}
}

func (g *gate) close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}
