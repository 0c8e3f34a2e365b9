// Package sweep runs independent walks in parallel.
//
// Every run owns its operator and state; nothing is shared between workers.
// Cancellation is per run: a run that has started always completes, and
// runs that have not started when ctx ends or another run fails are skipped.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/dtqw/internal/walk"
)

type Runner struct {
	workers int
	log     zerolog.Logger
}

// New creates a runner. workers <= 0 uses GOMAXPROCS.
func New(workers int, log zerolog.Logger) *Runner {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{
		workers: workers,
		log:     log.With().Str("component", "sweep").Logger(),
	}
}

func (r *Runner) Workers() int { return r.workers }

// Run simulates each parameter set and returns the outcomes in input order.
// The first failing run's error is returned.
func (r *Runner) Run(ctx context.Context, params []walk.Params) ([]*walk.Outcome, error) {
	outcomes := make([]*walk.Outcome, len(params))
	err := r.each(ctx, len(params), func(i int) error {
		out, err := walk.Simulate(params[i])
		if err != nil {
			return fmt.Errorf("run %d (N=%d): %w", i, params[i].N, err)
		}
		outcomes[i] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcomes, nil
}

// each calls fn for 0..n-1 with at most r.workers in flight. The first
// error stops runs that have not started yet.
func (r *Runner) each(ctx context.Context, n int, fn func(i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Point is the timing of one run in a scaling study.
type Point struct {
	N        int           `json:"n"`
	Steps    int           `json:"steps"`
	Strategy string        `json:"strategy"`
	Build    time.Duration `json:"build_ns"`
	Evolve   time.Duration `json:"evolve_ns"`
	Total    float64       `json:"total_probability"`
}

// Scaling configures a timing study over lattice sizes.
type Scaling struct {
	Base       walk.Params
	Ns         []int
	Strategies []walk.Strategy
	// StepsFor picks the step count for a half-width. nil walks N steps.
	StepsFor func(n int) int
}

// Scaling times operator construction and evolution for every (N, strategy)
// pair. Points come back ordered by N, then by strategy order.
func (r *Runner) Scaling(ctx context.Context, sc Scaling) ([]Point, error) {
	strategies := sc.Strategies
	if len(strategies) == 0 {
		strategies = []walk.Strategy{sc.Base.Strategy}
	}
	stepsFor := sc.StepsFor
	if stepsFor == nil {
		stepsFor = func(n int) int { return n }
	}

	jobs := make([]walk.Params, 0, len(sc.Ns)*len(strategies))
	for _, n := range sc.Ns {
		for _, s := range strategies {
			p := sc.Base
			p.N = n
			p.Steps = stepsFor(n)
			p.Strategy = s
			if err := p.Validate(); err != nil {
				return nil, err
			}
			jobs = append(jobs, p)
		}
	}

	r.log.Info().Int("runs", len(jobs)).Int("workers", r.workers).Msg("starting scaling sweep")

	points := make([]Point, len(jobs))
	err := r.each(ctx, len(jobs), func(i int) error {
		pt, err := timeRun(jobs[i])
		if err != nil {
			return fmt.Errorf("N=%d %s: %w", jobs[i].N, jobs[i].Strategy, err)
		}
		points[i] = pt
		r.log.Debug().
			Int("n", pt.N).
			Str("strategy", pt.Strategy).
			Dur("build", pt.Build).
			Dur("evolve", pt.Evolve).
			Msg("run finished")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

func timeRun(p walk.Params) (Point, error) {
	start := time.Now()
	op, err := p.Stepper()
	if err != nil {
		return Point{}, err
	}
	build := time.Since(start)

	x0 := walk.LocalizedStateWithPhase(op.Lattice(), p.Phi, p.Phase)
	start = time.Now()
	res, err := walk.NewEngine(op).Evolve(x0, p.Steps, p.Strategy)
	if err != nil {
		return Point{}, err
	}
	evolve := time.Since(start)

	d, err := walk.Measure(res.State)
	if err != nil {
		return Point{}, err
	}

	return Point{
		N:        p.N,
		Steps:    res.StepsTaken,
		Strategy: p.Strategy.String(),
		Build:    build,
		Evolve:   evolve,
		Total:    d.Total(),
	}, nil
}
