package optim

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/dtqw/internal/config"
	"github.com/san-kum/dtqw/internal/experiment"
	"github.com/san-kum/dtqw/internal/metrics"
)

// Parameters a grid can vary.
var settable = map[string]func(*config.Config, float64){
	"theta": func(c *config.Config, v float64) { c.Coin.Theta = v },
	"xi":    func(c *config.Config, v float64) { c.Coin.Xi = v },
	"zeta":  func(c *config.Config, v float64) { c.Coin.Zeta = v },
	"phi":   func(c *config.Config, v float64) { c.Init.Phi = v },
	"phase": func(c *config.Config, v float64) { c.Init.Phase = v },
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(params), len(ranges))
	}
	for i, name := range params {
		if _, ok := settable[name]; !ok {
			return nil, fmt.Errorf("optim: unknown parameter %q", name)
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", name)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Best is the winning grid point.
type Best struct {
	Params map[string]float64
	Value  float64
	Evals  int
}

// Search runs one experiment per grid point on top of base and returns the
// point with the smallest value of metric, or the largest when maximize is
// set. The first failing run aborts the search.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metric string, maximize bool) (*Best, error) {
	if _, err := experiment.NewRegistry().GetMetric(metric); err != nil {
		return nil, err
	}

	sign := 1.0
	if maximize {
		sign = -1
	}
	best := &Best{Value: math.Inf(1)}

	err := g.searchRecursive(ctx, 0, make(map[string]float64), func(point map[string]float64) error {
		cfg := *base
		for name, v := range point {
			settable[name](&cfg, v)
		}

		exp, err := experiment.New(&cfg)
		if err != nil {
			return err
		}
		m, _ := experiment.NewRegistry().GetMetric(metric)
		exp.Setup([]metrics.Metric{m})

		res, err := exp.Run(ctx)
		if err != nil {
			return err
		}
		best.Evals++

		if val := sign * res.Metrics[metric]; val < best.Value {
			best.Value = val
			best.Params = make(map[string]float64, len(point))
			for k, v := range point {
				best.Params[k] = v
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	best.Value *= sign
	return best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	eval func(map[string]float64) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		return eval(current)
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, eval); err != nil {
			return err
		}
	}
	return nil
}

// ParseRange parses "name=lo:hi:count" into count evenly spaced values
// including both ends. "name=v" is a single value.
func ParseRange(s string) (string, []float64, error) {
	name, rng, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("optim: range %q is not name=lo:hi:count", s)
	}

	parts := strings.Split(rng, ":")
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return "", nil, fmt.Errorf("optim: %s: %w", name, err)
		}
		return name, []float64{v}, nil
	case 3:
	default:
		return "", nil, fmt.Errorf("optim: range %q is not name=lo:hi:count", s)
	}

	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("optim: %s: %w", name, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("optim: %s: %w", name, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("optim: %s: count must be a positive integer", name)
	}

	if n == 1 {
		return name, []float64{lo}, nil
	}
	return name, floats.Span(make([]float64, n), lo, hi), nil
}
