package experiment

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/dtqw/internal/metrics"
	"github.com/san-kum/dtqw/internal/walk"
)

type Registry struct {
	coins   map[string]func() walk.Coin
	metrics map[string]func() metrics.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		coins:   make(map[string]func() walk.Coin),
		metrics: make(map[string]func() metrics.Metric),
	}

	r.coins["hadamard"] = walk.HadamardCoin
	r.coins["real-hadamard"] = func() walk.Coin { return walk.NewCoin(math.Pi/4, 0, 0) }
	r.coins["identity"] = func() walk.Coin { return walk.NewCoin(0, 0, 0) }
	r.coins["flip"] = func() walk.Coin { return walk.NewCoin(math.Pi/2, 0, 0) }

	r.metrics["norm_drift"] = func() metrics.Metric { return metrics.NewNormDrift() }
	r.metrics["spread"] = func() metrics.Metric { return metrics.NewSpread() }
	r.metrics["entropy"] = func() metrics.Metric { return metrics.NewEntropy() }
	r.metrics["asymmetry"] = func() metrics.Metric { return metrics.NewAsymmetry() }
	r.metrics["return_probability"] = func() metrics.Metric { return metrics.NewReturnProbability() }

	return r
}

func (r *Registry) GetCoin(name string) (walk.Coin, error) {
	fn, ok := r.coins[name]
	if !ok {
		return walk.Coin{}, fmt.Errorf("unknown coin: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetMetric(name string) (metrics.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListCoins() []string   { return sortedKeys(r.coins) }
func (r *Registry) ListMetrics() []string { return sortedKeys(r.metrics) }

// DefaultMetrics returns a fresh instance of every registered metric.
func (r *Registry) DefaultMetrics() []metrics.Metric {
	names := r.ListMetrics()
	ms := make([]metrics.Metric, 0, len(names))
	for _, name := range names {
		ms = append(ms, r.metrics[name]())
	}
	return ms
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
