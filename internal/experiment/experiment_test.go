package experiment

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/san-kum/dtqw/internal/config"
	"github.com/san-kum/dtqw/internal/walk"
)

func TestExperimentRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.N, cfg.Steps = 5, 5

	exp, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	exp.Setup(NewRegistry().DefaultMetrics())

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if res.Drift != nil {
		t.Errorf("unexpected drift: %v", res.Drift)
	}
	if len(res.Outcome.Distribution.Probs) != 11 {
		t.Errorf("expected 11 positions, got %d", len(res.Outcome.Distribution.Probs))
	}
	if len(res.Metrics) != 5 {
		t.Errorf("expected 5 metrics, got %d", len(res.Metrics))
	}
	if res.Metrics["norm_drift"] > 1e-9 {
		t.Errorf("expected negligible norm drift, got %v", res.Metrics["norm_drift"])
	}
	if res.Summary.SpreadRatio <= 1 {
		t.Errorf("expected super-diffusive spread, got ratio %v", res.Summary.SpreadRatio)
	}
}

func TestExperimentReportsDrift(t *testing.T) {
	cfg := config.GetPreset("absorbing")
	exp, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !errors.Is(res.Drift, walk.ErrNumericalDrift) {
		t.Errorf("expected drift to be reported, got %v", res.Drift)
	}
	if res.Summary.Total >= 1 {
		t.Errorf("expected lost probability, total %v", res.Summary.Total)
	}
}

func TestExperimentInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Steps = -1

	_, err := New(cfg)
	if !errors.Is(err, walk.ErrInvalidSteps) {
		t.Errorf("expected ErrInvalidSteps, got %v", err)
	}
}

func TestExperimentCanceled(t *testing.T) {
	exp, err := New(config.DefaultConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := exp.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestExperimentDeadline(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.N, cfg.Steps = 120, 4000

	exp, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	if _, err := exp.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

type countingObserver struct {
	calls atomic.Int64
}

func (c *countingObserver) OnStep(int, walk.State) { c.calls.Add(1) }

func TestExperimentDetachesObserversAfterDeadline(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.N, cfg.Steps = 120, 4000

	exp, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	obs := &countingObserver{}
	exp.Setup(NewRegistry().DefaultMetrics(), obs)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	if _, err := exp.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	seen := obs.calls.Load()

	time.Sleep(50 * time.Millisecond)
	if got := obs.calls.Load(); got != seen {
		t.Errorf("observer called %d times after Run returned", got-seen)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	c, err := r.GetCoin("hadamard")
	if err != nil {
		t.Fatalf("hadamard: %v", err)
	}
	if math.Abs(c.Theta-math.Pi/4) > 1e-15 {
		t.Errorf("expected theta π/4, got %v", c.Theta)
	}

	for _, name := range r.ListCoins() {
		c, _ := r.GetCoin(name)
		if dev := c.Matrix().UnitarityError(); dev > 1e-12 {
			t.Errorf("coin %s not unitary: %g", name, dev)
		}
	}

	if _, err := r.GetCoin("loaded"); err == nil {
		t.Error("expected error for unknown coin")
	}
	if _, err := r.GetMetric("spread"); err != nil {
		t.Errorf("spread: %v", err)
	}
	if _, err := r.GetMetric("energy"); err == nil {
		t.Error("expected error for unknown metric")
	}
}
