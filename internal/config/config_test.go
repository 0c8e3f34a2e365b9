package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/dtqw/internal/walk"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "cyclic", cfg.Boundary)
	assert.Equal(t, math.Pi/4, cfg.Coin.Theta)
	assert.Equal(t, walk.DefaultZeta, cfg.Coin.Zeta)
	require.NoError(t, cfg.Validate())
}

func TestParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Boundary = "reflecting"
	cfg.Strategy = "power"

	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, walk.Reflecting, p.Boundary)
	assert.Equal(t, walk.MatrixPower, p.Strategy)
	assert.Equal(t, cfg.N, p.N)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"negative n", func(c *Config) { c.N = -1 }, walk.ErrInvalidLattice},
		{"negative steps", func(c *Config) { c.Steps = -5 }, walk.ErrInvalidSteps},
		{"bad boundary", func(c *Config) { c.Boundary = "sticky" }, walk.ErrUnknownBoundary},
		{"bad strategy", func(c *Config) { c.Strategy = "guess" }, walk.ErrUnsupportedStrategy},
		{"power without matrix", func(c *Config) { c.Strategy = "power"; c.MatrixFree = true }, walk.ErrUnsupportedStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}

	for _, tol := range []float64{0, -1e-9, math.NaN(), math.Inf(1)} {
		cfg := DefaultConfig()
		cfg.Tolerance = tol
		assert.Error(t, cfg.Validate(), "tolerance %v", tol)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.yaml")
	cfg := DefaultConfig()
	cfg.N = 7
	cfg.Boundary = "absorbing"
	cfg.Init.Phase = math.Pi / 2

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	assert.Contains(t, names, "hadamard")
	assert.IsIncreasing(t, names)

	for _, name := range names {
		cfg := GetPreset(name)
		require.NotNil(t, cfg, name)
		assert.NoError(t, cfg.Validate(), name)
	}

	assert.Nil(t, GetPreset("nonexistent"))

	cfg := GetPreset("hadamard")
	cfg.N = 1
	assert.Equal(t, 50, Presets["hadamard"].N, "GetPreset must return a copy")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DTQW_N", "9")
	t.Setenv("DTQW_STEPS", "4")
	t.Setenv("DTQW_THETA", "0.5")
	t.Setenv("DTQW_BOUNDARY", "reflecting")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	assert.Equal(t, 9, cfg.N)
	assert.Equal(t, 4, cfg.Steps)
	assert.Equal(t, 0.5, cfg.Coin.Theta)
	assert.Equal(t, "reflecting", cfg.Boundary)
	assert.Equal(t, DefaultPhi, cfg.Init.Phi)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("DTQW_DATA_DIR", "/tmp/runs")
	t.Setenv("DTQW_WORKERS", "3")
	t.Setenv("DTQW_LOG_PRETTY", "false")

	env := LoadEnvironment()
	assert.Equal(t, "/tmp/runs", env.DataDir)
	assert.Equal(t, 3, env.Workers)
	assert.False(t, env.LogPretty)
	assert.Equal(t, "info", env.LogLevel)
}
