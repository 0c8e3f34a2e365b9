package config

import (
	"math"
	"sort"

	"github.com/san-kum/dtqw/internal/walk"
)

func preset(n, steps int, boundary string, theta, phi, phase float64) *Config {
	cfg := DefaultConfig()
	cfg.N = n
	cfg.Steps = steps
	cfg.Boundary = boundary
	cfg.Coin.Theta = theta
	cfg.Init.Phi = phi
	cfg.Init.Phase = phase
	return cfg
}

var Presets = map[string]*Config{
	// balanced coin and coin state: symmetric double peak
	"hadamard": preset(50, 50, "cyclic", math.Pi/4, math.Pi/4, 0),
	// the classic |0⟩ + i|1⟩ start from the direct position-update script
	"simple": preset(100, 100, "cyclic", math.Pi/4, math.Pi/4, math.Pi/2),
	"biased": preset(50, 50, "cyclic", math.Pi/4, 0, 0),
	"narrow": preset(50, 50, "cyclic", math.Pi/8, math.Pi/4, 0),
	// long enough to hit the edges
	"reflecting": preset(10, 40, "reflecting", math.Pi/4, math.Pi/4, 0),
	"absorbing":  preset(10, 40, "absorbing", math.Pi/4, math.Pi/4, 0),
	"stationary": preset(0, 10, "cyclic", math.Pi/4, math.Pi/4, 0),
	"power":      withStrategy(preset(20, 20, "cyclic", math.Pi/4, math.Pi/4, 0), walk.MatrixPower),
}

func withStrategy(cfg *Config, s walk.Strategy) *Config {
	cfg.Strategy = s.String()
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
