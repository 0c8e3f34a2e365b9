package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dtqw/internal/walk"
)

const (
	DefaultHalfWidth = 50
	DefaultSteps     = 50
	DefaultTheta     = math.Pi / 4
	DefaultPhi       = math.Pi / 4
	DefaultBoundary  = "cyclic"
	DefaultStrategy  = "iterative"
	DefaultTolerance = walk.DefaultTolerance
)

// Config is the on-disk description of a walk run. Angles are in radians.
type Config struct {
	N          int        `yaml:"n"`
	Steps      int        `yaml:"steps"`
	Boundary   string     `yaml:"boundary"`
	Strategy   string     `yaml:"strategy"`
	MatrixFree bool       `yaml:"matrix_free"`
	Tolerance  float64    `yaml:"tolerance"`
	Coin       CoinConfig `yaml:"coin"`
	Init       InitConfig `yaml:"init"`
}

type CoinConfig struct {
	Theta float64 `yaml:"theta"`
	Xi    float64 `yaml:"xi"`
	Zeta  float64 `yaml:"zeta"`
}

type InitConfig struct {
	Phi   float64 `yaml:"phi"`
	Phase float64 `yaml:"phase"`
}

func DefaultConfig() *Config {
	return &Config{
		N:         DefaultHalfWidth,
		Steps:     DefaultSteps,
		Boundary:  DefaultBoundary,
		Strategy:  DefaultStrategy,
		Tolerance: DefaultTolerance,
		Coin: CoinConfig{
			Theta: DefaultTheta,
			Xi:    walk.DefaultXi,
			Zeta:  walk.DefaultZeta,
		},
		Init: InitConfig{
			Phi: DefaultPhi,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the config into validated walk parameters.
func (c *Config) Params() (walk.Params, error) {
	b, err := walk.ParseBoundary(c.Boundary)
	if err != nil {
		return walk.Params{}, err
	}
	s, err := walk.ParseStrategy(c.Strategy)
	if err != nil {
		return walk.Params{}, err
	}

	p := walk.Params{
		N:          c.N,
		Steps:      c.Steps,
		Theta:      c.Coin.Theta,
		Xi:         c.Coin.Xi,
		Zeta:       c.Coin.Zeta,
		Phi:        c.Init.Phi,
		Phase:      c.Init.Phase,
		Boundary:   b,
		Strategy:   s,
		MatrixFree: c.MatrixFree,
	}
	if err := p.Validate(); err != nil {
		return walk.Params{}, err
	}
	return p, nil
}

// Validate checks the config without building anything.
func (c *Config) Validate() error {
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 1) {
		return fmt.Errorf("tolerance must be positive and finite, got %g", c.Tolerance)
	}
	_, err := c.Params()
	return err
}
