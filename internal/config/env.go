package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment holds process-level settings that are not part of a run.
type Environment struct {
	DataDir   string
	LogLevel  string
	LogPretty bool
	Workers   int
}

// LoadEnvironment reads a .env file if present, then DTQW_* variables.
func LoadEnvironment() Environment {
	_ = godotenv.Load()

	return Environment{
		DataDir:   getEnv("DTQW_DATA_DIR", ".dtqw"),
		LogLevel:  getEnv("DTQW_LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("DTQW_LOG_PRETTY", true),
		Workers:   getEnvAsInt("DTQW_WORKERS", 0),
	}
}

// ApplyEnv overrides run settings from DTQW_N, DTQW_STEPS, DTQW_THETA,
// DTQW_PHI and DTQW_BOUNDARY when they are set.
func (c *Config) ApplyEnv() {
	c.N = getEnvAsInt("DTQW_N", c.N)
	c.Steps = getEnvAsInt("DTQW_STEPS", c.Steps)
	c.Coin.Theta = getEnvAsFloat("DTQW_THETA", c.Coin.Theta)
	c.Init.Phi = getEnvAsFloat("DTQW_PHI", c.Init.Phi)
	c.Boundary = getEnv("DTQW_BOUNDARY", c.Boundary)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return defaultValue
}
