package config

import (
	"os"
	"strconv"

	"montyhall/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Simulation SimulationConfig
	Server     ServerConfig
}

// SimulationConfig holds trial-runner defaults. The core never hardcodes a
// trial count; these defaults exist only at the edges (CLI, API).
type SimulationConfig struct {
	DefaultTrials  int
	DefaultWorkers int
	// Seed of 0 means "derive from wall clock" at the edge
	DefaultSeed int64
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Simulation: SimulationConfig{
			// 10,000 is the convergence-grade trial count for this puzzle;
			// 100-trial runs are far too noisy to separate 1/3 from 2/3
			DefaultTrials:  getEnvIntOrDefault("SIM_TRIALS", 10000),
			DefaultWorkers: getEnvIntOrDefault("SIM_WORKERS", 1),
			DefaultSeed:    getEnvInt64OrDefault("SIM_SEED", 0),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Simulation.DefaultTrials < 1 {
		return errors.ConfigInvalid("SIM_TRIALS must be at least 1")
	}
	if config.Simulation.DefaultWorkers < 1 {
		return errors.ConfigInvalid("SIM_WORKERS must be at least 1")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
