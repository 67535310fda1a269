package config

import (
	"os"
	"strconv"

	"gocirc/domain/circular"
	"gocirc/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Engine   EngineConfig
	Server   ServerConfig
	Database DatabaseConfig
}

// EngineConfig holds the statistical engine settings
type EngineConfig struct {
	NSim     int     // permutation count per pairwise test
	FDRLevel float64 // Benjamini-Hochberg q
	Alpha    float64 // reporting significance threshold
	Seed     int64   // base RNG seed; 0 means derive from the clock at startup
	Workers  int     // permutation worker pool size
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds optional report persistence settings
type DatabaseConfig struct {
	URL string // empty disables persistence
}

// Params converts the engine configuration into analysis parameters.
func (e EngineConfig) Params() circular.AnalysisParams {
	return circular.AnalysisParams{
		NSim:     e.NSim,
		FDRLevel: e.FDRLevel,
		Alpha:    e.Alpha,
		Seed:     e.Seed,
		Workers:  e.Workers,
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	engine, err := loadEngineConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load engine configuration")
	}

	cfg := &Config{
		Engine: *engine,
		Server: ServerConfig{
			Port: getEnvOrDefault("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
	}
	return cfg, nil
}

func loadEngineConfig() (*EngineConfig, error) {
	nSim, err := getEnvIntOrDefault("CIRC_NSIM", 1000)
	if err != nil {
		return nil, err
	}
	if nSim <= 0 {
		return nil, errors.ConfigInvalid("CIRC_NSIM must be > 0")
	}

	q, err := getEnvFloatOrDefault("CIRC_FDR_Q", 0.05)
	if err != nil {
		return nil, err
	}
	if q <= 0 || q >= 1 {
		return nil, errors.ConfigInvalid("CIRC_FDR_Q must be in (0, 1)")
	}

	alpha, err := getEnvFloatOrDefault("CIRC_ALPHA", 0.05)
	if err != nil {
		return nil, err
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, errors.ConfigInvalid("CIRC_ALPHA must be in (0, 1)")
	}

	seed, err := getEnvInt64OrDefault("CIRC_SEED", 0)
	if err != nil {
		return nil, err
	}

	workers, err := getEnvIntOrDefault("CIRC_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		return nil, errors.ConfigInvalid("CIRC_WORKERS must be >= 1")
	}

	return &EngineConfig{
		NSim:     nSim,
		FDRLevel: q,
		Alpha:    alpha,
		Seed:     seed,
		Workers:  workers,
	}, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer")
	}
	return n, nil
}

func getEnvInt64OrDefault(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer")
	}
	return n, nil
}

func getEnvFloatOrDefault(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be a number")
	}
	return f, nil
}
