package config

import (
	"fmt"
	"math"

	"github.com/kelseyhightower/envconfig"
)

// Output formats understood by the CLI.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds all application configuration.
type Config struct {
	Quadrature QuadratureConfig
	Batch      BatchConfig
	Output     OutputConfig
	Logging    LogConfig
}

// QuadratureConfig holds integrator defaults.
type QuadratureConfig struct {
	Tolerance      float64 `envconfig:"QUAD_TOL" default:"1e-6"`
	MaxDepth       int     `envconfig:"QUAD_MAX_DEPTH" default:"50"`
	Samples        int     `envconfig:"QUAD_SAMPLES" default:"400"`
	ReferenceNodes int     `envconfig:"QUAD_REFERENCE_NODES" default:"200"`
}

// BatchConfig holds batch runner configuration.
type BatchConfig struct {
	Workers int `envconfig:"QUAD_WORKERS" default:"4"`
}

// OutputConfig holds result encoding configuration.
type OutputConfig struct {
	Format string `envconfig:"QUAD_OUTPUT" default:"text"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Quadrature: QuadratureConfig{
			Tolerance:      1e-6,
			MaxDepth:       50,
			Samples:        400,
			ReferenceNodes: 200,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Format: OutputText,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Validate checks value ranges envconfig cannot express.
func (c *Config) Validate() error {
	q := c.Quadrature
	if math.IsNaN(q.Tolerance) || math.IsInf(q.Tolerance, 0) || q.Tolerance <= 0 {
		return fmt.Errorf("invalid config: QUAD_TOL must be finite and positive, got %v", q.Tolerance)
	}
	if q.MaxDepth <= 0 {
		return fmt.Errorf("invalid config: QUAD_MAX_DEPTH must be positive, got %d", q.MaxDepth)
	}
	if q.Samples < 2 {
		return fmt.Errorf("invalid config: QUAD_SAMPLES must be at least 2, got %d", q.Samples)
	}
	if q.ReferenceNodes < 1 {
		return fmt.Errorf("invalid config: QUAD_REFERENCE_NODES must be positive, got %d", q.ReferenceNodes)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("invalid config: QUAD_WORKERS must be positive, got %d", c.Batch.Workers)
	}
	switch c.Output.Format {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid config: QUAD_OUTPUT must be text, json or yaml, got %q", c.Output.Format)
	}
	return nil
}
