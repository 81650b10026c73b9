// Package config provides 12-factor configuration for the quadrature tools.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags override environment variables.
//
// Configuration Sections:
//   - Quadrature: tolerance, depth guard, sampling and reference settings
//   - Batch: worker count for concurrent job files
//   - Output: result encoding (text, json, yaml)
//   - Logging: log level and output format
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	res, err := quadrature.Integrate(ctx, f, 1, 3, cfg.Quadrature.Tolerance,
//		quadrature.WithMaxDepth(cfg.Quadrature.MaxDepth))
//
// Environment Variables:
//   - QUAD_TOL, QUAD_MAX_DEPTH, QUAD_SAMPLES, QUAD_REFERENCE_NODES
//   - QUAD_WORKERS, QUAD_OUTPUT
//   - LOG_LEVEL, LOG_DEV
package config
