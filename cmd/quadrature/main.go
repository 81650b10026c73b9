// Package main is the entry point for the quadrature CLI.
//
// Commands:
//   - integrate: adaptive Simpson quadrature over a named integrand
//   - sample: dense uniform grid of integrand values for plotting
//   - batch: run jobs from a TOML or YAML file concurrently
//   - integrands: list the named integrands
//
// Configuration:
//   - Environment variables (QUAD_*, LOG_LEVEL, LOG_DEV)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# The classic benchmark: (100/x^2)*sin(10/x) on [1, 3]
//	quadrature integrate --tol 1e-4 --compare
//
//	# Plot data
//	quadrature sample --integrand oscillatory --samples 400 -o json
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
