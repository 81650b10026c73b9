// Package logging provides structured logging using uber/zap.
//
// Production mode writes JSON, development mode writes coloured console
// output. Both write to stderr so results printed on stdout stay clean.
//
// Example Usage:
//
//	logger := logging.NewDefault().ForRun(runID)
//	res, err := quadrature.Integrate(ctx, f, 0, 1, 1e-6, quadrature.WithLogger(logger.Logger))
package logging
