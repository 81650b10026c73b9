// Package quadrature provides adaptive Simpson quadrature for one-dimensional
// real integrands.
//
// The integrator bisects an interval, applies Simpson's rule to each half and
// compares the sum with the whole-interval estimate. When the difference is
// within 15 times the local tolerance the sum is accepted with a Richardson
// correction; otherwise each half is refined with half the tolerance.
//
// Recursion is bounded by a depth guard. A branch that exceeds it returns its
// unrefined estimate, logs a warning and is counted in Result.DepthExceeded,
// so callers can detect degraded accuracy without the computation failing.
//
// Integrand failures (errors, NaN or Inf values) are DomainErrors and abort
// the computation.
//
// Example Usage:
//
//	res, err := quadrature.Integrate(ctx, quadrature.Pure(func(x float64) float64 {
//		return x * x
//	}), 0, 1, 1e-6)
package quadrature
