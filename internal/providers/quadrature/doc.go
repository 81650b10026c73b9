// Package quadrature exposes numerical integration as tool calls.
//
// Tools:
//   - math.integrate: adaptive Simpson quadrature with depth diagnostics
//   - math.simpson: a single Simpson's rule step
//   - math.sample: dense uniform grid of integrand values for plotting
//   - math.integrands: the named integrand catalog
//
// Invalid input and integrand domain errors are reported as failed results,
// not Go errors. Only context cancellation is returned as an error.
//
// Example Usage:
//
//	provider := quadrature.NewProvider(svc)
//	result, err := provider.Execute(ctx, "math.integrate", map[string]interface{}{
//		"integrand": "oscillatory", "low": 1.0, "high": 3.0, "tol": 1e-4,
//	}, nil)
package quadrature
