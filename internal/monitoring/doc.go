// Package monitoring records integration metrics with Prometheus.
//
// Metrics live on a private registry so several integrators (tests, batch
// workers) can coexist in one process. Metrics implements
// quadrature.Recorder and is safe for concurrent use.
//
// Metrics:
//   - quadrature_integrations_total{outcome}: ok, degraded or error
//   - quadrature_evaluations_total: integrand evaluations
//   - quadrature_frames_total: refinement frames
//   - quadrature_depth_exceeded_total: branches stopped by the depth guard
//   - quadrature_duration_seconds: wall time per integration
package monitoring
