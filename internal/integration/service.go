// Package integration resolves named integrands and runs them through the
// quadrature engine with logging, metrics and optional cross-checks.
package integration

import (
	"context"
	"fmt"
	"math"

	"github.com/GriffinCanCode/quadrature/internal/config"
	"github.com/GriffinCanCode/quadrature/internal/integrands"
	"github.com/GriffinCanCode/quadrature/internal/logging"
	"github.com/GriffinCanCode/quadrature/internal/quadrature"
	"github.com/GriffinCanCode/quadrature/internal/shared/id"
	"go.uber.org/zap"
)

// Request describes one integration over a named integrand.
type Request struct {
	Integrand string  `json:"integrand" yaml:"integrand" toml:"integrand"`
	Low       float64 `json:"low" yaml:"low" toml:"low"`
	High      float64 `json:"high" yaml:"high" toml:"high"`
	// Tolerance and MaxDepth fall back to configuration only when omitted;
	// an explicit zero is passed through and rejected by the integrator.
	Tolerance *float64 `json:"tol,omitempty" yaml:"tol,omitempty" toml:"tol,omitempty"`
	MaxDepth  *int     `json:"max_depth,omitempty" yaml:"max_depth,omitempty" toml:"max_depth,omitempty"`
	Compare   bool     `json:"compare,omitempty" yaml:"compare,omitempty" toml:"compare,omitempty"`
}

// Response is the outcome of a Request.
type Response struct {
	RunID     string            `json:"run_id" yaml:"run_id"`
	Integrand string            `json:"integrand" yaml:"integrand"`
	Expr      string            `json:"expr" yaml:"expr"`
	Low       float64           `json:"low" yaml:"low"`
	High      float64           `json:"high" yaml:"high"`
	Tolerance float64           `json:"tol" yaml:"tol"`
	MaxDepth  int               `json:"max_depth" yaml:"max_depth"`
	Result    quadrature.Result `json:"result" yaml:"result"`
	// Exact is set when the integrand has a closed form valid on [Low, High].
	Exact *float64 `json:"exact,omitempty" yaml:"exact,omitempty"`
	// Reference and AbsError are set when Compare was requested.
	Reference *float64 `json:"reference,omitempty" yaml:"reference,omitempty"`
	AbsError  *float64 `json:"abs_error,omitempty" yaml:"abs_error,omitempty"`
}

// Service runs integrations with shared configuration.
type Service struct {
	cfg      config.QuadratureConfig
	logger   *logging.Logger
	recorder quadrature.Recorder
}

// NewService creates a Service. A nil logger discards output; a nil recorder
// records nothing.
func NewService(cfg config.QuadratureConfig, logger *logging.Logger, recorder quadrature.Recorder) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{cfg: cfg, logger: logger, recorder: recorder}
}

// Integrate resolves req.Integrand and integrates it over [req.Low, req.High].
func (s *Service) Integrate(ctx context.Context, req Request) (*Response, error) {
	in, err := integrands.Lookup(req.Integrand)
	if err != nil {
		return nil, err
	}

	tol := s.cfg.Tolerance
	if req.Tolerance != nil {
		tol = *req.Tolerance
	}
	depth := s.cfg.MaxDepth
	if req.MaxDepth != nil {
		depth = *req.MaxDepth
	}

	runID := id.NewRunID().String()
	log := s.logger.ForRun(runID).With(zap.String("integrand", in.Name))

	opts := []quadrature.Option{
		quadrature.WithMaxDepth(depth),
		quadrature.WithLogger(log),
	}
	if s.recorder != nil {
		opts = append(opts, quadrature.WithRecorder(s.recorder))
	}

	log.Debug("integrating",
		zap.Float64("low", req.Low),
		zap.Float64("high", req.High),
		zap.Float64("tol", tol),
		zap.Int("max_depth", depth))

	res, err := quadrature.Integrate(ctx, in.Func, req.Low, req.High, tol, opts...)
	if err != nil {
		log.Error("integration failed", zap.Error(err))
		return nil, fmt.Errorf("integrate %s over [%v, %v]: %w", in.Name, req.Low, req.High, err)
	}

	resp := &Response{
		RunID:     runID,
		Integrand: in.Name,
		Expr:      in.Expr,
		Low:       req.Low,
		High:      req.High,
		Tolerance: tol,
		MaxDepth:  depth,
		Result:    res,
	}
	if exact, ok := in.Exact(req.Low, req.High); ok && !math.IsNaN(exact) && !math.IsInf(exact, 0) {
		resp.Exact = &exact
	}

	if req.Compare {
		ref, err := quadrature.Reference(in.Func, req.Low, req.High, s.cfg.ReferenceNodes)
		if err != nil {
			return nil, fmt.Errorf("reference for %s: %w", in.Name, err)
		}
		diff := math.Abs(res.Value - ref)
		resp.Reference = &ref
		resp.AbsError = &diff
	}

	log.Info("integration complete",
		zap.Float64("value", res.Value),
		zap.Int("evaluations", res.Evaluations),
		zap.Int("frames", res.Frames),
		zap.Int("depth_exceeded", res.DepthExceeded))
	return resp, nil
}

// Simpson applies a single Simpson's rule step to a named integrand.
func (s *Service) Simpson(name string, low, high float64) (float64, error) {
	in, err := integrands.Lookup(name)
	if err != nil {
		return 0, err
	}
	return quadrature.Simpson(in.Func, low, high)
}

// Sample evaluates a named integrand on a uniform grid for plotting. n <= 0
// uses the configured sample count.
func (s *Service) Sample(name string, low, high float64, n int) ([]quadrature.Point, error) {
	in, err := integrands.Lookup(name)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = s.cfg.Samples
	}
	return quadrature.Sample(in.Func, low, high, n)
}
