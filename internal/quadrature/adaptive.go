package quadrature

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxDepth bounds recursion when no depth is configured.
const DefaultMaxDepth = 50

// State is the outcome of one refinement frame.
type State string

const (
	// StateEvaluating is the initial state of every frame before its halves
	// are estimated. Frame observers never see it.
	StateEvaluating State = "evaluating"
	// StateAccurate means the halves agreed within 15*tol and the corrected
	// estimate was returned.
	StateAccurate State = "accurate"
	// StateDepthExceeded means the depth guard fired and the uncorrected sum
	// of the halves was returned.
	StateDepthExceeded State = "depth_exceeded"
	// StateRecurse means both halves were refined with half the tolerance.
	StateRecurse State = "recurse"
)

// Frame is the per-call state of one refinement step.
type Frame struct {
	Low   float64 `json:"low" yaml:"low"`
	High  float64 `json:"high" yaml:"high"`
	Tol   float64 `json:"tol" yaml:"tol"`
	Whole float64 `json:"whole" yaml:"whole"`
	Depth int     `json:"depth" yaml:"depth"`
}

// Result is the estimated integral plus diagnostics about how it was reached.
type Result struct {
	Value         float64 `json:"value" yaml:"value"`
	DepthExceeded int     `json:"depth_exceeded" yaml:"depth_exceeded"`
	Evaluations   int     `json:"evaluations" yaml:"evaluations"`
	Frames        int     `json:"frames" yaml:"frames"`
	DeepestLevel  int     `json:"deepest_level" yaml:"deepest_level"`
}

// Degraded reports whether any branch hit the depth guard, which leaves an
// unrefined estimate in the sum.
func (r Result) Degraded() bool {
	return r.DepthExceeded > 0
}

// Recorder receives one observation per Integrate call.
type Recorder interface {
	ObserveIntegration(res Result, err error, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveIntegration(Result, error, time.Duration) {}

// Options configures an Integrator.
type Options struct {
	MaxDepth int
	Logger   *zap.Logger
	Recorder Recorder
	// OnFrame sees every frame once it has settled on a state.
	OnFrame func(Frame, State)
}

// Option mutates Options.
type Option func(*Options)

// WithMaxDepth sets the recursion depth guard.
func WithMaxDepth(depth int) Option {
	return func(o *Options) { o.MaxDepth = depth }
}

// WithLogger sets the logger used for depth-exceeded diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithRecorder sets the metrics sink.
func WithRecorder(rec Recorder) Option {
	return func(o *Options) { o.Recorder = rec }
}

// WithFrameObserver installs a per-frame callback.
func WithFrameObserver(fn func(Frame, State)) Option {
	return func(o *Options) { o.OnFrame = fn }
}

// Integrator runs adaptive Simpson quadrature with fixed options.
type Integrator struct {
	opts Options
}

// New creates an Integrator. Unset options fall back to DefaultMaxDepth, a
// no-op logger and a no-op recorder.
func New(opts ...Option) *Integrator {
	o := Options{MaxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Recorder == nil {
		o.Recorder = nopRecorder{}
	}
	return &Integrator{opts: o}
}

// MaxDepth returns the configured depth guard.
func (in *Integrator) MaxDepth() int {
	return in.opts.MaxDepth
}

// Integrate is shorthand for New(opts...).Integrate.
func Integrate(ctx context.Context, f Func, low, high, tol float64, opts ...Option) (Result, error) {
	return New(opts...).Integrate(ctx, f, low, high, tol)
}

// Integrate estimates the integral of f over [low, high] to within roughly
// tol. Exceeding the depth guard is not an error: the affected branches
// return unrefined estimates and are counted in Result.DepthExceeded.
// Integrand failures abort the whole computation.
func (in *Integrator) Integrate(ctx context.Context, f Func, low, high, tol float64) (Result, error) {
	start := time.Now()
	res, err := in.integrate(ctx, f, low, high, tol)
	in.opts.Recorder.ObserveIntegration(res, err, time.Since(start))
	return res, err
}

func (in *Integrator) integrate(ctx context.Context, f Func, low, high, tol float64) (Result, error) {
	if in.opts.MaxDepth <= 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidDepth, in.opts.MaxDepth)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		return Result{}, fmt.Errorf("%w: got %v", ErrInvalidTolerance, tol)
	}
	if !isFinite(low) || !isFinite(high) {
		return Result{}, fmt.Errorf("%w: bounds [%v, %v] must be finite", ErrInvalidInterval, low, high)
	}
	if low > high {
		return Result{}, fmt.Errorf("%w: low %v exceeds high %v", ErrInvalidInterval, low, high)
	}
	if low == high {
		return Result{}, nil
	}

	r := &run{
		ctx:      ctx,
		f:        f,
		maxDepth: in.opts.MaxDepth,
		log:      in.opts.Logger,
		onFrame:  in.opts.OnFrame,
	}

	mid := (low + high) / 2
	flow, err := r.eval(low)
	if err != nil {
		return r.res, err
	}
	fmid, err := r.eval(mid)
	if err != nil {
		return r.res, err
	}
	fhigh, err := r.eval(high)
	if err != nil {
		return r.res, err
	}
	whole := simpsonRule(low, high, flow, fmid, fhigh)

	value, err := r.refine(Frame{Low: low, High: high, Tol: tol, Whole: whole, Depth: 1}, flow, fmid, fhigh)
	if err != nil {
		return r.res, err
	}
	r.res.Value = value

	if r.res.DepthExceeded > 0 {
		in.opts.Logger.Warn("integration finished with unrefined branches",
			zap.Int("depth_exceeded", r.res.DepthExceeded),
			zap.Int("max_depth", r.maxDepth),
			zap.Float64("value", value))
	}
	return r.res, nil
}

// run holds the state shared by all frames of one Integrate call.
type run struct {
	ctx      context.Context
	f        Func
	maxDepth int
	log      *zap.Logger
	onFrame  func(Frame, State)
	res      Result
}

func (r *run) eval(x float64) (float64, error) {
	r.res.Evaluations++
	return eval(r.f, x)
}

func (r *run) observe(fr Frame, s State) {
	if r.onFrame != nil {
		r.onFrame(fr, s)
	}
}

// refine processes one frame. flow, fmid and fhigh are f at fr.Low, the
// midpoint and fr.High, already computed by the parent.
func (r *run) refine(fr Frame, flow, fmid, fhigh float64) (float64, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, fmt.Errorf("quadrature: %w", err)
	}
	r.res.Frames++
	if fr.Depth > r.res.DeepestLevel {
		r.res.DeepestLevel = fr.Depth
	}

	low, high := fr.Low, fr.High
	mid := (low + high) / 2
	fleft, err := r.eval((low + mid) / 2)
	if err != nil {
		return 0, err
	}
	fright, err := r.eval((mid + high) / 2)
	if err != nil {
		return 0, err
	}
	left := simpsonRule(low, mid, flow, fleft, fmid)
	right := simpsonRule(mid, high, fmid, fright, fhigh)
	sum := left + right

	// Depth guard runs before the accuracy test.
	if fr.Depth > r.maxDepth {
		r.res.DepthExceeded++
		r.log.Warn("maximum recursion depth exceeded",
			zap.Float64("low", low),
			zap.Float64("high", high),
			zap.Int("depth", fr.Depth),
			zap.Int("max_depth", r.maxDepth))
		r.observe(fr, StateDepthExceeded)
		return sum, nil
	}

	if math.Abs(sum-fr.Whole) <= 15*fr.Tol {
		r.observe(fr, StateAccurate)
		return sum + (sum-fr.Whole)/15, nil
	}

	r.observe(fr, StateRecurse)
	lv, err := r.refine(Frame{Low: low, High: mid, Tol: fr.Tol / 2, Whole: left, Depth: fr.Depth + 1}, flow, fleft, fmid)
	if err != nil {
		return 0, err
	}
	rv, err := r.refine(Frame{Low: mid, High: high, Tol: fr.Tol / 2, Whole: right, Depth: fr.Depth + 1}, fmid, fright, fhigh)
	if err != nil {
		return 0, err
	}
	return lv + rv, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
