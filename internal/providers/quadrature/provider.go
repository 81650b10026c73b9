package quadrature

import (
	"context"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/quadrature/internal/integrands"
	"github.com/GriffinCanCode/quadrature/internal/integration"
	"github.com/GriffinCanCode/quadrature/internal/types"
)

// Provider exposes quadrature as tools
type Provider struct {
	svc *integration.Service
}

// NewProvider creates a provider backed by svc
func NewProvider(svc *integration.Service) *Provider {
	return &Provider{svc: svc}
}

// Definition returns service metadata with all tools
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "quadrature",
		Name:        "Quadrature Service",
		Description: "Numerical integration with adaptive Simpson quadrature",
		Category:    types.CategoryMath,
		Capabilities: []string{
			"integration",
			"sampling",
		},
		Tools: []types.Tool{
			{
				ID:          "math.integrate",
				Name:        "Integrate",
				Description: "Integrate a named function over [low, high] to a tolerance",
				Parameters: []types.Parameter{
					{Name: "integrand", Type: "string", Description: "Integrand name (see math.integrands)", Required: true},
					{Name: "low", Type: "number", Description: "Lower bound", Required: true},
					{Name: "high", Type: "number", Description: "Upper bound", Required: true},
					{Name: "tol", Type: "number", Description: "Absolute error tolerance (default from config)", Required: false},
					{Name: "max_depth", Type: "number", Description: "Recursion depth guard (default 50)", Required: false},
					{Name: "compare", Type: "boolean", Description: "Also compute a Gauss-Legendre reference", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "math.simpson",
				Name:        "Simpson's Rule",
				Description: "Single Simpson's rule step over [low, high]",
				Parameters: []types.Parameter{
					{Name: "integrand", Type: "string", Description: "Integrand name", Required: true},
					{Name: "low", Type: "number", Description: "Lower bound", Required: true},
					{Name: "high", Type: "number", Description: "Upper bound", Required: true},
				},
				Returns: "number",
			},
			{
				ID:          "math.sample",
				Name:        "Sample Integrand",
				Description: "Evaluate a named function on a uniform grid for plotting",
				Parameters: []types.Parameter{
					{Name: "integrand", Type: "string", Description: "Integrand name", Required: true},
					{Name: "low", Type: "number", Description: "Lower bound", Required: true},
					{Name: "high", Type: "number", Description: "Upper bound", Required: true},
					{Name: "samples", Type: "number", Description: "Grid size (default 400)", Required: false},
				},
				Returns: "array",
			},
			{
				ID:          "math.integrands",
				Name:        "List Integrands",
				Description: "List the named integrands",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
		},
	}
}

// Execute routes to the matching tool. The caller and request ID from appCtx,
// when set, are echoed in the result data.
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	result, err := p.route(ctx, toolID, params)
	if err != nil || result == nil {
		return result, err
	}
	annotate(result, appCtx)
	return result, nil
}

func (p *Provider) route(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	switch toolID {
	case "math.integrate":
		return p.integrate(ctx, params)
	case "math.simpson":
		return p.simpson(params)
	case "math.sample":
		return p.sample(params)
	case "math.integrands":
		return p.list()
	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func annotate(result *types.Result, appCtx *types.Context) {
	if appCtx == nil || (appCtx.Caller == nil && appCtx.RequestID == nil) {
		return
	}
	if result.Data == nil {
		result.Data = make(map[string]interface{})
	}
	if appCtx.Caller != nil {
		result.Data["caller"] = *appCtx.Caller
	}
	if appCtx.RequestID != nil {
		result.Data["request_id"] = *appCtx.RequestID
	}
}

// bounds extracts integrand, low and high
func bounds(params map[string]interface{}) (string, float64, float64, error) {
	name, ok := GetString(params, "integrand")
	if !ok || name == "" {
		return "", 0, 0, errors.New("integrand parameter required")
	}
	low, ok := GetNumber(params, "low")
	if !ok {
		return "", 0, 0, errors.New("low parameter required")
	}
	high, ok := GetNumber(params, "high")
	if !ok {
		return "", 0, 0, errors.New("high parameter required")
	}
	return name, low, high, nil
}

func (p *Provider) integrate(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	name, low, high, err := bounds(params)
	if err != nil {
		return Failure(err.Error())
	}

	req := integration.Request{Integrand: name, Low: low, High: high}
	if _, present := params["tol"]; present {
		tol, ok := GetNumber(params, "tol")
		if !ok {
			return Failure("tol must be a number")
		}
		req.Tolerance = &tol
	}
	if _, present := params["max_depth"]; present {
		depth, ok := GetInt(params, "max_depth")
		if !ok {
			return Failure("max_depth must be an integer")
		}
		req.MaxDepth = &depth
	}
	if compare, ok := GetBool(params, "compare"); ok {
		req.Compare = compare
	}

	resp, err := p.svc.Integrate(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return Failure(err.Error())
	}

	data := map[string]interface{}{
		"result":         resp.Result.Value,
		"degraded":       resp.Result.Degraded(),
		"depth_exceeded": resp.Result.DepthExceeded,
		"evaluations":    resp.Result.Evaluations,
		"frames":         resp.Result.Frames,
		"run_id":         resp.RunID,
		"tol":            resp.Tolerance,
		"max_depth":      resp.MaxDepth,
	}
	if resp.Exact != nil {
		data["exact"] = *resp.Exact
	}
	if resp.Reference != nil {
		data["reference"] = *resp.Reference
		data["abs_error"] = *resp.AbsError
	}
	return Success(data)
}

func (p *Provider) simpson(params map[string]interface{}) (*types.Result, error) {
	name, low, high, err := bounds(params)
	if err != nil {
		return Failure(err.Error())
	}
	v, err := p.svc.Simpson(name, low, high)
	if err != nil {
		return Failure(err.Error())
	}
	return Success(map[string]interface{}{"result": v})
}

func (p *Provider) sample(params map[string]interface{}) (*types.Result, error) {
	name, low, high, err := bounds(params)
	if err != nil {
		return Failure(err.Error())
	}
	n := 0
	if _, present := params["samples"]; present {
		var ok bool
		if n, ok = GetInt(params, "samples"); !ok || n < 2 {
			return Failure("samples must be an integer >= 2")
		}
	}

	points, err := p.svc.Sample(name, low, high, n)
	if err != nil {
		return Failure(err.Error())
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, pt := range points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	return Success(map[string]interface{}{"x": xs, "y": ys, "count": len(points)})
}

func (p *Provider) list() (*types.Result, error) {
	all := integrands.All()
	items := make([]map[string]interface{}, len(all))
	for i, in := range all {
		items[i] = map[string]interface{}{
			"name":        in.Name,
			"expr":        in.Expr,
			"description": in.Description,
			"closed_form": in.Antiderivative != nil,
		}
	}
	return Success(map[string]interface{}{"integrands": items})
}
