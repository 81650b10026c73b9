package quadrature

import (
	"fmt"
	"math"
)

// Func is an integrand. It must be deterministic: estimates computed for an
// interval are reused by deeper frames without re-evaluating f.
type Func func(x float64) (float64, error)

// Pure adapts a plain function. Non-finite results still surface as
// DomainError when evaluated.
func Pure(f func(float64) float64) Func {
	return func(x float64) (float64, error) {
		return f(x), nil
	}
}

// eval calls f and rejects errors and non-finite values.
func eval(f Func, x float64) (float64, error) {
	y, err := f(x)
	if err != nil {
		return 0, &DomainError{X: x, Err: err}
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, &DomainError{X: x, Err: fmt.Errorf("non-finite value %v", y)}
	}
	return y, nil
}

// simpsonRule is the closed form over [low, high] given f at low, mid, high.
func simpsonRule(low, high, flow, fmid, fhigh float64) float64 {
	return math.Abs(high-low) / 6 * (flow + 4*fmid + fhigh)
}

// Simpson returns the single-application Simpson's rule estimate of the
// integral of f over [low, high]. It is exact for polynomials of degree <= 3.
func Simpson(f Func, low, high float64) (float64, error) {
	mid := (low + high) / 2
	flow, err := eval(f, low)
	if err != nil {
		return 0, err
	}
	fmid, err := eval(f, mid)
	if err != nil {
		return 0, err
	}
	fhigh, err := eval(f, high)
	if err != nil {
		return 0, err
	}
	return simpsonRule(low, high, flow, fmid, fhigh), nil
}
