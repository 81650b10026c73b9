package quadrature

import (
	"errors"
	"fmt"
)

// Domain errors for quadrature operations.
var (
	// ErrDomain indicates the integrand could not be evaluated at a sample point.
	ErrDomain = errors.New("quadrature: integrand not evaluable")

	// ErrInvalidInterval indicates low > high or a non-finite bound.
	ErrInvalidInterval = fmt.Errorf("%w: invalid interval", ErrDomain)

	// ErrInvalidTolerance indicates a tolerance that is not finite and positive.
	ErrInvalidTolerance = errors.New("quadrature: tolerance must be finite and positive")

	// ErrInvalidDepth indicates a non-positive maximum recursion depth.
	ErrInvalidDepth = errors.New("quadrature: max depth must be positive")
)

// DomainError records the sample point where the integrand failed.
type DomainError struct {
	X   float64
	Err error
}

func (e *DomainError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s at x=%g", ErrDomain, e.X)
	}
	return fmt.Sprintf("%s at x=%g: %v", ErrDomain, e.X, e.Err)
}

// Unwrap exposes the integrand's own error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is makes every DomainError match ErrDomain.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}
