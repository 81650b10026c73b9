package quadrature

import (
	"fmt"

	"gonum.org/v1/gonum/integrate/quad"
)

// DefaultReferenceNodes is the Gauss-Legendre node count used by Reference.
const DefaultReferenceNodes = 200

// Reference integrates f with an n-point Gauss-Legendre rule. It is an
// independent cross-check for Integrate, not an adaptive method.
func Reference(f Func, low, high float64, n int) (float64, error) {
	if n < 1 {
		return 0, fmt.Errorf("quadrature: reference node count must be positive, got %d", n)
	}
	if !isFinite(low) || !isFinite(high) || low > high {
		return 0, fmt.Errorf("%w: [%v, %v]", ErrInvalidInterval, low, high)
	}
	if low == high {
		return 0, nil
	}

	var firstErr error
	plain := func(x float64) float64 {
		if firstErr != nil {
			return 0
		}
		y, err := eval(f, x)
		if err != nil {
			firstErr = err
			return 0
		}
		return y
	}

	// concurrent=0 keeps evaluation sequential so firstErr is not raced.
	v := quad.Fixed(plain, low, high, n, quad.Legendre{}, 0)
	if firstErr != nil {
		return 0, firstErr
	}
	return v, nil
}
