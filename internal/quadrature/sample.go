package quadrature

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// DefaultSamples is the grid density used for plotting the integrand.
const DefaultSamples = 400

// Point is one sample of the integrand.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Sample evaluates f on n uniformly spaced points spanning [low, high],
// endpoints included. It shares nothing with Integrate.
func Sample(f Func, low, high float64, n int) ([]Point, error) {
	if n < 2 {
		return nil, fmt.Errorf("quadrature: sample count must be at least 2, got %d", n)
	}
	if !isFinite(low) || !isFinite(high) || low > high {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrInvalidInterval, low, high)
	}

	xs := floats.Span(make([]float64, n), low, high)
	points := make([]Point, n)
	for i, x := range xs {
		y, err := eval(f, x)
		if err != nil {
			return nil, err
		}
		points[i] = Point{X: x, Y: y}
	}
	return points, nil
}
