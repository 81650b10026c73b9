// Package integrands is a catalog of named integrands shared by the CLI, the
// tool provider and tests.
package integrands

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/GriffinCanCode/quadrature/internal/quadrature"
)

// ErrDivisionByZero is returned by integrands with a pole at a sample point.
var ErrDivisionByZero = errors.New("division by zero")

// ErrUnknown indicates a name with no catalog entry.
var ErrUnknown = errors.New("unknown integrand")

// Integrand is a named function with an optional closed-form antiderivative.
type Integrand struct {
	Name        string          `json:"name" yaml:"name"`
	Expr        string          `json:"expr" yaml:"expr"`
	Description string          `json:"description" yaml:"description"`
	Func        quadrature.Func `json:"-" yaml:"-"`
	// Poles are the points where the integrand is unbounded. The
	// antiderivative is only valid on intervals that exclude all of them.
	Poles []float64 `json:"poles,omitempty" yaml:"poles,omitempty"`
	// Antiderivative is nil when no closed form applies.
	Antiderivative func(float64) float64 `json:"-" yaml:"-"`
}

// Exact returns F(high) - F(low) when an antiderivative is known and the
// closed interval contains no pole.
func (in Integrand) Exact(low, high float64) (float64, bool) {
	if in.Antiderivative == nil || in.Spans(low, high) {
		return 0, false
	}
	return in.Antiderivative(high) - in.Antiderivative(low), true
}

// Spans reports whether a pole lies in [min(low, high), max(low, high)].
func (in Integrand) Spans(low, high float64) bool {
	if low > high {
		low, high = high, low
	}
	for _, p := range in.Poles {
		if p >= low && p <= high {
			return true
		}
	}
	return false
}

var catalog = map[string]Integrand{
	"linear": {
		Name:           "linear",
		Expr:           "x",
		Description:    "Identity; Simpson's rule is exact",
		Func:           quadrature.Pure(func(x float64) float64 { return x }),
		Antiderivative: func(x float64) float64 { return x * x / 2 },
	},
	"square": {
		Name:           "square",
		Expr:           "x^2",
		Description:    "Parabola; Simpson's rule is exact",
		Func:           quadrature.Pure(func(x float64) float64 { return x * x }),
		Antiderivative: func(x float64) float64 { return x * x * x / 3 },
	},
	"cube": {
		Name:           "cube",
		Expr:           "x^3",
		Description:    "Cubic; Simpson's rule is exact",
		Func:           quadrature.Pure(func(x float64) float64 { return x * x * x }),
		Antiderivative: func(x float64) float64 { return x * x * x * x / 4 },
	},
	"oscillatory": {
		Name:           "oscillatory",
		Expr:           "(100/x^2)*sin(10/x)",
		Description:    "Oscillates rapidly near zero; the classic adaptive quadrature benchmark on [1, 3]",
		Func:           oscillatory,
		Poles:          []float64{0},
		Antiderivative: func(x float64) float64 { return 10 * math.Cos(10/x) },
	},
	"gaussian": {
		Name:           "gaussian",
		Expr:           "exp(-x^2)",
		Description:    "Unnormalised Gaussian bell",
		Func:           quadrature.Pure(func(x float64) float64 { return math.Exp(-x * x) }),
		Antiderivative: func(x float64) float64 { return math.Sqrt(math.Pi) / 2 * math.Erf(x) },
	},
	"reciprocal": {
		Name:        "reciprocal",
		Expr:        "1/x",
		Description: "Pole at zero; fails when zero is sampled",
		Func:        reciprocal,
		Poles:       []float64{0},
		Antiderivative: func(x float64) float64 {
			return math.Log(math.Abs(x))
		},
	},
	"cusp": {
		Name:        "cusp",
		Expr:        "1/|x-1/3|",
		Description: "Non-integrable spike at 1/3; refinement never converges and trips the depth guard",
		Func:        quadrature.Pure(func(x float64) float64 { return 1 / math.Abs(x-1.0/3.0) }),
		Poles:       []float64{1.0 / 3.0},
	},
}

func oscillatory(x float64) (float64, error) {
	if x == 0 {
		return 0, ErrDivisionByZero
	}
	return 100 / (x * x) * math.Sin(10/x), nil
}

func reciprocal(x float64) (float64, error) {
	if x == 0 {
		return 0, ErrDivisionByZero
	}
	return 1 / x, nil
}

// Lookup returns the integrand registered under name.
func Lookup(name string) (Integrand, error) {
	in, ok := catalog[name]
	if !ok {
		return Integrand{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknown, name, Names())
	}
	return in, nil
}

// Names returns all catalog names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every catalog entry sorted by name.
func All() []Integrand {
	names := Names()
	all := make([]Integrand, len(names))
	for i, name := range names {
		all[i] = catalog[name]
	}
	return all
}
