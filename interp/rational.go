package interp

import (
	"fmt"
	"math"
)

// Rational interpolates with a diagonal rational function through the
// sample points (Bulirsch-Stoer recurrence). Rational interpolants can
// follow functions with nearby poles that defeat polynomials of the same
// order.
type Rational struct {
	xs, ys []float64
}

// NewRational builds a rational interpolator over the given table.
func NewRational(xs, ys []float64) (*Rational, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2, got %d", ErrTooFewPoints, len(xs))
	}
	for i := 0; i < len(xs); i++ {
		for j := i + 1; j < len(xs); j++ {
			if xs[i] == xs[j] {
				return nil, fmt.Errorf("%w: x=%g", ErrDuplicateAbscissa, xs[i])
			}
		}
	}
	r := &Rational{
		xs: make([]float64, len(xs)),
		ys: make([]float64, len(ys)),
	}
	copy(r.xs, xs)
	copy(r.ys, ys)
	return r, nil
}

// tiny nudges the recurrence off exact zeros so that a sample value of
// zero does not read as a pole.
const tiny = 1e-25

// Value evaluates the rational interpolant at x. The result is NaN when
// the interpolant itself has a pole at x.
func (r *Rational) Value(x float64) float64 {
	y, _ := r.ValueWithError(x)
	return y
}

// ValueWithError evaluates the rational interpolant at x and returns the
// magnitude of the final correction as an error estimate. A pole of the
// interpolant at x yields (NaN, Inf).
func (r *Rational) ValueWithError(x float64) (float64, float64) {
	n := len(r.xs)
	c := make([]float64, n)
	d := make([]float64, n)

	ns := 0
	hh := math.Abs(x - r.xs[0])
	for i := 0; i < n; i++ {
		h := math.Abs(x - r.xs[i])
		if h == 0 {
			return r.ys[i], 0
		}
		if h < hh {
			ns = i
			hh = h
		}
		c[i] = r.ys[i]
		d[i] = r.ys[i] + tiny
	}
	y := r.ys[ns]
	ns--

	dy := 0.0
	for m := 1; m < n; m++ {
		for i := 0; i < n-m; i++ {
			w := c[i+1] - d[i]
			h := r.xs[i+m] - x
			t := (r.xs[i] - x) * d[i] / h
			dd := t - c[i+1]
			if dd == 0 {
				// Pole of the interpolant at x.
				return math.NaN(), math.Inf(1)
			}
			dd = w / dd
			d[i] = c[i+1] * dd
			c[i] = t * dd
		}
		if 2*(ns+1) < n-m {
			dy = c[ns+1]
		} else {
			dy = d[ns]
			ns--
		}
		y += dy
	}
	return y, math.Abs(dy)
}
