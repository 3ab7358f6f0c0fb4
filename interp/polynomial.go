package interp

import (
	"fmt"
	"math"
)

// Polynomial interpolates with the unique polynomial of degree n-1
// through n sample points, evaluated by Neville's recurrence. The
// abscissae may appear in any order but must be distinct.
type Polynomial struct {
	xs, ys []float64
}

// NewPolynomial builds a polynomial interpolator over the given table.
func NewPolynomial(xs, ys []float64) (*Polynomial, error) {
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
	p := &Polynomial{
		xs: make([]float64, len(xs)),
		ys: make([]float64, len(ys)),
	}
	copy(p.xs, xs)
	copy(p.ys, ys)
	return p, nil
}

// Value evaluates the interpolating polynomial at x.
func (p *Polynomial) Value(x float64) float64 {
	y, _ := p.ValueWithError(x)
	return y
}

// ValueWithError evaluates the interpolating polynomial at x and returns
// the magnitude of the final Neville correction as an error estimate.
// Outside the sample range this is an extrapolation and the estimate
// reflects how well the tableau is converging.
func (p *Polynomial) ValueWithError(x float64) (float64, float64) {
	n := len(p.xs)
	c := make([]float64, n)
	d := make([]float64, n)
	copy(c, p.ys)
	copy(d, p.ys)

	ns := 0
	dif := math.Abs(x - p.xs[0])
	for i := 1; i < n; i++ {
		if dift := math.Abs(x - p.xs[i]); dift < dif {
			ns = i
			dif = dift
		}
	}
	y := p.ys[ns]
	ns--

	dy := 0.0
	for m := 1; m < n; m++ {
		for i := 0; i < n-m; i++ {
			ho := p.xs[i] - x
			hp := p.xs[i+m] - x
			w := (c[i+1] - d[i]) / (ho - hp)
			d[i] = hp * w
			c[i] = ho * w
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
