package interp

import (
	"fmt"
	"sort"
)

// CubicSpline interpolates with a natural cubic spline: piecewise cubics
// with continuous first and second derivatives and zero curvature at the
// end knots. Abscissae must be strictly increasing.
type CubicSpline struct {
	xs, ys []float64
	y2s    []float64
}

// NewCubicSpline builds a natural cubic spline over the given table.
func NewCubicSpline(xs, ys []float64) (*CubicSpline, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) < 3 {
		return nil, fmt.Errorf("%w: need at least 3, got %d", ErrTooFewPoints, len(xs))
	}
	for i := 0; i < len(xs)-1; i++ {
		if xs[i] >= xs[i+1] {
			return nil, fmt.Errorf("%w: x[%d]=%g, x[%d]=%g", ErrUnsorted, i, xs[i], i+1, xs[i+1])
		}
	}
	sp := &CubicSpline{
		xs:  make([]float64, len(xs)),
		ys:  make([]float64, len(ys)),
		y2s: make([]float64, len(xs)),
	}
	copy(sp.xs, xs)
	copy(sp.ys, ys)
	sp.solveSecondDerivatives()
	return sp, nil
}

// solveSecondDerivatives fills y2s by the tridiagonal sweep for natural
// boundary conditions.
func (sp *CubicSpline) solveSecondDerivatives() {
	n := len(sp.xs)
	u := make([]float64, n-1)

	sp.y2s[0] = 0
	u[0] = 0
	for i := 1; i < n-1; i++ {
		sig := (sp.xs[i] - sp.xs[i-1]) / (sp.xs[i+1] - sp.xs[i-1])
		p := sig*sp.y2s[i-1] + 2
		sp.y2s[i] = (sig - 1) / p
		du := (sp.ys[i+1]-sp.ys[i])/(sp.xs[i+1]-sp.xs[i]) -
			(sp.ys[i]-sp.ys[i-1])/(sp.xs[i]-sp.xs[i-1])
		u[i] = (6*du/(sp.xs[i+1]-sp.xs[i-1]) - sig*u[i-1]) / p
	}
	sp.y2s[n-1] = 0
	for i := n - 2; i >= 0; i-- {
		sp.y2s[i] = sp.y2s[i]*sp.y2s[i+1] + u[i]
	}
}

// Value evaluates the spline at x. Outside the knot range the boundary
// cubic is extended.
func (sp *CubicSpline) Value(x float64) float64 {
	n := len(sp.xs)
	hi := sort.SearchFloat64s(sp.xs, x)
	if hi <= 0 {
		hi = 1
	}
	if hi >= n {
		hi = n - 1
	}
	lo := hi - 1

	h := sp.xs[hi] - sp.xs[lo]
	a := (sp.xs[hi] - x) / h
	b := (x - sp.xs[lo]) / h
	return a*sp.ys[lo] + b*sp.ys[hi] +
		((a*a*a-a)*sp.y2s[lo]+(b*b*b-b)*sp.y2s[hi])*(h*h)/6
}
