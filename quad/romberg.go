package quad

import "math"

// romberg holds the refinement history of a rule as (step-size proxy,
// estimate) pairs and extrapolates it polynomially to zero step size.
//
// The proxy is 0.25^(k-1) at level k, reflecting the quartic decay of the
// trapezoid/midpoint error once refinement is underway; the extrapolant
// is evaluated with a Neville tableau over the most recent points.
type romberg[T any] struct {
	alg    algebra[T]
	degree int
	hs     []float64
	ss     []T
}

func newRomberg[T any](alg algebra[T], degree, capacity int) *romberg[T] {
	return &romberg[T]{
		alg:    alg,
		degree: degree,
		hs:     make([]float64, 0, capacity),
		ss:     make([]T, 0, capacity),
	}
}

// stepProxy is the extrapolation abscissa for refinement level k (1-based).
func stepProxy(k int) float64 {
	return math.Pow(0.25, float64(k-1))
}

func (r *romberg[T]) append(h float64, s T) {
	r.hs = append(r.hs, h)
	r.ss = append(r.ss, r.alg.clone(s))
}

func (r *romberg[T]) points() int { return len(r.hs) }

// extrapolate evaluates the polynomial through the most recent degree+1
// history points at h = 0 via Neville's recurrence, returning the
// extrapolated value and the magnitude of the last correction term as the
// error estimate.
func (r *romberg[T]) extrapolate() (T, float64) {
	n := r.degree + 1
	if n > len(r.hs) {
		n = len(r.hs)
	}
	start := len(r.hs) - n
	hs := r.hs[start:]
	ss := r.ss[start:]

	c := make([]T, n)
	d := make([]T, n)
	for i := 0; i < n; i++ {
		c[i] = r.alg.clone(ss[i])
		d[i] = r.alg.clone(ss[i])
	}

	// The proxies decrease toward zero, so the nearest point is the last.
	ns := n - 1
	y := r.alg.clone(ss[ns])
	ns--

	errEst := 0.0
	for m := 1; m < n; m++ {
		for i := 0; i < n-m; i++ {
			ho := hs[i]
			hp := hs[i+m]
			den := ho - hp
			w := r.alg.lin(1/den, c[i+1], -1/den, d[i])
			d[i] = r.alg.scale(hp, w)
			c[i] = r.alg.scale(ho, w)
		}
		var dy T
		if 2*(ns+1) < n-m {
			dy = c[ns+1]
		} else {
			dy = d[ns]
			ns--
		}
		y = r.alg.axpy(1, dy, y)
		errEst = r.alg.norm(dy)
	}
	return y, errEst
}
