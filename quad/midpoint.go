package quad

import "math"

// mapping is a change of integration variable. The midpoint engine
// integrates w(t)*f(x(t)) over [lo, hi] in the transformed variable t,
// which equals the original integral when w is dx/dt.
type mapping struct {
	lo, hi float64
	x      func(t float64) float64
	w      func(t float64) float64
}

func identityMapping(a, b float64) mapping {
	return mapping{
		lo: a,
		hi: b,
		x:  func(t float64) float64 { return t },
		w:  func(t float64) float64 { return 1 },
	}
}

// inverseMapping substitutes x = 1/t, turning an interval with a*b > 0
// (possibly semi-infinite) into a finite one.
func inverseMapping(a, b float64) mapping {
	return mapping{
		lo: 1 / b,
		hi: 1 / a,
		x:  func(t float64) float64 { return 1 / t },
		w:  func(t float64) float64 { return 1 / (t * t) },
	}
}

// sqrtLowerMapping substitutes x = a + t*t, removing an inverse-square-root
// singularity at the lower endpoint.
func sqrtLowerMapping(a, b float64) mapping {
	return mapping{
		lo: 0,
		hi: math.Sqrt(b - a),
		x:  func(t float64) float64 { return a + t*t },
		w:  func(t float64) float64 { return 2 * t },
	}
}

// sqrtUpperMapping substitutes x = b - t*t, removing an inverse-square-root
// singularity at the upper endpoint.
func sqrtUpperMapping(a, b float64) mapping {
	return mapping{
		lo: 0,
		hi: math.Sqrt(b - a),
		x:  func(t float64) float64 { return b - t*t },
		w:  func(t float64) float64 { return 2 * t },
	}
}

// expMapping substitutes x = -log t for integrals over [a, +Inf) whose
// integrand decays exponentially.
func expMapping(a float64) mapping {
	return mapping{
		lo: 0,
		hi: math.Exp(-a),
		x:  func(t float64) float64 { return -math.Log(t) },
		w:  func(t float64) float64 { return 1 / t },
	}
}

// midpoint is the open composite midpoint rule over a mapping, with
// ternary refinement: each level inserts two new points per existing
// panel at its 1/3 and 2/3 positions, so previously evaluated points are
// all reused and the transformed endpoints are never touched.
type midpoint[T any] struct {
	m   mapping
	f   evalFunc[T]
	alg algebra[T]
	n   int
	s   T
}

func newMidpoint[T any](m mapping, f evalFunc[T], alg algebra[T]) *midpoint[T] {
	return &midpoint[T]{m: m, f: f, alg: alg}
}

func (q *midpoint[T]) level() int { return q.n }

func (q *midpoint[T]) next() T {
	q.n++
	rng := q.m.hi - q.m.lo
	if q.n == 1 {
		t := 0.5 * (q.m.lo + q.m.hi)
		q.s = q.alg.scale(rng*q.m.w(t), q.f(q.m.x(t)))
		return q.s
	}
	it := 1
	for j := 0; j < q.n-2; j++ {
		it *= 3
	}
	del := rng / (3 * float64(it))
	ddel := 2 * del
	t := q.m.lo + 0.5*del
	sum := q.alg.zero()
	for j := 0; j < it; j++ {
		sum = q.alg.axpy(q.m.w(t), q.f(q.m.x(t)), sum)
		t += ddel
		sum = q.alg.axpy(q.m.w(t), q.f(q.m.x(t)), sum)
		t += del
	}
	// s <- s/3 + del*sum
	q.s = q.alg.lin(1.0/3.0, q.s, del, sum)
	return q.s
}
