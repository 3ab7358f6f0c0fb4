package quad

// stepper is one quadrature rule bound to an interval and an integrand.
// next must be called exactly once per refinement level, in sequence;
// each call reuses every previously evaluated point and only evaluates
// the new ones.
type stepper[T any] interface {
	next() T
	level() int
}

// trapezoid is the closed composite trapezoidal rule with binary
// refinement. Level 1 evaluates the endpoints; level k > 1 evaluates the
// 2^(k-2) midpoints of the previous level's panels.
type trapezoid[T any] struct {
	a, b float64
	f    evalFunc[T]
	alg  algebra[T]
	n    int
	s    T
}

func newTrapezoid[T any](a, b float64, f evalFunc[T], alg algebra[T]) *trapezoid[T] {
	return &trapezoid[T]{a: a, b: b, f: f, alg: alg}
}

func (q *trapezoid[T]) level() int { return q.n }

func (q *trapezoid[T]) next() T {
	q.n++
	if q.n == 1 {
		sum := q.alg.clone(q.f(q.a))
		sum = q.alg.axpy(1, q.f(q.b), sum)
		q.s = q.alg.scale(0.5*(q.b-q.a), sum)
		return q.s
	}
	it := 1 << (q.n - 2)
	del := (q.b - q.a) / float64(it)
	x := q.a + 0.5*del
	sum := q.alg.zero()
	for j := 0; j < it; j++ {
		sum = q.alg.axpy(1, q.f(x), sum)
		x += del
	}
	// s <- (s + del*sum) / 2
	q.s = q.alg.lin(0.5, q.s, 0.5*del, sum)
	return q.s
}
