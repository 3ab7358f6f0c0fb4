package quad

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// engine drives a stepper to convergence under one of the three
// strategies. It is generic over the accumulated element type so the
// scalar and matrix paths share identical control flow.
type engine[T any] struct {
	q   stepper[T]
	alg algebra[T]
	set Settings

	steps     int
	proxies   []float64
	estimates []float64
}

func newEngine[T any](q stepper[T], alg algebra[T], set Settings) *engine[T] {
	return &engine[T]{
		q:         q,
		alg:       alg,
		set:       set,
		proxies:   make([]float64, 0, set.MaxSteps),
		estimates: make([]float64, 0, set.MaxSteps),
	}
}

// converged compares two successive estimates against the relative
// tolerance, falling back to an absolute comparison when the current
// estimate is exactly zero.
func (e *engine[T]) converged(cur, prev T) bool {
	d := e.alg.dist(cur, prev)
	n := e.alg.norm(cur)
	if n == 0 {
		return d <= e.set.Eps
	}
	return d <= e.set.Eps*n
}

func (e *engine[T]) fail(step int, cause error) error {
	return &IntegrationError{
		Step:     step,
		Rule:     e.set.Rule,
		Strategy: e.set.Strategy,
		Wrapped:  cause,
	}
}

func (e *engine[T]) run() (T, error) {
	var (
		zero     T
		prev     T
		prevComb T
		havePrev bool
		haveComb bool
		rb       *romberg[T]
	)
	if e.set.Strategy == Romberg {
		rb = newRomberg(e.alg, e.set.RombergDegree, e.set.MaxSteps)
	}

	for step := 1; step <= e.set.MaxSteps; step++ {
		s := e.q.next()
		e.steps = step
		if !e.alg.finite(s) {
			return zero, e.fail(step, ErrEvaluation)
		}
		e.proxies = append(e.proxies, stepProxy(step))
		e.estimates = append(e.estimates, e.alg.repr(s))

		switch e.set.Strategy {
		case Refine:
			if havePrev && step >= e.set.MinSteps && e.converged(s, prev) {
				return s, nil
			}
			prev = e.alg.clone(s)
			havePrev = true

		case Simpson:
			if havePrev {
				comb := e.alg.lin(4.0/3.0, s, -1.0/3.0, prev)
				if haveComb && step >= e.set.MinSteps && e.converged(comb, prevComb) {
					return comb, nil
				}
				prevComb = comb
				haveComb = true
			}
			prev = e.alg.clone(s)
			havePrev = true

		case Romberg:
			rb.append(stepProxy(step), s)
			if step >= e.set.MinSteps {
				val, errEst := rb.extrapolate()
				tol := e.set.Eps * e.alg.norm(val)
				if tol == 0 {
					tol = e.set.Eps
				}
				if errEst <= tol {
					return val, nil
				}
			}
		}
	}
	return zero, e.fail(e.set.MaxSteps, ErrNotConverged)
}

// validateInterval checks the bounds against what the rule's substitution
// can represent.
func validateInterval(a, b float64, rule Rule) error {
	if math.IsNaN(a) || math.IsNaN(b) {
		return fmt.Errorf("%w: NaN bound", ErrInvalidInterval)
	}
	if !(a < b) {
		return fmt.Errorf("%w: need a < b, got a=%g b=%g", ErrInvalidInterval, a, b)
	}
	switch rule {
	case Trapezoidal, Midpoint, LowerSquareRootMidpoint, UpperSquareRootMidpoint, DoubleExponential:
		if math.IsInf(a, 0) || math.IsInf(b, 0) {
			return fmt.Errorf("%w: %s requires finite bounds", ErrInvalidInterval, rule)
		}
	case InfinityMidpoint:
		if !(a*b > 0) {
			return fmt.Errorf("%w: %s requires a*b > 0, got a=%g b=%g", ErrInvalidInterval, rule, a, b)
		}
	case ExponentialMidpoint:
		if math.IsInf(a, 0) || !math.IsInf(b, 1) {
			return fmt.Errorf("%w: %s requires a finite lower bound and b = +Inf", ErrInvalidInterval, rule)
		}
	}
	return nil
}

// validatePairing rejects rules whose raw per-step error is unusable by
// the successive-refinement strategies.
func validatePairing(strategy Strategy, rule Rule) error {
	if (rule == ExponentialMidpoint || rule == DoubleExponential) && strategy != Romberg {
		return fmt.Errorf("%w: %s requires the romberg strategy, got %s", ErrInvalidPairing, rule, strategy)
	}
	return nil
}

// newStepper dispatches a rule to its refinement engine.
func newStepper[T any](a, b float64, f evalFunc[T], alg algebra[T], rule Rule) stepper[T] {
	switch rule {
	case Midpoint:
		return newMidpoint(identityMapping(a, b), f, alg)
	case InfinityMidpoint:
		return newMidpoint(inverseMapping(a, b), f, alg)
	case LowerSquareRootMidpoint:
		return newMidpoint(sqrtLowerMapping(a, b), f, alg)
	case UpperSquareRootMidpoint:
		return newMidpoint(sqrtUpperMapping(a, b), f, alg)
	case ExponentialMidpoint:
		return newMidpoint(expMapping(a), f, alg)
	case DoubleExponential:
		return newTanhSinh(a, b, f, alg)
	default:
		return newTrapezoid(a, b, f, alg)
	}
}

// Integrator computes the definite integral of a scalar function over a
// fixed interval. Instances are single-use.
type Integrator struct {
	eng  *engine[float64]
	a, b float64
	used bool
}

// New constructs an Integrator for f over [a, b]. Zero-valued Settings
// fields take defaults. Invalid (Strategy, Rule) pairings and intervals
// the rule cannot represent are rejected here, not at integration time.
func New(a, b float64, f Func, set Settings) (*Integrator, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil integrand", ErrInvalidSettings)
	}
	set = set.withDefaults()
	if err := set.validate(); err != nil {
		return nil, err
	}
	if err := validatePairing(set.Strategy, set.Rule); err != nil {
		return nil, err
	}
	if err := validateInterval(a, b, set.Rule); err != nil {
		return nil, err
	}
	alg := scalarAlgebra()
	q := newStepper(a, b, scalarEval(f), alg, set.Rule)
	return &Integrator{
		eng: newEngine(q, alg, set),
		a:   a,
		b:   b,
	}, nil
}

// Integrate runs refinement to convergence and returns the integral.
// A second call on the same instance fails with ErrSingleUse.
func (in *Integrator) Integrate() (float64, error) {
	if in.used {
		return 0, ErrSingleUse
	}
	in.used = true
	return in.eng.run()
}

// Rule reports the quadrature rule in effect.
func (in *Integrator) Rule() Rule { return in.eng.set.Rule }

// Strategy reports the convergence strategy in effect.
func (in *Integrator) Strategy() Strategy { return in.eng.set.Strategy }

// Bounds reports the integration interval.
func (in *Integrator) Bounds() (a, b float64) { return in.a, in.b }

// Steps reports the number of refinement levels performed so far.
func (in *Integrator) Steps() int { return in.eng.steps }

// History returns the refinement trace: step-size proxies and the raw
// rule estimate at each level, in refinement order.
func (in *Integrator) History() (proxies, estimates []float64) {
	p := make([]float64, len(in.eng.proxies))
	copy(p, in.eng.proxies)
	e := make([]float64, len(in.eng.estimates))
	copy(e, in.eng.estimates)
	return p, e
}

// MatrixIntegrator computes the definite integral of a matrix-valued
// function element-wise, with identical control flow to the scalar path
// and one integrand evaluation per sample point. Instances are
// single-use.
type MatrixIntegrator struct {
	eng        *engine[*mat.Dense]
	a, b       float64
	rows, cols int
	used       bool
}

// NewMatrix constructs a MatrixIntegrator for f over [a, b], performing
// the same dispatch and validation as New.
func NewMatrix(a, b float64, f MatrixFunc, set Settings) (*MatrixIntegrator, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil integrand", ErrInvalidSettings)
	}
	rows, cols := f.Dims()
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: integrand reports %dx%d", ErrDimensionMismatch, rows, cols)
	}
	set = set.withDefaults()
	if err := set.validate(); err != nil {
		return nil, err
	}
	if err := validatePairing(set.Strategy, set.Rule); err != nil {
		return nil, err
	}
	if err := validateInterval(a, b, set.Rule); err != nil {
		return nil, err
	}
	alg := denseAlgebra(rows, cols)
	q := newStepper(a, b, matrixEval(f), alg, set.Rule)
	return &MatrixIntegrator{
		eng:  newEngine(q, alg, set),
		a:    a,
		b:    b,
		rows: rows,
		cols: cols,
	}, nil
}

// Integrate runs refinement to convergence and stores the integral in
// dst, which must match the integrand's dimensions.
func (in *MatrixIntegrator) Integrate(dst *mat.Dense) error {
	if dst == nil {
		return fmt.Errorf("%w: nil result matrix", ErrDimensionMismatch)
	}
	r, c := dst.Dims()
	if r != in.rows || c != in.cols {
		return fmt.Errorf("%w: result is %dx%d, integrand is %dx%d", ErrDimensionMismatch, r, c, in.rows, in.cols)
	}
	if in.used {
		return ErrSingleUse
	}
	in.used = true
	v, err := in.eng.run()
	if err != nil {
		return err
	}
	dst.Copy(v)
	return nil
}

// Rule reports the quadrature rule in effect.
func (in *MatrixIntegrator) Rule() Rule { return in.eng.set.Rule }

// Strategy reports the convergence strategy in effect.
func (in *MatrixIntegrator) Strategy() Strategy { return in.eng.set.Strategy }

// Dims reports the integrand's matrix dimensions.
func (in *MatrixIntegrator) Dims() (rows, cols int) { return in.rows, in.cols }

// Steps reports the number of refinement levels performed so far.
func (in *MatrixIntegrator) Steps() int { return in.eng.steps }
