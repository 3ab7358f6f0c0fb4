package quad

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Rule identifies a quadrature refinement rule, including the variable
// substitution applied before sampling.
type Rule int

const (
	// Trapezoidal is the closed composite trapezoidal rule. Exact for
	// polynomials of degree <= 1 at every refinement level.
	Trapezoidal Rule = iota

	// Midpoint is the open composite midpoint rule with ternary
	// refinement. Endpoints are never evaluated, so integrable endpoint
	// singularities do not poison the estimate outright.
	Midpoint

	// InfinityMidpoint applies the substitution x = 1/t before midpoint
	// refinement, mapping a semi-infinite (or large same-sign) interval
	// onto a finite one. Requires a*b > 0.
	InfinityMidpoint

	// LowerSquareRootMidpoint applies x = a + t*t, removing an
	// inverse-square-root singularity at the lower endpoint.
	LowerSquareRootMidpoint

	// UpperSquareRootMidpoint applies x = b - t*t, removing an
	// inverse-square-root singularity at the upper endpoint.
	UpperSquareRootMidpoint

	// ExponentialMidpoint applies x = -log t for integrals over [a, +Inf)
	// with exponentially decaying integrands. Valid only with the Romberg
	// strategy.
	ExponentialMidpoint

	// DoubleExponential is the tanh-sinh rule, robust to endpoint
	// singularities and unbounded derivatives. Valid only with the
	// Romberg strategy.
	DoubleExponential
)

func (r Rule) String() string {
	switch r {
	case Trapezoidal:
		return "trapezoidal"
	case Midpoint:
		return "midpoint"
	case InfinityMidpoint:
		return "infinity_midpoint"
	case LowerSquareRootMidpoint:
		return "lower_sqrt_midpoint"
	case UpperSquareRootMidpoint:
		return "upper_sqrt_midpoint"
	case ExponentialMidpoint:
		return "exponential_midpoint"
	case DoubleExponential:
		return "double_exponential"
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// ParseRule maps a rule name (as produced by String) back to its Rule.
func ParseRule(name string) (Rule, error) {
	for r := Trapezoidal; r <= DoubleExponential; r++ {
		if r.String() == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("quad: unknown rule %q", name)
}

// Strategy identifies how refinement estimates are accelerated and
// checked for convergence.
type Strategy int

const (
	// Romberg extrapolates the refinement history polynomially to the
	// zero-step-size limit. The default and the most broadly applicable
	// strategy.
	Romberg Strategy = iota

	// Refine accepts the rule's own estimate once two successive
	// refinements agree to within the tolerance.
	Refine

	// Simpson combines two successive trapezoid-family levels with
	// weights 4/3 and -1/3, cancelling the leading error term.
	Simpson
)

func (s Strategy) String() string {
	switch s {
	case Romberg:
		return "romberg"
	case Refine:
		return "refine"
	case Simpson:
		return "simpson"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy maps a strategy name back to its Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for s := Romberg; s <= Simpson; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("quad: unknown strategy %q", name)
}

// Func is a scalar integrand. A non-finite return value (NaN or Inf)
// surfaces from Integrate as an evaluation failure.
type Func func(x float64) float64

// MatrixFunc is a matrix-valued integrand. Eval fills dst, a rows x cols
// matrix owned by the caller, with the function value at x. One Eval call
// per sample point yields the whole matrix, so the matrix integration
// path costs the same number of function evaluations as the scalar one.
type MatrixFunc interface {
	Dims() (rows, cols int)
	Eval(x float64, dst *mat.Dense)
}

// Default tuning constants. MinSteps and RombergDegree follow the
// conventional choices for trapezoid-family Romberg integration; they are
// Settings fields rather than fixed invariants.
const (
	DefaultEps           = 1e-8
	DefaultMaxSteps      = 20
	DefaultMinSteps      = 5
	DefaultRombergDegree = 5
)

// Settings configures an integration. The zero value selects the
// defaults: Romberg over the trapezoidal rule, Eps 1e-8, at most 20
// refinement steps.
type Settings struct {
	// Strategy selects the convergence-acceleration scheme.
	Strategy Strategy

	// Rule selects the quadrature rule.
	Rule Rule

	// Eps is the relative convergence tolerance. Compared absolutely
	// when the estimate is exactly zero.
	Eps float64

	// MaxSteps caps the number of refinement levels. Exceeding it is a
	// non-recoverable integration failure for that call.
	MaxSteps int

	// MinSteps is the minimum number of refinement levels before a
	// convergence check may succeed, guarding against accidental early
	// agreement.
	MinSteps int

	// RombergDegree is the polynomial degree used by the Romberg
	// extrapolation, capped to the available history.
	RombergDegree int
}

// DefaultSettings returns the default integration settings.
func DefaultSettings() Settings {
	return Settings{
		Strategy:      Romberg,
		Rule:          Trapezoidal,
		Eps:           DefaultEps,
		MaxSteps:      DefaultMaxSteps,
		MinSteps:      DefaultMinSteps,
		RombergDegree: DefaultRombergDegree,
	}
}

func (s Settings) withDefaults() Settings {
	if s.Eps == 0 {
		s.Eps = DefaultEps
	}
	if s.MaxSteps == 0 {
		s.MaxSteps = DefaultMaxSteps
	}
	if s.MinSteps == 0 {
		s.MinSteps = DefaultMinSteps
	}
	if s.RombergDegree == 0 {
		s.RombergDegree = DefaultRombergDegree
	}
	return s
}

func (s Settings) validate() error {
	if s.Rule < Trapezoidal || s.Rule > DoubleExponential {
		return fmt.Errorf("%w: unknown rule %d", ErrInvalidSettings, int(s.Rule))
	}
	if s.Strategy < Romberg || s.Strategy > Simpson {
		return fmt.Errorf("%w: unknown strategy %d", ErrInvalidSettings, int(s.Strategy))
	}
	if s.Eps <= 0 {
		return fmt.Errorf("%w: eps must be positive, got %g", ErrInvalidSettings, s.Eps)
	}
	if s.MinSteps < 2 {
		return fmt.Errorf("%w: min steps must be at least 2, got %d", ErrInvalidSettings, s.MinSteps)
	}
	if s.MaxSteps < s.MinSteps {
		return fmt.Errorf("%w: max steps %d below min steps %d", ErrInvalidSettings, s.MaxSteps, s.MinSteps)
	}
	if s.RombergDegree < 1 {
		return fmt.Errorf("%w: romberg degree must be at least 1, got %d", ErrInvalidSettings, s.RombergDegree)
	}
	return nil
}
