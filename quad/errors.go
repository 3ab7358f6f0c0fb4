package quad

import (
	"errors"
	"fmt"
)

// Domain errors for integration operations.
var (
	// ErrNotConverged indicates the step ceiling was reached before the
	// tolerance was met. Expected for genuinely divergent integrands or
	// singularities not matched by the chosen rule.
	ErrNotConverged = errors.New("quad: integral did not converge within the step limit")

	// ErrEvaluation indicates the integrand produced a NaN or Inf value.
	ErrEvaluation = errors.New("quad: integrand produced a non-finite value")

	// ErrInvalidPairing indicates a (Strategy, Rule) combination that is
	// not mathematically valid, e.g. ExponentialMidpoint outside Romberg.
	ErrInvalidPairing = errors.New("quad: rule is not valid with this strategy")

	// ErrInvalidInterval indicates degenerate or out-of-domain bounds for
	// the chosen rule.
	ErrInvalidInterval = errors.New("quad: invalid integration interval")

	// ErrInvalidSettings indicates out-of-range tuning parameters.
	ErrInvalidSettings = errors.New("quad: invalid settings")

	// ErrDimensionMismatch indicates a result matrix whose shape does not
	// match the integrand's.
	ErrDimensionMismatch = errors.New("quad: matrix dimension mismatch")

	// ErrSingleUse indicates a second Integrate call on a consumed
	// integrator.
	ErrSingleUse = errors.New("quad: integrator is single-use")
)

// IntegrationError wraps a runtime integration failure with the step at
// which it occurred and the rule/strategy in effect.
type IntegrationError struct {
	Step     int
	Rule     Rule
	Strategy Strategy
	Wrapped  error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("%v (%s/%s, step %d)", e.Wrapped, e.Strategy, e.Rule, e.Step)
}

func (e *IntegrationError) Unwrap() error {
	return e.Wrapped
}
