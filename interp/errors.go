package interp

import "errors"

// Domain errors for interpolator construction.
var (
	// ErrLengthMismatch indicates xs and ys of different lengths.
	ErrLengthMismatch = errors.New("interp: xs and ys have different lengths")

	// ErrTooFewPoints indicates a table too small for the interpolator.
	ErrTooFewPoints = errors.New("interp: too few sample points")

	// ErrDuplicateAbscissa indicates repeated x values in the table.
	ErrDuplicateAbscissa = errors.New("interp: duplicate abscissa")

	// ErrUnsorted indicates abscissae not in strictly increasing order.
	ErrUnsorted = errors.New("interp: abscissae not strictly increasing")

	// ErrSingular indicates an interpolation system that could not be
	// solved (degenerate RBF placement).
	ErrSingular = errors.New("interp: interpolation system is singular")
)
