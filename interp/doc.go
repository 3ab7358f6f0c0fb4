// Package interp provides one-dimensional interpolation primitives:
// polynomial (Neville), rational (Bulirsch-Stoer), natural cubic spline,
// and radial-basis-function interpolators.
//
// All interpolators are built once from a table of (x, y) samples and
// then evaluated through Value(x). Construction validates the table;
// evaluation is pure and safe for concurrent use.
//
// Polynomial and rational interpolation also report the error estimate
// of the interpolated value, which is what makes them usable as
// extrapolation engines (extrapolating a sequence of quadrature
// estimates to zero step size works the same way).
package interp
