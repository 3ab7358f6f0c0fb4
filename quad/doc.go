// Package quad provides numerical quadrature (definite integration) for
// scalar and matrix-valued functions of a single variable.
//
// The package is built around three pieces:
//
//   - [Rule]: a composite refinement rule bound to an interval. Each rule
//     doubles (or triples) its sample count per refinement level, reusing
//     every previously evaluated point. Variable-transform rules handle
//     integrable endpoint singularities and semi-infinite intervals.
//   - [Strategy]: how successive refinement estimates are turned into a
//     converged result: plain successive refinement, Simpson combination
//     of two refinement levels, or Romberg polynomial extrapolation to
//     the zero-step-size limit.
//   - [Integrator] / [MatrixIntegrator]: the state machine driving a rule
//     to convergence against a relative tolerance, with a hard step
//     ceiling.
//
// # Example
//
//	f := func(x float64) float64 { return math.Exp(-x * x) }
//	in, err := quad.New(0, 2, f, quad.DefaultSettings())
//	if err != nil {
//		...
//	}
//	v, err := in.Integrate()
//
// # Thread safety
//
// Integrator instances are single-use and NOT safe for concurrent use.
// There is no shared state between instances, so independent integrations
// may run on separate goroutines freely.
package quad
