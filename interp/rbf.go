package interp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Kernel is a radial basis function: the contribution of a centre at
// distance r.
type Kernel func(r float64) float64

// GaussianKernel returns exp(-(r/scale)^2).
func GaussianKernel(scale float64) Kernel {
	return func(r float64) float64 {
		u := r / scale
		return math.Exp(-u * u)
	}
}

// MultiquadricKernel returns sqrt(r^2 + scale^2).
func MultiquadricKernel(scale float64) Kernel {
	return func(r float64) float64 {
		return math.Sqrt(r*r + scale*scale)
	}
}

// ThinPlateKernel returns r^2 * log(r), with the removable singularity at
// r = 0 evaluated as 0.
func ThinPlateKernel() Kernel {
	return func(r float64) float64 {
		if r == 0 {
			return 0
		}
		return r * r * math.Log(r)
	}
}

// RBF interpolates as a weighted sum of radial basis functions centred on
// the sample abscissae. Weights are solved once at construction from the
// dense collocation system.
type RBF struct {
	centres []float64
	weights []float64
	kernel  Kernel
}

// NewRBF builds an RBF interpolator over the given table.
func NewRBF(xs, ys []float64, kernel Kernel) (*RBF, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2, got %d", ErrTooFewPoints, len(xs))
	}
	for i := 0; i < len(xs); i++ {
		for j := i + 1; j < len(xs); j++ {
			if xs[i] == xs[j] {
				return nil, fmt.Errorf("%w: x=%g", ErrDuplicateAbscissa, xs[i])
			}
		}
	}

	n := len(xs)
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, kernel(math.Abs(xs[i]-xs[j])))
		}
	}
	rhs := mat.NewVecDense(n, nil)
	for i, y := range ys {
		rhs.SetVec(i, y)
	}

	var lu mat.LU
	lu.Factorize(a)
	var w mat.VecDense
	if err := lu.SolveVecTo(&w, false, rhs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	r := &RBF{
		centres: make([]float64, n),
		weights: make([]float64, n),
		kernel:  kernel,
	}
	copy(r.centres, xs)
	for i := 0; i < n; i++ {
		r.weights[i] = w.AtVec(i)
	}
	return r, nil
}

// Value evaluates the RBF expansion at x.
func (r *RBF) Value(x float64) float64 {
	sum := 0.0
	for i, c := range r.centres {
		sum += r.weights[i] * r.kernel(math.Abs(x-c))
	}
	return sum
}
