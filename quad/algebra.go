package quad

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// algebra is the element arithmetic a refinement engine needs, closed over
// the element shape. Instantiating it for float64 and *mat.Dense is what
// lets the scalar and matrix integration paths share one implementation
// of every rule, strategy, and extrapolation.
type algebra[T any] struct {
	zero   func() T
	clone  func(x T) T
	scale  func(alpha float64, x T) T           // alpha*x, fresh value
	axpy   func(alpha float64, x T, y T) T      // y + alpha*x, may reuse y
	lin    func(alpha float64, x T, beta float64, y T) T // alpha*x + beta*y, fresh value
	norm   func(x T) float64                    // max absolute element
	dist   func(x, y T) float64                 // max absolute difference
	finite func(x T) bool
	repr   func(x T) float64 // scalar summary for traces: the value itself, or the max-abs element
}

// evalFunc is a rule's view of the integrand: one fresh element value per
// sample point.
type evalFunc[T any] func(x float64) T

func scalarAlgebra() algebra[float64] {
	return algebra[float64]{
		zero:  func() float64 { return 0 },
		clone: func(x float64) float64 { return x },
		scale: func(alpha, x float64) float64 { return alpha * x },
		axpy:  func(alpha, x, y float64) float64 { return y + alpha*x },
		lin:   func(alpha, x, beta, y float64) float64 { return alpha*x + beta*y },
		norm:  math.Abs,
		dist:  func(x, y float64) float64 { return math.Abs(x - y) },
		finite: func(x float64) bool {
			return !math.IsNaN(x) && !math.IsInf(x, 0)
		},
		repr: func(x float64) float64 { return x },
	}
}

func denseAlgebra(rows, cols int) algebra[*mat.Dense] {
	return algebra[*mat.Dense]{
		zero: func() *mat.Dense {
			return mat.NewDense(rows, cols, nil)
		},
		clone: func(x *mat.Dense) *mat.Dense {
			y := mat.NewDense(rows, cols, nil)
			y.Copy(x)
			return y
		},
		scale: func(alpha float64, x *mat.Dense) *mat.Dense {
			y := mat.NewDense(rows, cols, nil)
			y.Scale(alpha, x)
			return y
		},
		axpy: func(alpha float64, x, y *mat.Dense) *mat.Dense {
			var t mat.Dense
			t.Scale(alpha, x)
			y.Add(y, &t)
			return y
		},
		lin: func(alpha float64, x *mat.Dense, beta float64, y *mat.Dense) *mat.Dense {
			out := mat.NewDense(rows, cols, nil)
			out.Scale(alpha, x)
			var t mat.Dense
			t.Scale(beta, y)
			out.Add(out, &t)
			return out
		},
		norm: func(x *mat.Dense) float64 {
			max := 0.0
			for _, v := range x.RawMatrix().Data {
				if a := math.Abs(v); a > max {
					max = a
				}
			}
			return max
		},
		dist: func(x, y *mat.Dense) float64 {
			xd := x.RawMatrix().Data
			yd := y.RawMatrix().Data
			max := 0.0
			for i := range xd {
				if a := math.Abs(xd[i] - yd[i]); a > max {
					max = a
				}
			}
			return max
		},
		finite: func(x *mat.Dense) bool {
			for _, v := range x.RawMatrix().Data {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return false
				}
			}
			return true
		},
		repr: func(x *mat.Dense) float64 {
			max := 0.0
			for _, v := range x.RawMatrix().Data {
				if a := math.Abs(v); a > max {
					max = a
				}
			}
			return max
		},
	}
}

func scalarEval(f Func) evalFunc[float64] {
	return func(x float64) float64 { return f(x) }
}

func matrixEval(f MatrixFunc) evalFunc[*mat.Dense] {
	rows, cols := f.Dims()
	return func(x float64) *mat.Dense {
		dst := mat.NewDense(rows, cols, nil)
		f.Eval(x, dst)
		return dst
	}
}
