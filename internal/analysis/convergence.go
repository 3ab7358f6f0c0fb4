package analysis

import "math"

// ConvergenceOrder estimates the observed order of convergence of a
// refinement trace. With the step size halving each level, successive
// estimate differences shrink by 2^p for a rule of order p, so
//
//	p ≈ log2(|s_k - s_{k-1}| / |s_{k+1} - s_k|)
//
// averaged over the usable levels. Returns false when the trace is too
// short or the differences have already hit the noise floor.
func ConvergenceOrder(estimates []float64) (float64, bool) {
	if len(estimates) < 4 {
		return 0, false
	}

	diffs := make([]float64, 0, len(estimates)-1)
	for i := 1; i < len(estimates); i++ {
		diffs = append(diffs, math.Abs(estimates[i]-estimates[i-1]))
	}

	sum := 0.0
	n := 0
	for i := 1; i < len(diffs); i++ {
		if diffs[i] == 0 || diffs[i-1] == 0 {
			continue
		}
		sum += math.Log2(diffs[i-1] / diffs[i])
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// ErrorTrace returns |s_k - ref| per level, the per-level true error
// against a reference value.
func ErrorTrace(estimates []float64, ref float64) []float64 {
	out := make([]float64, len(estimates))
	for i, s := range estimates {
		out[i] = math.Abs(s - ref)
	}
	return out
}

// EvaluationCount returns the cumulative integrand evaluations after k
// refinement levels of a binary-doubling rule (trapezoid family):
// 2 endpoints plus 2^(k-1) - 1 interior points.
func EvaluationCount(levels int) int {
	if levels <= 0 {
		return 0
	}
	if levels == 1 {
		return 2
	}
	return 1<<(levels-1) + 1
}
