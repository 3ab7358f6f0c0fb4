package interp

import (
	"errors"
	"math"
	"testing"
)

func TestSplineReproducesKnots(t *testing.T) {
	xs := []float64{0, 0.5, 1.2, 2, 3.5}
	ys := []float64{1, -0.5, 2, 0, 1.5}
	sp, err := NewCubicSpline(xs, ys)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	for i, x := range xs {
		if got := sp.Value(x); got != ys[i] {
			t.Errorf("knot x=%g: expected %g exactly, got %.17g", x, ys[i], got)
		}
	}
}

func TestSplineExactForLinear(t *testing.T) {
	f := func(x float64) float64 { return 3*x - 1 }
	xs := []float64{0, 1, 2.5, 4}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}
	sp, err := NewCubicSpline(xs, ys)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	for _, x := range []float64{0.3, 1.7, 3.2} {
		if d := math.Abs(sp.Value(x) - f(x)); d > 1e-14 {
			t.Errorf("at x=%g: expected %.15f, got %.15f", x, f(x), sp.Value(x))
		}
	}
}

func TestSplineApproximatesSine(t *testing.T) {
	// sin has zero second derivative at 0 and pi, so the natural boundary
	// conditions are exact and the interpolation error is O(h^4).
	const n = 21
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = math.Pi * float64(i) / float64(n-1)
		ys[i] = math.Sin(xs[i])
	}
	sp, err := NewCubicSpline(xs, ys)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	for i := 0; i < n-1; i++ {
		x := 0.5 * (xs[i] + xs[i+1])
		if d := math.Abs(sp.Value(x) - math.Sin(x)); d > 1e-5 {
			t.Errorf("at x=%.4f: error %g exceeds 1e-5", x, d)
		}
	}
}

func TestSplineValidation(t *testing.T) {
	if _, err := NewCubicSpline([]float64{0, 1, 2}, []float64{0, 1}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
	if _, err := NewCubicSpline([]float64{0, 1}, []float64{0, 1}); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("expected ErrTooFewPoints, got %v", err)
	}
	if _, err := NewCubicSpline([]float64{0, 2, 1}, []float64{0, 1, 2}); !errors.Is(err, ErrUnsorted) {
		t.Errorf("expected ErrUnsorted, got %v", err)
	}
	if _, err := NewCubicSpline([]float64{0, 1, 1}, []float64{0, 1, 2}); !errors.Is(err, ErrUnsorted) {
		t.Errorf("expected ErrUnsorted for a repeated knot, got %v", err)
	}
}
