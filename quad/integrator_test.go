package quad

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func phi(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

func TestTrapezoidalExactForLinear(t *testing.T) {
	f := func(x float64) float64 { return 3*x - 7 }

	in, err := New(-2, 5, f, Settings{Strategy: Refine, Rule: Trapezoidal})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	v, err := in.Integrate()
	if err != nil {
		t.Fatalf("integration failed: %v", err)
	}

	want := 3.0/2.0*(25-4) - 7*(5-(-2))
	if math.Abs(v-want) > 1e-10 {
		t.Errorf("expected %.12f, got %.12f", want, v)
	}
}

func TestSimpsonExactForCubic(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - 2*x*x + x }

	in, err := New(0, 2, f, Settings{Strategy: Simpson, Rule: Trapezoidal})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	v, err := in.Integrate()
	if err != nil {
		t.Fatalf("integration failed: %v", err)
	}

	want := 16.0/4 - 2.0*8/3 + 4.0/2
	if math.Abs(v-want) > 1e-10 {
		t.Errorf("expected %.12f, got %.12f", want, v)
	}
}

func TestExponentialAllStrategies(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	strategies := []Strategy{Romberg, Refine, Simpson}
	rules := []Rule{Trapezoidal, Midpoint}

	for trial := 0; trial < 20; trial++ {
		a := -2 + 3*rng.Float64()
		b := a + 0.5 + 2*rng.Float64()
		lambda := -1 + 2*rng.Float64()

		f := func(x float64) float64 { return math.Exp(lambda * x) }
		want := (math.Exp(lambda*b) - math.Exp(lambda*a)) / lambda

		for _, strat := range strategies {
			for _, rule := range rules {
				in, err := New(a, b, f, Settings{Strategy: strat, Rule: rule})
				if err != nil {
					t.Fatalf("%s/%s: construction failed: %v", strat, rule, err)
				}
				v, err := in.Integrate()
				if err != nil {
					t.Fatalf("%s/%s: integration failed for a=%g b=%g lambda=%g: %v",
						strat, rule, a, b, lambda, err)
				}
				if math.Abs(v-want) > 1e-6*math.Abs(want) {
					t.Errorf("%s/%s: expected %.10f, got %.10f (a=%g b=%g lambda=%g)",
						strat, rule, want, v, a, b, lambda)
				}
			}
		}
	}
}

func TestGaussianCDF(t *testing.T) {
	f := func(x float64) float64 {
		return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
	}

	cases := []struct {
		a, b float64
	}{
		{-1, 1},
		{0, 2.5},
		{-3, 0.5},
	}

	for _, tc := range cases {
		want := phi(tc.b) - phi(tc.a)
		for _, strat := range []Strategy{Romberg, Refine, Simpson} {
			in, err := New(tc.a, tc.b, f, Settings{Strategy: strat})
			if err != nil {
				t.Fatalf("construction failed: %v", err)
			}
			v, err := in.Integrate()
			if err != nil {
				t.Fatalf("%s: integration failed on [%g, %g]: %v", strat, tc.a, tc.b, err)
			}
			if math.Abs(v-want) > 1e-7 {
				t.Errorf("%s: expected %.10f, got %.10f on [%g, %g]", strat, want, v, tc.a, tc.b)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	f := func(x float64) float64 { return math.Sin(x) * math.Exp(-x/3) }

	run := func() float64 {
		in, err := New(0, 4, f, DefaultSettings())
		if err != nil {
			t.Fatalf("construction failed: %v", err)
		}
		v, err := in.Integrate()
		if err != nil {
			t.Fatalf("integration failed: %v", err)
		}
		return v
	}

	v1 := run()
	v2 := run()
	if v1 != v2 {
		t.Errorf("identical inputs disagreed: %.17g vs %.17g", v1, v2)
	}
}

func TestSingleUse(t *testing.T) {
	in, err := New(0, 1, func(x float64) float64 { return x }, DefaultSettings())
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	if _, err := in.Integrate(); err != nil {
		t.Fatalf("first integrate failed: %v", err)
	}
	if _, err := in.Integrate(); !errors.Is(err, ErrSingleUse) {
		t.Errorf("expected ErrSingleUse, got %v", err)
	}
}

func TestLogSingularFailsWithClosedRules(t *testing.T) {
	f := func(x float64) float64 { return math.Log(x) * math.Log(1-x) }

	// The trapezoidal rule evaluates the singular endpoints directly.
	in, err := New(0, 1, f, Settings{Rule: Trapezoidal})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	if _, err := in.Integrate(); !errors.Is(err, ErrEvaluation) {
		t.Errorf("trapezoidal: expected ErrEvaluation, got %v", err)
	}

	// The midpoint rule avoids the endpoints but converges too slowly to
	// resolve the singularity inside any reasonable step budget.
	in, err = New(0, 1, f, Settings{Rule: Midpoint, MaxSteps: 12})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	if _, err := in.Integrate(); !errors.Is(err, ErrNotConverged) {
		t.Errorf("midpoint: expected ErrNotConverged, got %v", err)
	}
}

func TestLogSingularDoubleExponential(t *testing.T) {
	f := func(x float64) float64 { return math.Log(x) * math.Log(1-x) }
	want := 2 - math.Pi*math.Pi/6

	in, err := New(0, 1, f, Settings{Rule: DoubleExponential})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	v, err := in.Integrate()
	if err != nil {
		t.Fatalf("integration failed: %v", err)
	}
	if math.Abs(v-want) > 1e-5 {
		t.Errorf("expected %.10f, got %.10f", want, v)
	}
}

func TestLogSingularSquareRootRules(t *testing.T) {
	f := func(x float64) float64 { return math.Log(x) * math.Log(1-x) }
	want := 2 - math.Pi*math.Pi/6

	for _, rule := range []Rule{LowerSquareRootMidpoint, UpperSquareRootMidpoint} {
		in, err := New(0, 1, f, Settings{Rule: rule})
		if err != nil {
			t.Fatalf("%s: construction failed: %v", rule, err)
		}
		v, err := in.Integrate()
		if err != nil {
			t.Fatalf("%s: integration failed: %v", rule, err)
		}
		if math.Abs(v-want) > 1e-5 {
			t.Errorf("%s: expected %.8f, got %.8f", rule, want, v)
		}
	}
}

func TestInverseSquareRootSingularities(t *testing.T) {
	// 1/sqrt(x) over [0, 1]: the lower substitution x = t*t turns the
	// integrand into the constant 2.
	in, err := New(0, 1, func(x float64) float64 { return 1 / math.Sqrt(x) },
		Settings{Rule: LowerSquareRootMidpoint})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	v, err := in.Integrate()
	if err != nil {
		t.Fatalf("lower: integration failed: %v", err)
	}
	if math.Abs(v-2) > 1e-10 {
		t.Errorf("lower: expected 2, got %.12f", v)
	}

	in, err = New(0, 1, func(x float64) float64 { return 1 / math.Sqrt(1-x) },
		Settings{Rule: UpperSquareRootMidpoint})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	v, err = in.Integrate()
	if err != nil {
		t.Fatalf("upper: integration failed: %v", err)
	}
	if math.Abs(v-2) > 1e-10 {
		t.Errorf("upper: expected 2, got %.12f", v)
	}
}

func TestSemiInfiniteIntervals(t *testing.T) {
	// Gaussian upper tail via the 1/t substitution.
	gauss := func(x float64) float64 {
		return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
	}
	in, err := New(2, math.Inf(1), gauss, Settings{Rule: InfinityMidpoint})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	v, err := in.Integrate()
	if err != nil {
		t.Fatalf("infinity midpoint: integration failed: %v", err)
	}
	want := 1 - phi(2)
	if math.Abs(v-want) > 1e-8 {
		t.Errorf("infinity midpoint: expected %.12f, got %.12f", want, v)
	}

	// Exponential decay over [0, +Inf) via the exponential substitution.
	in, err = New(0, math.Inf(1), func(x float64) float64 { return math.Exp(-x) },
		Settings{Rule: ExponentialMidpoint})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	v, err = in.Integrate()
	if err != nil {
		t.Fatalf("exponential midpoint: integration failed: %v", err)
	}
	if math.Abs(v-1) > 1e-8 {
		t.Errorf("exponential midpoint: expected 1, got %.12f", v)
	}
}

func TestInvalidPairings(t *testing.T) {
	f := func(x float64) float64 { return x }

	intervals := []struct{ a, b float64 }{
		{0, math.Inf(1)},
		{1, math.Inf(1)},
		{2.5, math.Inf(1)},
	}
	for _, iv := range intervals {
		for _, strat := range []Strategy{Refine, Simpson} {
			if _, err := New(iv.a, iv.b, f, Settings{Strategy: strat, Rule: ExponentialMidpoint}); !errors.Is(err, ErrInvalidPairing) {
				t.Errorf("%s/exponential_midpoint on [%g, %g]: expected ErrInvalidPairing, got %v",
					strat, iv.a, iv.b, err)
			}
		}
	}

	for _, strat := range []Strategy{Refine, Simpson} {
		if _, err := New(0, 1, f, Settings{Strategy: strat, Rule: DoubleExponential}); !errors.Is(err, ErrInvalidPairing) {
			t.Errorf("%s/double_exponential: expected ErrInvalidPairing, got %v", strat, err)
		}
	}
}

func TestInvalidIntervals(t *testing.T) {
	f := func(x float64) float64 { return x }

	cases := []struct {
		a, b float64
		rule Rule
	}{
		{1, 1, Trapezoidal},                  // degenerate
		{2, 1, Trapezoidal},                  // reversed
		{math.NaN(), 1, Trapezoidal},         // NaN bound
		{0, math.Inf(1), Trapezoidal},        // infinite bound, closed rule
		{-1, 2, InfinityMidpoint},            // interval straddles the origin
		{0, 5, InfinityMidpoint},             // a*b == 0
		{0, 1, ExponentialMidpoint},          // finite upper bound
		{0, math.Inf(1), DoubleExponential},  // infinite bound, tanh-sinh
	}
	for _, tc := range cases {
		if _, err := New(tc.a, tc.b, f, Settings{Rule: tc.rule}); !errors.Is(err, ErrInvalidInterval) {
			t.Errorf("[%g, %g] with %s: expected ErrInvalidInterval, got %v", tc.a, tc.b, tc.rule, err)
		}
	}
}

func TestIntegrationErrorContext(t *testing.T) {
	// A NaN integrand fails immediately and the error carries the step.
	in, err := New(0, 1, func(x float64) float64 { return math.NaN() }, DefaultSettings())
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	_, err = in.Integrate()

	var ie *IntegrationError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *IntegrationError, got %T", err)
	}
	if ie.Step != 1 {
		t.Errorf("expected failure at step 1, got %d", ie.Step)
	}
	if !errors.Is(err, ErrEvaluation) {
		t.Errorf("expected ErrEvaluation cause, got %v", ie.Wrapped)
	}
}

func TestIntrospection(t *testing.T) {
	in, err := New(0, 1, func(x float64) float64 { return x * x },
		Settings{Strategy: Simpson, Rule: Midpoint})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	if in.Rule() != Midpoint {
		t.Errorf("expected midpoint rule, got %s", in.Rule())
	}
	if in.Strategy() != Simpson {
		t.Errorf("expected simpson strategy, got %s", in.Strategy())
	}
	if a, b := in.Bounds(); a != 0 || b != 1 {
		t.Errorf("expected bounds [0, 1], got [%g, %g]", a, b)
	}

	if _, err := in.Integrate(); err != nil {
		t.Fatalf("integration failed: %v", err)
	}
	proxies, estimates := in.History()
	if len(proxies) != in.Steps() || len(estimates) != in.Steps() {
		t.Errorf("history length %d/%d does not match steps %d", len(proxies), len(estimates), in.Steps())
	}
	if proxies[0] != 1 {
		t.Errorf("first step proxy should be 1, got %g", proxies[0])
	}
	for i := 1; i < len(proxies); i++ {
		if math.Abs(proxies[i]-0.25*proxies[i-1]) > 1e-15 {
			t.Errorf("proxy %d should decay by 0.25: %g after %g", i, proxies[i], proxies[i-1])
		}
	}
}

func TestZeroIntegral(t *testing.T) {
	// An odd function over a symmetric interval: the relative check
	// must fall back to an absolute one instead of dividing by zero.
	in, err := New(-1, 1, func(x float64) float64 { return x * x * x }, Settings{Strategy: Refine})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	v, err := in.Integrate()
	if err != nil {
		t.Fatalf("integration failed: %v", err)
	}
	if math.Abs(v) > 1e-10 {
		t.Errorf("expected ~0, got %g", v)
	}
}
