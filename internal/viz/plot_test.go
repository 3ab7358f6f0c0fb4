package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/numint/internal/config"
	"github.com/san-kum/numint/internal/experiment"
)

func TestConvergencePlot(t *testing.T) {
	if got := ConvergencePlot([]float64{1}); got != "" {
		t.Error("expected no plot for a single-point trace")
	}
	got := ConvergencePlot([]float64{0.7, 0.683, 0.6827, 0.68269})
	if !strings.Contains(got, "estimate per refinement level") {
		t.Error("missing caption")
	}
}

func TestErrorPlotHandlesExactLevels(t *testing.T) {
	got := ErrorPlot([]float64{0.5, 0.51, 0.5}, 0.5)
	if got == "" {
		t.Fatal("expected a plot")
	}
	if strings.Contains(got, "NaN") {
		t.Error("exact levels leaked NaN into the plot")
	}
}

func TestFunctionPlotClampsNonFinite(t *testing.T) {
	got := FunctionPlot(func(x float64) float64 { return math.Log(x) }, 0, 1, 40)
	if got == "" {
		t.Fatal("expected a plot")
	}
	if strings.Contains(got, "NaN") || strings.Contains(got, "Inf") {
		t.Error("non-finite samples leaked into the plot")
	}
}

func TestSummary(t *testing.T) {
	res := &experiment.Result{
		Job: config.Job{
			Function: "gaussian",
			Lower:    -1,
			Upper:    1,
			Rule:     "trapezoidal",
			Strategy: "romberg",
		},
		Value:    0.68269,
		Steps:    5,
		Exact:    0.6826894921370859,
		HasExact: true,
	}
	got := Summary(res)
	for _, want := range []string{"gaussian", "trapezoidal", "romberg", "0.68269", "exact"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}
