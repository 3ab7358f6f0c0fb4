package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/numint/internal/experiment"
)

const (
	defaultWidth  = 70
	defaultHeight = 12
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// ConvergencePlot renders the refinement estimates per level.
func ConvergencePlot(estimates []float64) string {
	if len(estimates) < 2 {
		return ""
	}
	plot := asciigraph.Plot(estimates,
		asciigraph.Width(defaultWidth),
		asciigraph.Height(defaultHeight),
		asciigraph.Caption("estimate per refinement level"),
	)
	return graphStyle.Render(plot)
}

// ErrorPlot renders log10 of the per-level error against a reference
// value. Levels that already match the reference exactly are clipped to
// the floor of the plot.
func ErrorPlot(estimates []float64, ref float64) string {
	if len(estimates) < 2 {
		return ""
	}
	logs := make([]float64, len(estimates))
	floor := -16.0
	for i, s := range estimates {
		e := math.Abs(s - ref)
		if e <= 0 {
			logs[i] = floor
			continue
		}
		logs[i] = math.Max(math.Log10(e), floor)
	}
	plot := asciigraph.Plot(logs,
		asciigraph.Width(defaultWidth),
		asciigraph.Height(defaultHeight),
		asciigraph.Caption("log10 error per refinement level"),
	)
	return graphStyle.Render(plot)
}

// FunctionPlot samples f uniformly over [a, b] and renders it.
func FunctionPlot(f func(float64) float64, a, b float64, samples int) string {
	if samples < 2 {
		samples = defaultWidth
	}
	ys := make([]float64, samples)
	for i := range ys {
		x := a + (b-a)*float64(i)/float64(samples-1)
		y := f(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			y = 0
		}
		ys[i] = y
	}
	plot := asciigraph.Plot(ys,
		asciigraph.Width(defaultWidth),
		asciigraph.Height(defaultHeight),
		asciigraph.Caption(fmt.Sprintf("integrand on [%g, %g]", a, b)),
	)
	return graphStyle.Render(plot)
}

// Summary renders a styled result block for one integration run.
func Summary(res *experiment.Result) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("∫ %s over [%g, %g]", res.Job.Function, res.Job.Lower, res.Job.Upper)))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	row("rule", res.Job.Rule)
	row("strategy", res.Job.Strategy)
	if res.Err != nil {
		b.WriteString(labelStyle.Render("failed"))
		b.WriteString(errStyle.Render(res.Err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	row("value", fmt.Sprintf("%.12g", res.Value))
	row("steps", fmt.Sprintf("%d", res.Steps))
	if res.HasExact {
		row("exact", fmt.Sprintf("%.12g", res.Exact))
		if e, ok := res.TrueError(); ok {
			row("error", fmt.Sprintf("%.3g", e))
		}
	}
	return b.String()
}
