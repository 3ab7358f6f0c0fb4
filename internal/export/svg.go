package export

import (
	"fmt"
	"math"
	"os"
	"strings"
)

// ConvergenceSVG renders a refinement trace as an SVG polyline of log10
// error against level. Levels with zero error are clipped to the plot
// floor.
func ConvergenceSVG(estimates []float64, ref float64, width, height int) string {
	if len(estimates) < 2 {
		return ""
	}

	const floor = -16.0
	ys := make([]float64, len(estimates))
	for i, s := range estimates {
		e := math.Abs(s - ref)
		if e <= 0 {
			ys[i] = floor
			continue
		}
		ys[i] = math.Max(math.Log10(e), floor)
	}

	minY, maxY := ys[0], ys[0]
	for _, y := range ys {
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#00ff88" stroke-width="1.5" d="M`,
		width, height, width, height))

	for i, y := range ys {
		px := float64(i) / float64(len(ys)-1) * float64(width)
		py := float64(height) - (y-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// WriteConvergenceSVG writes the convergence plot to a file.
func WriteConvergenceSVG(path string, estimates []float64, ref float64, width, height int) error {
	svg := ConvergenceSVG(estimates, ref, width, height)
	if svg == "" {
		return fmt.Errorf("export: not enough history for a plot")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
