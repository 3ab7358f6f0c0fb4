package config

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/numint/quad"
)

// Presets are ready-made jobs covering the situations each rule exists
// for: smooth finite intervals, endpoint singularities, and semi-infinite
// tails.
var presets = map[string]Job{
	"gaussian": DefaultJob(),
	"gaussian_tail": {
		Name:     "gaussian_tail",
		Function: "gaussian",
		Lower:    2,
		Upper:    math.Inf(1),
		Rule:     quad.InfinityMidpoint.String(),
		Strategy: quad.Romberg.String(),
	},
	"log_singular": {
		Name:     "log_singular",
		Function: "logsingular",
		Lower:    0,
		Upper:    1,
		Rule:     quad.DoubleExponential.String(),
		Strategy: quad.Romberg.String(),
	},
	"exp_tail": {
		Name:     "exp_tail",
		Function: "expdecay",
		Lower:    0,
		Upper:    math.Inf(1),
		Rule:     quad.ExponentialMidpoint.String(),
		Strategy: quad.Romberg.String(),
	},
	"runge": {
		Name:     "runge",
		Function: "runge",
		Lower:    -1,
		Upper:    1,
		Rule:     quad.Trapezoidal.String(),
		Strategy: quad.Simpson.String(),
	},
}

// Preset returns the named preset job.
func Preset(name string) (Job, error) {
	j, ok := presets[name]
	if !ok {
		return Job{}, fmt.Errorf("unknown preset: %s", name)
	}
	return j, nil
}

// PresetNames lists the available presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
