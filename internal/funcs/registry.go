package funcs

import (
	"fmt"
	"sort"
)

// Registry maps catalog names to integrand constructors. Parameters not
// present in the map keep their defaults.
type Registry struct {
	builders map[string]func(params map[string]float64) Integrand
}

func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]func(map[string]float64) Integrand)}

	r.builders["gaussian"] = func(params map[string]float64) Integrand {
		g := NewGaussian()
		if v, ok := params["mu"]; ok {
			g.Mu = v
		}
		if v, ok := params["sigma"]; ok {
			g.Sigma = v
		}
		return g
	}
	r.builders["exp"] = func(params map[string]float64) Integrand {
		e := NewExponential()
		if v, ok := params["lambda"]; ok {
			e.Lambda = v
		}
		return e
	}
	r.builders["expdecay"] = func(params map[string]float64) Integrand {
		e := NewExpDecay()
		if v, ok := params["rate"]; ok {
			e.Rate = v
		}
		return e
	}
	r.builders["runge"] = func(map[string]float64) Integrand { return NewRunge() }
	r.builders["sinc"] = func(map[string]float64) Integrand { return NewSinc() }
	r.builders["logsingular"] = func(map[string]float64) Integrand { return NewLogSingular() }
	r.builders["poly"] = func(params map[string]float64) Integrand {
		p := NewPoly()
		coeffs := make([]float64, 0)
		for i := 0; ; i++ {
			v, ok := params[coeffKey(i)]
			if !ok {
				break
			}
			coeffs = append(coeffs, v)
		}
		if len(coeffs) > 0 {
			p.Coeffs = coeffs
		}
		return p
	}

	return r
}

// Get builds the named integrand with the given parameter overrides.
func (r *Registry) Get(name string, params map[string]float64) (Integrand, error) {
	fn, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrand: %s", name)
	}
	return fn(params), nil
}

// List returns the catalog names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
