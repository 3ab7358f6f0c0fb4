package funcs

import "math"

// Integrand is a named scalar function from the built-in catalog.
type Integrand interface {
	Name() string
	Eval(x float64) float64
	Params() map[string]float64
}

// Exacter is implemented by integrands with a closed-form antiderivative,
// used to report the true error of a computed integral.
type Exacter interface {
	Exact(a, b float64) float64
}

// Gaussian is the normal probability density.
type Gaussian struct {
	Mu    float64
	Sigma float64
}

func NewGaussian() *Gaussian {
	return &Gaussian{Mu: 0, Sigma: 1}
}

func (g *Gaussian) Name() string { return "gaussian" }

func (g *Gaussian) Eval(x float64) float64 {
	u := (x - g.Mu) / g.Sigma
	return math.Exp(-0.5*u*u) / (g.Sigma * math.Sqrt(2*math.Pi))
}

func (g *Gaussian) Params() map[string]float64 {
	return map[string]float64{"mu": g.Mu, "sigma": g.Sigma}
}

func (g *Gaussian) Exact(a, b float64) float64 {
	phi := func(x float64) float64 {
		return 0.5 * (1 + math.Erf((x-g.Mu)/(g.Sigma*math.Sqrt2)))
	}
	return phi(b) - phi(a)
}

// Exponential is e^(lambda*x).
type Exponential struct {
	Lambda float64
}

func NewExponential() *Exponential {
	return &Exponential{Lambda: 1}
}

func (e *Exponential) Name() string { return "exp" }

func (e *Exponential) Eval(x float64) float64 {
	return math.Exp(e.Lambda * x)
}

func (e *Exponential) Params() map[string]float64 {
	return map[string]float64{"lambda": e.Lambda}
}

func (e *Exponential) Exact(a, b float64) float64 {
	if e.Lambda == 0 {
		return b - a
	}
	return (math.Exp(e.Lambda*b) - math.Exp(e.Lambda*a)) / e.Lambda
}

// Runge is 1/(1 + 25x^2), the classic punishment for high-order
// polynomial interpolation on uniform grids.
type Runge struct{}

func NewRunge() *Runge { return &Runge{} }

func (r *Runge) Name() string { return "runge" }

func (r *Runge) Eval(x float64) float64 {
	return 1 / (1 + 25*x*x)
}

func (r *Runge) Params() map[string]float64 { return map[string]float64{} }

func (r *Runge) Exact(a, b float64) float64 {
	return (math.Atan(5*b) - math.Atan(5*a)) / 5
}

// Sinc is sin(x)/x with the removable singularity at zero.
type Sinc struct{}

func NewSinc() *Sinc { return &Sinc{} }

func (s *Sinc) Name() string { return "sinc" }

func (s *Sinc) Eval(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / x
}

func (s *Sinc) Params() map[string]float64 { return map[string]float64{} }

// LogSingular is log(x)*log(1-x) over (0, 1), integrable but singular at
// both endpoints; its integral over [0, 1] is 2 - pi^2/6.
type LogSingular struct{}

func NewLogSingular() *LogSingular { return &LogSingular{} }

func (l *LogSingular) Name() string { return "logsingular" }

func (l *LogSingular) Eval(x float64) float64 {
	return math.Log(x) * math.Log(1-x)
}

func (l *LogSingular) Params() map[string]float64 { return map[string]float64{} }

// ExpDecay is e^(-rate*x), for semi-infinite integration demos.
type ExpDecay struct {
	Rate float64
}

func NewExpDecay() *ExpDecay {
	return &ExpDecay{Rate: 1}
}

func (e *ExpDecay) Name() string { return "expdecay" }

func (e *ExpDecay) Eval(x float64) float64 {
	return math.Exp(-e.Rate * x)
}

func (e *ExpDecay) Params() map[string]float64 {
	return map[string]float64{"rate": e.Rate}
}

func (e *ExpDecay) Exact(a, b float64) float64 {
	upper := 0.0
	if !math.IsInf(b, 1) {
		upper = math.Exp(-e.Rate * b)
	}
	return (math.Exp(-e.Rate*a) - upper) / e.Rate
}

// Poly evaluates a dense-coefficient polynomial c0 + c1*x + c2*x^2 + ...
type Poly struct {
	Coeffs []float64
}

func NewPoly() *Poly {
	return &Poly{Coeffs: []float64{0, 0, 3}}
}

func (p *Poly) Name() string { return "poly" }

func (p *Poly) Eval(x float64) float64 {
	v := 0.0
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		v = v*x + p.Coeffs[i]
	}
	return v
}

func (p *Poly) Params() map[string]float64 {
	out := make(map[string]float64, len(p.Coeffs))
	for i, c := range p.Coeffs {
		out[coeffKey(i)] = c
	}
	return out
}

func (p *Poly) Exact(a, b float64) float64 {
	at := func(x float64) float64 {
		v := 0.0
		for i := len(p.Coeffs) - 1; i >= 0; i-- {
			v = v*x + p.Coeffs[i]/float64(i+1)
		}
		return v * x
	}
	return at(b) - at(a)
}

func coeffKey(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return "c" + digits[i:i+1]
	}
	return "c" + digits[i/10:i/10+1] + digits[i%10:i%10+1]
}
