package experiment

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/numint/internal/config"
	"github.com/san-kum/numint/internal/funcs"
	"github.com/san-kum/numint/quad"
)

// Result is the outcome of one integration job. Err is set for
// construction and integration failures alike; a failed job still
// carries its refinement history up to the failure.
type Result struct {
	Job       config.Job
	Value     float64
	Steps     int
	Proxies   []float64
	Estimates []float64
	Exact     float64
	HasExact  bool
	Err       error
}

// TrueError returns the absolute deviation from the closed-form value,
// when one is known.
func (r *Result) TrueError() (float64, bool) {
	if !r.HasExact || r.Err != nil {
		return 0, false
	}
	return math.Abs(r.Value - r.Exact), true
}

// Runner executes integration jobs against the integrand catalog.
type Runner struct {
	reg *funcs.Registry
}

func NewRunner() *Runner {
	return &Runner{reg: funcs.NewRegistry()}
}

// Run executes a single job.
func (r *Runner) Run(job config.Job) *Result {
	res := &Result{Job: job}

	fn, err := r.reg.Get(job.Function, job.Params)
	if err != nil {
		res.Err = err
		return res
	}
	set, err := job.Settings()
	if err != nil {
		res.Err = err
		return res
	}
	in, err := quad.New(job.Lower, job.Upper, fn.Eval, set)
	if err != nil {
		res.Err = err
		return res
	}

	res.Value, res.Err = in.Integrate()
	res.Steps = in.Steps()
	res.Proxies, res.Estimates = in.History()

	if ex, ok := fn.(funcs.Exacter); ok {
		res.Exact = ex.Exact(job.Lower, job.Upper)
		res.HasExact = true
	}
	return res
}

// RunAll executes every job in the config, stopping early if the context
// is canceled.
func (r *Runner) RunAll(ctx context.Context, cfg *config.Config) ([]*Result, error) {
	results := make([]*Result, 0, len(cfg.Jobs))
	for _, job := range cfg.Jobs {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}
		results = append(results, r.Run(job))
	}
	return results, nil
}

// Sweep runs the same job across a range of parameter values, returning
// one result per value. The parameter is overridden in job.Params.
func (r *Runner) Sweep(ctx context.Context, job config.Job, param string, values []float64) ([]*Result, error) {
	if param == "" {
		return nil, fmt.Errorf("sweep: empty parameter name")
	}
	results := make([]*Result, 0, len(values))
	for _, v := range values {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}
		j := job
		j.Params = make(map[string]float64, len(job.Params)+1)
		for k, pv := range job.Params {
			j.Params[k] = pv
		}
		j.Params[param] = v
		results = append(results, r.Run(j))
	}
	return results, nil
}
