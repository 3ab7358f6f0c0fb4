package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/numint/internal/analysis"
	"github.com/san-kum/numint/internal/config"
	"github.com/san-kum/numint/internal/experiment"
	"github.com/san-kum/numint/internal/export"
	"github.com/san-kum/numint/internal/funcs"
	"github.com/san-kum/numint/internal/storage"
	"github.com/san-kum/numint/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	lower      float64
	upper      float64
	rule       string
	strategy   string
	eps        float64
	maxSteps   int
	minSteps   int
	degree     int
	params     []string
	configFile string
	preset     string
	// sweep
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepN     int
	// plot
	plotSamples int
	// live view
	frameRate int
	// svg export
	outPath   string
	svgWidth  int
	svgHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "numint",
		Short: "numerical quadrature lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".numint", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [function]",
		Short: "integrate a catalog function",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runIntegration,
	}
	addJobFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset job")

	sweepCmd := &cobra.Command{
		Use:   "sweep [function]",
		Short: "integrate across a parameter range",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addJobFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param-name", "lambda", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", -1, "sweep start")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "sweep end")
	sweepCmd.Flags().IntVar(&sweepN, "points", 9, "sweep points")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run details and convergence plot",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [function]",
		Short: "plot a catalog integrand",
		Args:  cobra.ExactArgs(1),
		RunE:  plotFunction,
	}
	addJobFlags(plotCmd)
	plotCmd.Flags().IntVar(&plotSamples, "samples", 120, "sample points")

	liveCmd := &cobra.Command{
		Use:   "live [function]",
		Short: "integrate with a live refinement replay",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addJobFlags(liveCmd)
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset job")
	liveCmd.Flags().IntVar(&frameRate, "fps", 4, "replay frames per second")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run's convergence plot to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outPath, "out", "convergence.svg", "output path")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 640, "SVG width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 360, "SVG height")

	functionsCmd := &cobra.Command{
		Use:   "functions",
		Short: "list catalog integrands",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := funcs.NewRegistry()
			for _, name := range reg.List() {
				fmt.Println(name)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.PresetNames() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, sweepCmd, listCmd, showCmd, plotCmd, liveCmd, exportSVGCmd, functionsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addJobFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&lower, "a", 0, "lower bound (inf accepted)")
	cmd.Flags().Float64Var(&upper, "b", 1, "upper bound (inf accepted)")
	cmd.Flags().StringVar(&rule, "rule", "trapezoidal", "quadrature rule")
	cmd.Flags().StringVar(&strategy, "strategy", "romberg", "convergence strategy")
	cmd.Flags().Float64Var(&eps, "eps", 1e-8, "relative tolerance")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 20, "refinement step ceiling")
	cmd.Flags().IntVar(&minSteps, "min-steps", 5, "minimum refinement steps")
	cmd.Flags().IntVar(&degree, "degree", 5, "romberg extrapolation degree")
	cmd.Flags().StringArrayVar(&params, "param", nil, "integrand parameter (name=value, repeatable)")
}

// buildJob assembles the job from preset, config file, and flags, flags
// winning.
func buildJob(cmd *cobra.Command, args []string) (config.Job, error) {
	job := config.DefaultJob()

	if preset != "" {
		p, err := config.Preset(preset)
		if err != nil {
			return config.Job{}, err
		}
		job = p
	}
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return config.Job{}, fmt.Errorf("failed to load config: %w", err)
		}
		job = cfg.Jobs[0]
	}

	if len(args) > 0 {
		job.Function = args[0]
		job.Name = args[0]
	}
	if cmd.Flags().Changed("a") {
		job.Lower = lower
	}
	if cmd.Flags().Changed("b") {
		job.Upper = upper
	}
	if cmd.Flags().Changed("rule") || job.Rule == "" {
		job.Rule = rule
	}
	if cmd.Flags().Changed("strategy") || job.Strategy == "" {
		job.Strategy = strategy
	}
	if cmd.Flags().Changed("eps") {
		job.Eps = eps
	}
	if cmd.Flags().Changed("max-steps") {
		job.MaxSteps = maxSteps
	}
	if cmd.Flags().Changed("min-steps") {
		job.MinSteps = minSteps
	}
	if cmd.Flags().Changed("degree") {
		job.Degree = degree
	}

	if len(params) > 0 {
		if job.Params == nil {
			job.Params = make(map[string]float64)
		}
		for _, p := range params {
			name, value, err := parseParam(p)
			if err != nil {
				return config.Job{}, err
			}
			job.Params[name] = value
		}
	}
	return job, nil
}

func parseParam(s string) (string, float64, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, fmt.Errorf("invalid parameter %q, want name=value", s)
	}
	v, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid parameter value %q: %w", parts[1], err)
	}
	return parts[0], v, nil
}

func runIntegration(cmd *cobra.Command, args []string) error {
	job, err := buildJob(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	start := time.Now()
	res := experiment.NewRunner().Run(job)
	elapsed := time.Since(start)

	runID, err := st.Save(res)
	if err != nil {
		return err
	}

	fmt.Print(viz.Summary(res))
	if plot := viz.ConvergencePlot(res.Estimates); plot != "" {
		fmt.Println(plot)
	}
	if order, ok := analysis.ConvergenceOrder(res.Estimates); ok {
		fmt.Printf("observed order: %.2f\n", order)
	}
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)

	return res.Err
}

func runSweep(cmd *cobra.Command, args []string) error {
	job, err := buildJob(cmd, args)
	if err != nil {
		return err
	}
	if sweepN < 2 {
		return fmt.Errorf("need at least 2 sweep points, got %d", sweepN)
	}

	values := make([]float64, sweepN)
	for i := range values {
		values[i] = sweepFrom + (sweepTo-sweepFrom)*float64(i)/float64(sweepN-1)
	}

	results, err := experiment.NewRunner().Sweep(context.Background(), job, sweepParam, values)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tvalue\tsteps\terror\n", sweepParam)
	for i, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%.4g\tfailed: %v\t\t\n", values[i], res.Err)
			continue
		}
		errCol := "-"
		if e, ok := res.TrueError(); ok {
			errCol = fmt.Sprintf("%.3g", e)
		}
		fmt.Fprintf(w, "%.4g\t%.10g\t%d\t%s\n", values[i], res.Value, res.Steps, errCol)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tfunction\tinterval\trule\tstrategy\tvalue\tsteps")
	for _, run := range runs {
		value := fmt.Sprintf("%.10g", run.Value)
		if run.Failure != "" {
			value = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t[%g, %g]\t%s\t%s\t%s\t%d\n",
			run.ID, run.Function, run.Lower, run.Upper, run.Rule, run.Strategy, value, run.Steps)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, estimates, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "function\t%s\n", meta.Function)
	fmt.Fprintf(w, "interval\t[%g, %g]\n", meta.Lower, meta.Upper)
	fmt.Fprintf(w, "rule\t%s\n", meta.Rule)
	fmt.Fprintf(w, "strategy\t%s\n", meta.Strategy)
	if meta.Failure != "" {
		fmt.Fprintf(w, "failed\t%s\n", meta.Failure)
	} else {
		fmt.Fprintf(w, "value\t%.12g\n", meta.Value)
	}
	fmt.Fprintf(w, "steps\t%d\n", meta.Steps)
	if meta.HasExact {
		fmt.Fprintf(w, "exact\t%.12g\n", meta.Exact)
		fmt.Fprintf(w, "error\t%.3g\n", math.Abs(meta.Value-meta.Exact))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if plot := viz.ConvergencePlot(estimates); plot != "" {
		fmt.Println(plot)
	}
	if meta.HasExact {
		if plot := viz.ErrorPlot(estimates, meta.Exact); plot != "" {
			fmt.Println(plot)
		}
	}
	return nil
}

func plotFunction(cmd *cobra.Command, args []string) error {
	job, err := buildJob(cmd, args)
	if err != nil {
		return err
	}
	fn, err := funcs.NewRegistry().Get(job.Function, job.Params)
	if err != nil {
		return err
	}
	if math.IsInf(job.Lower, 0) || math.IsInf(job.Upper, 0) {
		return fmt.Errorf("plot needs finite bounds, got [%g, %g]", job.Lower, job.Upper)
	}
	fmt.Println(viz.FunctionPlot(fn.Eval, job.Lower, job.Upper, plotSamples))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	job, err := buildJob(cmd, args)
	if err != nil {
		return err
	}
	res := experiment.NewRunner().Run(job)
	if len(res.Estimates) == 0 {
		if res.Err != nil {
			return res.Err
		}
		return fmt.Errorf("no refinement history")
	}
	if frameRate < 1 {
		frameRate = 4
	}
	interval := time.Second / time.Duration(frameRate)
	return viz.RunLive(res, interval)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, estimates, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}
	ref := meta.Value
	if meta.HasExact {
		ref = meta.Exact
	}
	if err := export.WriteConvergenceSVG(outPath, estimates, ref, svgWidth, svgHeight); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}
