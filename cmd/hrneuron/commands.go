package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/hrneuron/internal/analysis"
	"github.com/san-kum/hrneuron/internal/calib"
	"github.com/san-kum/hrneuron/internal/config"
	"github.com/san-kum/hrneuron/internal/export"
	"github.com/san-kum/hrneuron/internal/hr"
	"github.com/san-kum/hrneuron/internal/integrators"
	"github.com/san-kum/hrneuron/internal/metrics"
	"github.com/san-kum/hrneuron/internal/neuron"
	"github.com/san-kum/hrneuron/internal/scenario"
	"github.com/san-kum/hrneuron/internal/sim"
	"github.com/san-kum/hrneuron/internal/storage"
	"github.com/san-kum/hrneuron/internal/viz"
)

const plotWidth = 100

// loadConfig resolves the preset, then the config file, then --table.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}
	if tablePath != "" {
		cfg.Timing.Table = tablePath
	}
	return cfg, nil
}

// runConfig applies the run flags the user set on top of loadConfig.
func runConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	if f.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f.Changed("e") {
		cfg.Neuron.E = excitation
	}
	if f.Changed("burst") {
		cfg.Timing.BurstDuration = burst
	}
	if f.Changed("period") {
		cfg.Timing.PeriodSeconds = period
	}
	if f.Changed("dt") {
		cfg.Timing.TimeIncrement = timeIncr
	}
	if f.Changed("policy") {
		cfg.Timing.Policy = policy
	}
	if f.Changed("strategy") {
		cfg.Timing.Strategy = strategy
	}
	if f.Changed("stim") {
		cfg.Stimulus.Kind = stimKind
	}
	if f.Changed("amp") {
		cfg.Stimulus.Amplitude = stimAmp
	}
	if f.Changed("stim-start") {
		cfg.Stimulus.Start = stimStart
	}
	if f.Changed("stim-width") {
		cfg.Stimulus.Width = stimWidth
	}
	if f.Changed("stim-period") {
		cfg.Stimulus.Period = stimPeriod
	}
	if f.Changed("stim-std") {
		cfg.Stimulus.Std = stimStd
	}
	return cfg, cfg.Validate()
}

func newSimulator(cfg *config.Config) (*sim.Simulator, error) {
	n, err := cfg.Build(newLogger())
	if err != nil {
		return nil, err
	}
	stim, err := cfg.Stimulus.Build(cfg.Seed)
	if err != nil {
		return nil, err
	}
	s := sim.New(n, stim)
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}
	return s, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runName() string {
	if preset != "" {
		return preset
	}
	if configFile != "" {
		return configFile
	}
	return "default"
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	n := s.Neuron()
	timing := n.Timing()
	fmt.Printf("running %d ticks (mode %s, dt %.4g, %d substeps/tick)...\n",
		cfg.Ticks, timing.Mode, timing.Dt, timing.Substeps)
	start := time.Now()

	result, err := s.Run(ctx, sim.Config{Ticks: cfg.Ticks, RecordEvery: recordEvery, ValidateState: true})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Name:       runName(),
		Seed:       cfg.Seed,
		Integrator: n.Stepper(),
		Policy:     cfg.Timing.Policy,
		Strategy:   cfg.Timing.Strategy,
		Ticks:      result.TicksRun,
		Params:     n.Params(),
		Timing:     timing,
		Stimulus:   cfg.Stimulus,
		Metrics:    result.Metrics,
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v (%.0f ticks/s)\n", elapsed, float64(result.TicksRun)/elapsed.Seconds())
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d, substeps: %d, model time: %.2f\n", result.TicksRun, result.Substeps, result.ModelTime)
	fmt.Println("\nmetrics:")
	printMetrics(os.Stdout, result.Metrics)
	return nil
}

func printMetrics(w io.Writer, m map[string]float64) {
	for _, name := range []string{"spikes", "bursts", "peak_x", "mean_x", "substeps"} {
		if v, ok := m[name]; ok {
			fmt.Fprintf(w, "  %s: %.6f\n", name, v)
		}
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tTICKS\tMODE\tDT\tSUBSTEPS\tINTEG")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%.4g\t%d\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Timing.Mode,
			run.Timing.Dt,
			run.Timing.Substeps,
			run.Integrator,
		)
	}
	return w.Flush()
}

func openRun(id string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(dataDir)
	if id == "latest" {
		latest, err := st.Latest()
		if err != nil {
			return nil, nil, err
		}
		id = latest
	}
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, err
	}
	result, err := st.LoadTrace(id)
	if err != nil {
		return nil, nil, err
	}
	return meta, result, nil
}

func downsample(v []float64, n int) []float64 {
	if len(v) <= n {
		return v
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = v[i*len(v)/n]
	}
	return out
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := openRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s, dt: %.4g, substeps: %d\n\n", meta.Timing.Mode, meta.Timing.Dt, meta.Timing.Substeps)

	graph := asciigraph.Plot(downsample(result.Xs(), plotWidth),
		asciigraph.Height(15),
		asciigraph.Caption("x (membrane potential)"))
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := openRun(args[0])
	if err != nil {
		return err
	}

	xs := result.Xs()
	modelTimes := make([]float64, len(result.Samples))
	for i, s := range result.Samples {
		modelTimes[i] = s.ModelTime
	}
	stats := analysis.SummarizeBursts(xs, modelTimes, 0, 35)

	fmt.Printf("run: %s\n\n", meta.ID)
	fmt.Printf("spikes: %d\n", stats.Spikes)
	fmt.Printf("bursts: %d\n", stats.Bursts)
	fmt.Printf("spikes/burst: %.2f\n", stats.SpikesPerBurst)
	fmt.Printf("mean burst length: %.2f (model time)\n", stats.MeanBurstLength)
	fmt.Printf("mean burst interval: %.2f (model time, cv %.3f)\n", stats.MeanInterval, stats.IntervalCV)

	times := result.Times()
	if len(times) > 1 {
		dt := times[1] - times[0]
		if dt > 0 {
			fmt.Printf("dominant frequency: %.4f Hz\n", analysis.DominantFrequency(xs, dt))
		}
	}

	if meta.Timing.Mode == neuron.ModeBurst && meta.Timing.PeriodSeconds > 0 && stats.MeanInterval > 0 &&
		meta.Timing.Dt > 0 && meta.Timing.Substeps > 0 {
		modelPerSecond := meta.Timing.Dt * float64(meta.Timing.Substeps) / meta.Timing.PeriodSeconds
		fmt.Printf("observed burst period: %.3f s (configured %.3f s)\n",
			stats.MeanInterval/modelPerSecond, meta.Timing.BurstDuration)
	}
	return nil
}

func varIndex(name string) (int, error) {
	switch name {
	case "x":
		return hr.X, nil
	case "y":
		return hr.Y, nil
	case "z":
		return hr.Z, nil
	}
	return 0, fmt.Errorf("unknown variable %q (want x, y or z)", name)
}

func phasePlot(cmd *cobra.Command, args []string) error {
	ix, err := varIndex(xAxis)
	if err != nil {
		return err
	}
	iy, err := varIndex(yAxis)
	if err != nil {
		return err
	}
	_, result, err := openRun(args[0])
	if err != nil {
		return err
	}

	xs := make([]float64, len(result.Samples))
	ys := make([]float64, len(result.Samples))
	for i, s := range result.Samples {
		xs[i], ys[i] = s.Vars[ix], s.Vars[iy]
	}

	fmt.Printf("phase portrait: %s vs %s\n\n", yAxis, xAxis)
	fmt.Println(analysis.PhasePortraitToASCII(analysis.PhasePortrait(xs, ys), 60, 24))
	return nil
}

func output() (io.Writer, func() error, error) {
	if outPath == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := openRun(args[0])
	if err != nil {
		return err
	}
	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.WriteTraceCSV(w, result); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := openRun(args[0])
	if err != nil {
		return err
	}
	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, *meta, result); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, result, err := openRun(args[0])
	if err != nil {
		return err
	}

	var svg string
	if phaseSVG {
		pts := analysis.PhasePortrait(result.Xs(), result.Zs())
		svg = export.PhaseToSVG(pts, export.DefaultHeight*2, export.DefaultHeight*2, "")
	} else {
		svg = export.TraceToSVG(result.Times(), result.Xs(), export.DefaultWidth, export.DefaultHeight, "")
	}
	if err := export.WriteFile(svgOut, svg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func parseFloatArg(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return v, nil
}

func selectStep(cmd *cobra.Command, args []string) error {
	b, err := parseFloatArg("burst duration", args[0])
	if err != nil {
		return err
	}
	p, err := parseFloatArg("period", args[1])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Timing.Strategy = strategy
	}
	if cmd.Flags().Changed("policy") {
		cfg.Timing.Policy = policy
	}
	opts, err := cfg.Options(newLogger())
	if err != nil {
		return err
	}
	table := opts.Table
	if table == nil {
		table = calib.Default()
	}

	sel := table.Select(b, p, opts.Strategy)
	sched := neuron.Scheduler{Table: table, Strategy: opts.Strategy, Policy: opts.Policy, MaxSubsteps: opts.MaxSubsteps}
	plan := sched.Plan(neuron.Timing{Dt: cfg.Timing.TimeIncrement, BurstDuration: b, PeriodSeconds: p})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "points live\t%.6g\n", sel.PointsLive)
	fmt.Fprintf(w, "strategy\t%s\n", opts.Strategy)
	fmt.Fprintf(w, "matched\t%t\n", sel.Matched)
	if sel.Matched {
		fmt.Fprintf(w, "index\t%d\n", sel.Index)
		fmt.Fprintf(w, "within tolerance\t%t\n", sel.WithinTolerance)
		fmt.Fprintf(w, "dt\t%.6g\n", sel.Dt)
		fmt.Fprintf(w, "points burst\t%.6f\n", sel.PointsBurst)
		fmt.Fprintf(w, "ratio\t%.6f\n", sel.Ratio())
	}
	fmt.Fprintf(w, "mode\t%s\n", plan.Mode)
	fmt.Fprintf(w, "policy\t%s\n", opts.Policy)
	fmt.Fprintf(w, "substeps\t%d\n", plan.Substeps)
	fmt.Fprintf(w, "step size\t%.6g\n", plan.Dt)
	return w.Flush()
}

func tableFromConfig() (*calib.Table, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Timing.Table == "" {
		return calib.Default(), nil
	}
	return calib.LoadCSV(cfg.Timing.Table)
}

func printTable(cmd *cobra.Command, args []string) error {
	table, err := tableFromConfig()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tDT\tPOINTS")
	for i, e := range table.Entries() {
		fmt.Fprintf(w, "%d\t%g\t%.6f\n", i, e.Dt, e.Points)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if outPath != "" {
		return calib.SaveCSV(outPath, table)
	}
	return nil
}

func calibrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := calib.DefaultMeasureOptions()
	opts.Duration = calDuration
	opts.Params = hr.Params{E: cfg.Neuron.E, Mu: cfg.Neuron.Mu, S: cfg.Neuron.S, Vh: cfg.Neuron.Vh}
	opts.Initial = hr.Vars{cfg.Neuron.X, cfg.Neuron.Y, cfg.Neuron.Z}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("measuring %d step sizes in [%g, %g]...\n", calN, calMin, calMax)
	start := time.Now()
	table, err := calib.Sweep(ctx, calib.LogSpace(calMin, calMax, calN), opts, workers)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	ref := calib.Default()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tPOINTS\tBUILT-IN")
	for _, e := range table.Entries() {
		builtin := "-"
		for _, r := range ref.Entries() {
			if math.Abs(r.Dt-e.Dt) < 1e-9 {
				builtin = fmt.Sprintf("%.3f", r.Points)
				break
			}
		}
		fmt.Fprintf(w, "%g\t%.3f\t%s\n", e.Dt, e.Points, builtin)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if outPath != "" {
		if err := calib.SaveCSV(outPath, table); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", outPath)
	}
	return nil
}

func bifurcation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	stepper, err := integrators.Get(cfg.Integrator)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	base := hr.Params{E: cfg.Neuron.E, Mu: cfg.Neuron.Mu, S: cfg.Neuron.S, Vh: cfg.Neuron.Vh}
	x0 := hr.Vars{cfg.Neuron.X, cfg.Neuron.Y, cfg.Neuron.Z}
	data, err := analysis.Bifurcation(ctx, stepper, base, x0, analysis.BifurcationConfig{
		Param:     bifParam,
		Min:       bifMin,
		Max:       bifMax,
		Steps:     bifSteps,
		Dt:        bifDt,
		Transient: bifTransient,
		Record:    bifRecord,
		Workers:   workers,
	})
	if err != nil {
		return err
	}

	fmt.Printf("bifurcation diagram: x maxima vs %s in [%g, %g]\n\n", bifParam, bifMin, bifMax)
	fmt.Println(analysis.BifurcationToASCII(data, 80, 24))
	return nil
}

func lyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	name := cfg.Integrator
	if lyapIntegrator != "" {
		name = lyapIntegrator
	}
	stepper, err := integrators.Get(name)
	if err != nil {
		return err
	}

	p := hr.Params{E: cfg.Neuron.E, Mu: cfg.Neuron.Mu, S: cfg.Neuron.S, Vh: cfg.Neuron.Vh}
	if cmd.Flags().Changed("e") {
		p.E = excitation
	}
	lc := analysis.DefaultLyapunovConfig()
	lc.Dt = lyapDt
	lc.Duration = lyapDuration

	lambda := analysis.LyapunovExponent(stepper, hr.Vars{cfg.Neuron.X, cfg.Neuron.Y, cfg.Neuron.Z}, p, lc)
	fmt.Printf("largest lyapunov exponent (e=%g, %s): %.5f\n", p.E, stepper.Name(), lambda)
	switch {
	case lambda > 1e-3:
		fmt.Println("regime: chaotic")
	case lambda < -1e-3:
		fmt.Println("regime: stable")
	default:
		fmt.Println("regime: periodic or marginal")
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}

	jobs := make([]sim.Job, len(args))
	for i, name := range args {
		c := cfg.Clone()
		c.Integrator = name
		jobs[i] = sim.Job{Name: name, Build: func() (*sim.Simulator, error) { return newSimulator(c) }}
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	results, err := sim.NewEnsemble(jobs, len(jobs)).Run(ctx, sim.Config{Ticks: cfg.Ticks, RecordEvery: 1})
	if err != nil {
		return err
	}
	fmt.Printf("compared %d integrators over %d ticks in %v\n\n", len(args), cfg.Ticks, time.Since(start))

	ref := results[0].Xs()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "INTEGRATOR\tSPIKES\tBURSTS\tPEAK X\tFINAL X\tMAX |dx| vs %s\n", args[0])
	for i, res := range results {
		xs := res.Xs()
		maxDiff := 0.0
		for j := 0; j < len(xs) && j < len(ref); j++ {
			maxDiff = math.Max(maxDiff, math.Abs(xs[j]-ref[j]))
		}
		final := math.NaN()
		if len(xs) > 0 {
			final = xs[len(xs)-1]
		}
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.4f\t%.6f\t%.3e\n",
			args[i], res.Metrics["spikes"], res.Metrics["bursts"], res.Metrics["peak_x"], final, maxDiff)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := cfg.Options(newLogger())
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := scenario.Run(ctx, sc, neuron.New(opts))
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("  %s\n", sc.Description)
	}
	fmt.Printf("ticks: %d, substeps: %d\n", res.Ticks, res.Substeps)
	fmt.Printf("final: x=%.6f y=%.6f z=%.6f\n", res.Final[hr.X], res.Final[hr.Y], res.Final[hr.Z])

	if len(res.Trace) > 1 {
		xs := make([]float64, len(res.Trace))
		for i, v := range res.Trace {
			xs[i] = v[hr.X]
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(downsample(xs, plotWidth), asciigraph.Height(10), asciigraph.Caption("x per tick")))
	}

	if replays > 1 {
		same, err := scenario.Replay(ctx, sc, func() scenario.Target { return neuron.New(opts) }, replays)
		if err != nil {
			return err
		}
		if !same {
			return fmt.Errorf("replays diverged")
		}
		fmt.Printf("\n%d replays identical\n", replays)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println("presets:")
	for _, name := range config.ListPresets() {
		cfg, _ := config.GetPreset(name)
		mode := "burst"
		if cfg.Timing.BurstDuration <= 0 {
			mode = "continuous"
		}
		fmt.Printf("  %-12s e=%-5g %s, policy %s\n", name, cfg.Neuron.E, mode, cfg.Timing.Policy)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options(newLogger())
	if err != nil {
		return err
	}

	rt := neuron.NewRealtime(opts)
	cfg.Apply(rt)
	return viz.Run(rt, "hindmarsh-rose "+runName(), theme)
}
