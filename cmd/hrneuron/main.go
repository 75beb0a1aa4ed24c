package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/hrneuron/internal/integrators"
)

var (
	dataDir    string
	configFile string
	preset     string
	tablePath  string
	verbose    bool

	ticks       int
	recordEvery int
	seed        int64
	integrator  string
	excitation  float64
	burst       float64
	period      float64
	timeIncr    float64
	policy      string
	strategy    string
	stimKind    string
	stimAmp     float64
	stimStart   float64
	stimWidth   float64
	stimPeriod  float64
	stimStd     float64

	outPath  string
	svgOut   string
	xAxis    string
	yAxis    string
	phaseSVG bool
	theme    string

	calMin      float64
	calMax      float64
	calN        int
	calDuration float64
	workers     int

	bifParam     string
	bifMin       float64
	bifMax       float64
	bifSteps     int
	bifDt        float64
	bifTransient float64
	bifRecord    float64

	lyapDt         float64
	lyapDuration   float64
	lyapIntegrator string

	replays int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "hrneuron",
		Short:        "hindmarsh-rose neuron real-time engine",
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".hrneuron", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&tablePath, "table", "", "calibration table csv (replaces built-in table)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the neuron tick by tick and store the trace",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().IntVar(&recordEvery, "record", 1, "record one sample every n ticks")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id|latest]",
		Short: "plot membrane potential of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id|latest]",
		Short: "burst and frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id|latest]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&xAxis, "x-axis", "x", "variable on the x axis (x, y, z)")
	phaseCmd.Flags().StringVar(&yAxis, "y-axis", "z", "variable on the y axis (x, y, z)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id|latest]",
		Short: "export run trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id|latest]",
		Short: "export run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id|latest]",
		Short: "export membrane potential or phase portrait to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "trace.svg", "output file")
	exportSVGCmd.Flags().BoolVar(&phaseSVG, "phase", false, "draw the x-z phase portrait")

	selectCmd := &cobra.Command{
		Use:   "select [burst_duration] [period_seconds]",
		Short: "show the step size and sub-steps chosen for a burst",
		Args:  cobra.ExactArgs(2),
		RunE:  selectStep,
	}
	selectCmd.Flags().StringVar(&strategy, "strategy", "", "selection strategy (tolerance, nearest)")
	selectCmd.Flags().StringVar(&policy, "policy", "", "sub-step policy (calibrated, strict)")

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "print the calibration table",
		Args:  cobra.NoArgs,
		RunE:  printTable,
	}
	tableCmd.Flags().StringVarP(&outPath, "out", "o", "", "also write the table as csv")

	calibrateCmd := &cobra.Command{
		Use:   "calibrate",
		Short: "measure points per burst over a range of step sizes",
		Args:  cobra.NoArgs,
		RunE:  calibrate,
	}
	calibrateCmd.Flags().Float64Var(&calMin, "min", 0.005, "smallest step size")
	calibrateCmd.Flags().Float64Var(&calMax, "max", 0.1, "largest step size")
	calibrateCmd.Flags().IntVar(&calN, "n", 8, "number of step sizes (log spaced)")
	calibrateCmd.Flags().Float64Var(&calDuration, "duration", 3000, "model time per measurement")
	calibrateCmd.Flags().IntVar(&workers, "workers", 0, "parallel measurements (0 = GOMAXPROCS)")
	calibrateCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the measured table as csv")

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation",
		Short: "sweep a parameter and plot membrane potential maxima",
		Args:  cobra.NoArgs,
		RunE:  bifurcation,
	}
	bifurcationCmd.Flags().StringVar(&bifParam, "param", "e", "parameter to sweep")
	bifurcationCmd.Flags().Float64Var(&bifMin, "min", 1.0, "sweep start")
	bifurcationCmd.Flags().Float64Var(&bifMax, "max", 4.0, "sweep end")
	bifurcationCmd.Flags().IntVar(&bifSteps, "steps", 60, "number of parameter values")
	bifurcationCmd.Flags().Float64Var(&bifDt, "dt", 0.01, "integration step")
	bifurcationCmd.Flags().Float64Var(&bifTransient, "transient", 500, "model time discarded")
	bifurcationCmd.Flags().Float64Var(&bifRecord, "record", 1000, "model time searched for maxima")
	bifurcationCmd.Flags().IntVar(&workers, "workers", 0, "parallel sweeps (0 = GOMAXPROCS)")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate the largest Lyapunov exponent",
		Args:  cobra.NoArgs,
		RunE:  lyapunov,
	}
	lyapunovCmd.Flags().Float64Var(&lyapDt, "dt", 0.01, "integration step")
	lyapunovCmd.Flags().Float64Var(&lyapDuration, "duration", 2000, "model time")
	lyapunovCmd.Flags().Float64Var(&excitation, "e", 0, "excitation current (default from config)")
	lyapunovCmd.Flags().StringVar(&lyapIntegrator, "integrator", "", "integrator (default from config)")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "run the same configuration with several integrators",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	addRunFlags(compareCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "replay a scripted sequence of host calls",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().IntVar(&replays, "replay", 1, "replay n times and check the results agree")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "drive the neuron in real time with a terminal monitor",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "phosphor", "color theme")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, phaseCmd, exportCSVCmd, exportJSONCmd,
		exportSVGCmd, selectCmd, tableCmd, calibrateCmd, bifurcationCmd, lyapunovCmd, compareCmd,
		scenarioCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&ticks, "ticks", 0, "number of ticks (default from config)")
	f.Int64Var(&seed, "seed", 0, "random seed for noise stimulus")
	f.StringVar(&integrator, "integrator", integrators.Default, "integrator")
	f.Float64Var(&excitation, "e", 0, "excitation current")
	f.Float64Var(&burst, "burst", 0, "burst duration in seconds (0 = continuous)")
	f.Float64Var(&period, "period", 0, "tick period in seconds")
	f.Float64Var(&timeIncr, "dt", 0, "time increment for continuous mode")
	f.StringVar(&policy, "policy", "", "sub-step policy (calibrated, strict)")
	f.StringVar(&strategy, "strategy", "", "selection strategy (tolerance, nearest)")
	f.StringVar(&stimKind, "stim", "", "stimulus kind (const, step, pulse, noise)")
	f.Float64Var(&stimAmp, "amp", 0, "stimulus amplitude")
	f.Float64Var(&stimStart, "stim-start", 0, "stimulus start (seconds)")
	f.Float64Var(&stimWidth, "stim-width", 0, "pulse width (seconds)")
	f.Float64Var(&stimPeriod, "stim-period", 0, "pulse period (seconds)")
	f.Float64Var(&stimStd, "stim-std", 0, "noise standard deviation")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
