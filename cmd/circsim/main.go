package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/circsim/internal/config"
)

var logger = slog.Default()

var (
	dataDir  string
	logLevel string

	// Scenario
	configFile string
	preset     string
	heartRate  float64
	volume     float64
	svr        float64

	// Solver
	samples    int
	tolerance  float64
	maxIter    int
	integrator string

	// Outputs
	pngDir      string
	metricsFile string
	noSave      bool
	column      string
	outPath     string

	// Sweeps
	sweepParam string
	from, to   float64
	steps      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "circsim",
		Short:         "six-compartment cardiovascular cycle simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".circsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "find the steady-state cycle and report it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&pngDir, "png", "", "write PNG figures into this directory")
	runCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus textfile metrics here")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show the summary of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one series column in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "p_left_ventricle", "series column to plot")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a run's series as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run's metadata and series as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenario presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "follow the steady-state search live",
		Args:  cobra.NoArgs,
		RunE:  watchSimulation,
	}
	addScenarioFlags(watchCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same scenario",
		RunE:  compareIntegrators,
	}
	addScenarioFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter and tabulate the indices",
		Args:  cobra.NoArgs,
		RunE:  sweepParameter,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "heart_rate", "parameter to vary")
	sweepCmd.Flags().Float64Var(&from, "from", 60, "first value")
	sweepCmd.Flags().Float64Var(&to, "to", 140, "last value")
	sweepCmd.Flags().IntVar(&steps, "steps", 5, "number of values")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the runs")

	rootCmd.AddCommand(runCmd, listCmd, showCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd, watchCmd, compareCmd, sweepCmd, batchCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "default", "scenario preset")
	cmd.Flags().Float64Var(&heartRate, "hr", config.DefaultHeartRate, "heart rate (beats/min)")
	cmd.Flags().Float64Var(&volume, "volume", config.DefaultStressedVolume, "stressed blood volume (ml)")
	cmd.Flags().Float64Var(&svr, "svr", config.DefaultSVR, "systemic vascular resistance (mmHg·s/ml)")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "samples per cycle")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "steady-state volume tolerance (ml)")
	cmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIterations, "maximum outer iterations")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (rk4, euler)")
}

func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return nil
}

type flagSet interface {
	Changed(name string) bool
}

// buildConfig layers preset, then config file, then explicitly set flags.
func buildConfig(flags flagSet) (*config.Config, error) {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.LoadOver(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if flags.Changed("hr") {
		cfg.HeartRate = heartRate
	}
	if flags.Changed("volume") {
		cfg.StressedVolume = volume
	}
	if flags.Changed("svr") {
		cfg.Resistances.SystemicArterial = svr
	}
	if flags.Changed("samples") {
		cfg.Solver.Samples = samples
	}
	if flags.Changed("tolerance") {
		cfg.Solver.Tolerance = tolerance
	}
	if flags.Changed("max-iter") {
		cfg.Solver.MaxIterations = maxIter
	}
	if flags.Changed("integrator") {
		cfg.Solver.Integrator = integrator
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
