package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/circsim/internal/circulation"
	"github.com/san-kum/circsim/internal/config"
	"github.com/san-kum/circsim/internal/experiment"
	"github.com/san-kum/circsim/internal/figures"
	"github.com/san-kum/circsim/internal/metrics"
	"github.com/san-kum/circsim/internal/sim"
	"github.com/san-kum/circsim/internal/storage"
	"github.com/san-kum/circsim/internal/viz"
)

func openStore() (*storage.Store, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func summaryOf(title string, out *experiment.Outcome) viz.Summary {
	return viz.Summary{
		Title:      title,
		Status:     out.Result.Status,
		Iterations: out.Result.Iterations,
		MaxDrift:   out.Result.Drift.Max(),
		Indices:    out.Indices,
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd.Flags())
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	start := time.Now()

	out, err := experiment.Run(cfg, logger, recorder)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	recorder.ObserveIndices(out.Indices)

	fmt.Println(viz.RenderSummary(summaryOf(cfg.Name, out)))
	fmt.Printf("completed in %v\n", elapsed.Round(time.Millisecond))

	if !noSave {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		runID, err := st.Save(out)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	if pngDir != "" {
		paths, err := figures.SaveAll(pngDir, out)
		if err != nil {
			return err
		}
		logger.Info("figures written", "dir", pngDir, "count", len(paths))
	}

	if metricsFile != "" {
		if err := recorder.WriteTextfile(metricsFile); err != nil {
			return err
		}
		logger.Info("metrics written", "path", metricsFile)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tHR\tSAMPLES\tINTEG\tSTATUS\tITER\tSV\tCO")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%d\t%s\t%s\t%d\t%.1f\t%.2f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.HeartRate,
			run.Samples,
			run.Integrator,
			run.Status,
			run.Iterations,
			run.Indices.StrokeVolume,
			run.Indices.CardiacOutput,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	status, err := sim.ParseStatus(meta.Status)
	if err != nil {
		return err
	}

	fmt.Println(viz.RenderSummary(viz.Summary{
		Title:      fmt.Sprintf("%s (%s, %s)", meta.ID, meta.Preset, meta.Integrator),
		Status:     status,
		Iterations: meta.Iterations,
		MaxDrift:   meta.MaxDrift,
		Indices:    meta.Indices,
	}))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	table, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	values, err := table.Column(column)
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(table.Header, ", "))
	}

	fmt.Println(viz.PlotSeries(values, fmt.Sprintf("%s: %s", args[0], column)))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.CopySeries(args[0], os.Stdout)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	return st.ExportJSON(args[0], outPath)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tHR\tVOLUME\tSVR\tLV EES\tSAMPLES")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.2f\t%.2f\t%d\n",
			name, c.HeartRate, c.StressedVolume, c.Resistances.SystemicArterial, c.LeftVentricle.Ees, c.Solver.Samples)
	}
	return w.Flush()
}

func watchSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd.Flags())
	if err != nil {
		return err
	}

	events := make(chan tea.Msg, 8)
	quit := make(chan struct{})
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	go func() {
		defer close(events)
		out, err := experiment.Run(cfg, quiet, viz.Feed(events, quit))
		if err != nil {
			viz.Send(events, quit, viz.DoneMsg{Err: err})
			return
		}
		viz.Send(events, quit, viz.DoneMsg{Summary: summaryOf(cfg.Name, out)})
	}()

	m := viz.NewWatch(fmt.Sprintf("circsim watch: %s", cfg.Name), cfg.Solver.Tolerance, cfg.Solver.MaxIterations, events)
	_, err = tea.NewProgram(m).Run()
	close(quit)
	return err
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = experiment.NewRegistry().ListIntegrators()
	}

	base, err := buildConfig(cmd.Flags())
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators for %s (%d samples, tolerance %.3g ml)\n\n", base.Name, base.Solver.Samples, base.Solver.Tolerance)
	fmt.Printf("%-10s  %-10s  %5s  %8s  %8s  %8s  %8s\n", "integrator", "status", "iter", "sbp", "dbp", "sv", "time_ms")
	fmt.Println(strings.Repeat("-", 68))

	var traces [][]float64
	for _, name := range names {
		cfg := base.Clone()
		cfg.Solver.Integrator = name

		start := time.Now()
		out, err := experiment.Run(cfg, logger)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		idx := out.Indices
		fmt.Printf("%-10s  %-10s  %5d  %8.2f  %8.2f  %8.2f  %8.1f\n",
			name, out.Result.Status, out.Result.Iterations,
			idx.SystolicPressure, idx.DiastolicPressure, idx.StrokeVolume,
			float64(elapsed.Microseconds())/1000)
		traces = append(traces, sim.Column(out.Result.Series.Pressures, int(circulation.LeftVentricle)))
	}

	if len(traces) > 0 {
		fmt.Println()
		fmt.Println(viz.PlotOverlay(traces, "LV pressure: "+strings.Join(names, " vs ")))
	}
	return nil
}
