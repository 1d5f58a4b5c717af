package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/circsim/internal/automation"
	"github.com/san-kum/circsim/internal/experiment"
)

func sweepParameter(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd.Flags())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:  cfg,
		Param: sweepParam,
		Min:   from,
		Max:   to,
		Steps: steps,
	}, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTATUS\tITER\tSBP\tDBP\tMAP\tSV\tCO\n", sweepParam)
	for _, r := range results {
		idx := r.Indices
		fmt.Fprintf(w, "%.4g\t%s\t%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.2f\n",
			r.Value, r.Status, r.Iterations,
			idx.SystolicPressure, idx.DiastolicPressure, idx.MeanPressure,
			idx.StrokeVolume, idx.CardiacOutput)
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	var sink func(*experiment.Outcome) error
	if !noSave {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sink = func(out *experiment.Outcome) error {
			runID, err := st.Save(out)
			if err != nil {
				return err
			}
			logger.Info("run recorded", "id", runID)
			return nil
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outs, err := automation.RunScenario(ctx, scenario, logger, sink)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSTATUS\tITER\tSBP\tDBP\tSV\tCO")
	for _, out := range outs {
		idx := out.Indices
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\t%.1f\t%.1f\t%.2f\n",
			out.Config.Name, out.Result.Status, out.Result.Iterations,
			idx.SystolicPressure, idx.DiastolicPressure, idx.StrokeVolume, idx.CardiacOutput)
	}
	return w.Flush()
}
