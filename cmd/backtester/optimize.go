package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradesim/dataset"
	"tradesim/optimize"
)

var optFlags struct {
	dataPath string
	mode     string
	parallel int
	top      int
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Sweep strategy parameters and rank outcomes by profit",
	RunE:  doOptimize,
}

func init() {
	f := optimizeCmd.Flags()
	f.StringVar(&optFlags.dataPath, "data", "", "bar data file (.csv, .csv.xz or .zip)")
	f.StringVar(&optFlags.mode, "mode", "donchian", "sweep mode: donchian or grid")
	f.IntVar(&optFlags.parallel, "parallel", runtime.NumCPU(), "number of concurrent backtests")
	f.IntVar(&optFlags.top, "top", 10, "number of ranked outcomes to print")

	_ = optimizeCmd.MarkFlagRequired("data")
}

func doOptimize(cmd *cobra.Command, args []string) error {
	bars, err := dataset.LoadBars(optFlags.dataPath)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}
	logger.Info("starting sweep",
		zap.String("mode", optFlags.mode),
		zap.Int("bars", len(bars)),
		zap.Int("parallelism", optFlags.parallel))

	var outcomes []optimize.Outcome
	switch optFlags.mode {
	case "donchian":
		outcomes, err = optimize.RunDonchian(cmd.Context(), cfg.Backtest, bars, optimize.DefaultDonchianSweep(), optFlags.parallel)
	case "grid":
		outcomes, err = optimize.RunGrid(cmd.Context(), cfg.Backtest, bars, optimize.DefaultGridSweep(), optFlags.parallel)
	default:
		return fmt.Errorf("unknown mode %q (want donchian or grid)", optFlags.mode)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	n := optFlags.top
	if n <= 0 || n > len(outcomes) {
		n = len(outcomes)
	}
	fmt.Fprintf(out, "%-4s %-52s %14s %9s %9s %7s\n", "#", "params", "profit", "profit%", "maxDD%", "trades")
	for i, o := range outcomes[:n] {
		fmt.Fprintf(out, "%-4d %-52s %14.2f %8.2f%% %8.2f%% %7d\n",
			i+1, o.Label, o.Profit, o.ProfitPct, o.MaxDrawdownPct, o.Trades)
	}
	return nil
}
