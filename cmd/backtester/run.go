package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradesim/backtest"
	"tradesim/config"
	"tradesim/dataset"
	"tradesim/journal"
	"tradesim/market"
	"tradesim/strategies"
)

var runFlags struct {
	dataPath string
	strategy string

	smaShort int
	smaLong  int

	donchianWindow int
	donchianATR    float64

	gridMin    float64
	gridMax    float64
	gridNum    int
	gridAmount float64
	gridEMA    bool

	stopLossPct float64
	takePctTP   float64
	trailingPct float64
	tpFirst     bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single backtest against a bar data file",
	RunE:  doRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.dataPath, "data", "", "bar data file (.csv, .csv.xz or .zip)")
	f.StringVar(&runFlags.strategy, "strategy", "donchian", "strategy: sma, macd, donchian or grid")

	f.IntVar(&runFlags.smaShort, "sma-short", 50, "SMA cross short window")
	f.IntVar(&runFlags.smaLong, "sma-long", 200, "SMA cross long window")

	f.IntVar(&runFlags.donchianWindow, "donchian-window", 0, "Donchian channel window (0 uses config)")
	f.Float64Var(&runFlags.donchianATR, "donchian-atr", -1, "Donchian ATR threshold in percent (<0 uses config)")

	f.Float64Var(&runFlags.gridMin, "grid-min", 0, "grid range lower bound (0 derives from data)")
	f.Float64Var(&runFlags.gridMax, "grid-max", 0, "grid range upper bound (0 derives from data)")
	f.IntVar(&runFlags.gridNum, "grid-num", 50, "number of grid intervals")
	f.Float64Var(&runFlags.gridAmount, "grid-amount", 0.01, "asset amount bought per grid level")
	f.BoolVar(&runFlags.gridEMA, "grid-ema", false, "gate grid buys on the EMA trend filter")

	f.Float64Var(&runFlags.stopLossPct, "sl", 0, "stop-loss in percent (0 disables)")
	f.Float64Var(&runFlags.takePctTP, "tp", 0, "take-profit in percent (0 disables)")
	f.Float64Var(&runFlags.trailingPct, "trailing", 0, "trailing stop in percent (0 disables)")
	f.BoolVar(&runFlags.tpFirst, "tp-first", false, "evaluate take-profit before stop-loss on the same bar")

	_ = runCmd.MarkFlagRequired("data")
}

func doRun(cmd *cobra.Command, args []string) error {
	bars, err := dataset.LoadBars(runFlags.dataPath)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}
	logger.Info("loaded bars", zap.String("path", runFlags.dataPath), zap.Int("count", len(bars)))

	strat, opts, err := buildStrategy(cfg, bars)
	if err != nil {
		return err
	}

	engine, err := backtest.New(cfg.Backtest, logger)
	if err != nil {
		return err
	}
	res, err := engine.Run(bars, strat, opts)
	if err != nil {
		return fmt.Errorf("run %s: %w", strat.Name(), err)
	}

	if err := writeJournal(cfg.Journal, bars, res); err != nil {
		return err
	}

	printReport(cmd, strat.Name(), res)
	return nil
}

// buildStrategy assembles the strategy and exit options from config defaults
// overridden by flags. Percent flags are whole percentages on the command
// line and become fractions here.
func buildStrategy(cfg *config.Config, bars []market.Bar) (strategies.Strategy, backtest.RunOptions, error) {
	var opts backtest.RunOptions
	if runFlags.stopLossPct > 0 {
		opts.StopLossPct = ptr(runFlags.stopLossPct / 100)
	}
	if runFlags.takePctTP > 0 {
		opts.TakeProfitPct = ptr(runFlags.takePctTP / 100)
	}
	if runFlags.trailingPct > 0 {
		opts.TrailingStopPct = ptr(runFlags.trailingPct / 100)
	}
	opts.TakeProfitFirst = runFlags.tpFirst

	switch runFlags.strategy {
	case "sma":
		return strategies.NewSMACross(runFlags.smaShort, runFlags.smaLong), opts, nil

	case "macd":
		return strategies.NewMACD(), opts, nil

	case "donchian":
		window := cfg.Strategy.DonchianWindow
		if runFlags.donchianWindow > 0 {
			window = runFlags.donchianWindow
		}
		atrPct := cfg.Strategy.DonchianATRPct
		if runFlags.donchianATR >= 0 {
			atrPct = runFlags.donchianATR
		}
		// Config-level risk limits apply unless overridden above.
		if opts.StopLossPct == nil && cfg.Strategy.DonchianSLPct > 0 {
			opts.StopLossPct = ptr(cfg.Strategy.DonchianSLPct / 100)
		}
		if opts.TakeProfitPct == nil && cfg.Strategy.DonchianTPPct > 0 {
			opts.TakeProfitPct = ptr(cfg.Strategy.DonchianTPPct / 100)
		}
		if opts.TrailingStopPct == nil && cfg.Strategy.DonchianTrailingPct > 0 {
			opts.TrailingStopPct = ptr(cfg.Strategy.DonchianTrailingPct / 100)
		}
		return strategies.NewDonchian(window, atrPct > 0, atrPct/100), opts, nil

	case "grid":
		lo, hi := runFlags.gridMin, runFlags.gridMax
		if lo <= 0 || hi <= lo {
			lo, hi = barRange(bars)
		}
		return strategies.NewRangeGrid(lo, hi, runFlags.gridNum, runFlags.gridAmount, runFlags.gridEMA), opts, nil

	default:
		return nil, opts, fmt.Errorf("unknown strategy %q (want sma, macd, donchian or grid)", runFlags.strategy)
	}
}

func writeJournal(jc config.JournalConfig, bars []market.Bar, res backtest.Result) error {
	var (
		j   journal.Journal
		err error
	)
	switch jc.Type {
	case "", "none":
		return nil
	case "csv":
		j, err = journal.NewCSV(jc.TradesFile, jc.EquityFile)
	case "sqlite":
		j, err = journal.NewSQLite(jc.DBPath)
	}
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	if err := journal.RecordResult(j, bars, res); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	logger.Info("journal written", zap.String("type", jc.Type), zap.Int("fills", len(res.Trades)))
	return nil
}

func printReport(cmd *cobra.Command, name string, res backtest.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Strategy:        %s\n", name)
	fmt.Fprintf(out, "Initial balance: %.2f\n", res.InitialBalance)
	fmt.Fprintf(out, "Final value:     %.2f\n", res.FinalValue)
	fmt.Fprintf(out, "Profit:          %.2f (%.2f%%)\n", res.Profit, res.ProfitPct)
	fmt.Fprintf(out, "Max drawdown:    %.2f%%\n", res.MaxDrawdownPct)
	fmt.Fprintf(out, "Trades:          %d\n", res.TradeCount)
}

func barRange(bars []market.Bar) (lo, hi float64) {
	for i, b := range bars {
		if i == 0 || b.Low < lo {
			lo = b.Low
		}
		if i == 0 || b.High > hi {
			hi = b.High
		}
	}
	return lo, hi
}

func ptr(v float64) *float64 { return &v }
