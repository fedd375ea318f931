// Package backtest implements the bar-by-bar simulation engine. It turns a
// stream of strategy decisions into fills, balances and risk-triggered
// exits under a configurable cost model, and produces the portfolio-value
// series and trade log used to judge a strategy before it ever touches a
// live venue.
package backtest

import (
	"fmt"

	"go.uber.org/zap"

	"tradesim/market"
	"tradesim/sim"
	"tradesim/strategies"
)

// Engine drives one strategy over one bar sequence at a time. It owns the
// ledger, trade log and portfolio-value series for the duration of a run
// and fully resets them at the start of every run, so an instance can be
// reused sequentially but never concurrently.
type Engine struct {
	cfg    Config
	cost   sim.CostModel
	ledger *sim.Ledger
	logger *zap.Logger

	trades []TradeLogEntry
	values []float64
}

// New validates and normalizes cfg and returns a ready engine. A nil
// logger is replaced with a no-op one.
func New(cfg Config, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg = cfg.normalize()
	return &Engine{
		cfg:    cfg,
		cost:   sim.CostModel{SpreadRate: cfg.SpreadRate, SlippageRate: cfg.SlippageRate},
		ledger: sim.NewLedger(cfg.InitialBalance),
		logger: logger,
	}, nil
}

// Run simulates strat over bars and returns the completed result. The
// execution model is chosen by capability: a strategy implementing
// strategies.GridStrategy runs in grid mode, one implementing
// strategies.SignalStrategy in signal mode.
//
// Run never aborts on a rejected or zero-size order; those degrade to a
// no-op for that bar and the run always completes.
func (e *Engine) Run(bars []market.Bar, strat strategies.Strategy, opts RunOptions) (Result, error) {
	if strat == nil {
		return Result{}, fmt.Errorf("backtest: strategy is required")
	}

	e.reset(len(bars))

	e.logger.Info("starting backtest",
		zap.String("strategy", strat.Name()),
		zap.Int("bars", len(bars)),
	)

	var err error
	switch s := strat.(type) {
	case strategies.GridStrategy:
		err = e.runGrid(bars, s)
	case strategies.SignalStrategy:
		err = e.runSignal(bars, s, opts)
	default:
		err = fmt.Errorf("backtest: strategy %q implements neither signal nor grid capability", strat.Name())
	}
	if err != nil {
		return Result{}, err
	}

	res := newResult(e.cfg.InitialBalance, e.values, e.trades)

	e.logger.Info("backtest finished",
		zap.Float64("final_value", res.FinalValue),
		zap.Float64("profit_pct", res.ProfitPct),
		zap.Float64("max_drawdown_pct", res.MaxDrawdownPct),
		zap.Int("trades", res.TradeCount),
	)
	return res, nil
}

// reset discards all state from a previous run.
func (e *Engine) reset(bars int) {
	e.ledger.Reset(e.cfg.InitialBalance)
	e.trades = nil
	e.values = make([]float64, 0, bars)
}

func (e *Engine) recordValue(bar market.Bar) {
	e.values = append(e.values, e.ledger.Value(bar.Close))
}

func (e *Engine) logFill(bar market.Bar, kind TradeKind, fill sim.Fill) {
	e.trades = append(e.trades, TradeLogEntry{
		Time:   bar.Time,
		Kind:   kind,
		Price:  fill.Price,
		Amount: fill.Amount,
		Fee:    fill.Fee,
	})
	e.logger.Debug("fill",
		zap.Time("time", bar.Time),
		zap.String("kind", string(kind)),
		zap.Float64("price", fill.Price),
		zap.Float64("amount", fill.Amount),
		zap.Float64("fee", fill.Fee),
	)
}
