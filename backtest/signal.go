package backtest

import (
	"fmt"

	"tradesim/market"
	"tradesim/strategies"
)

// runSignal executes the market-order model: signals are precomputed for
// the whole run, then each bar is processed in strict order: risk exits
// first, the bar's signal only if no exit fired, and exactly one
// portfolio-value point regardless of the branch taken.
func (e *Engine) runSignal(bars []market.Bar, strat strategies.SignalStrategy, opts RunOptions) error {
	signals, err := strat.GenerateSignals(bars)
	if err != nil {
		return fmt.Errorf("backtest: generate signals: %w", err)
	}
	if len(signals) != len(bars) {
		return fmt.Errorf("backtest: strategy returned %d signals for %d bars", len(signals), len(bars))
	}

	highest := 0.0 // highest price seen since entry, drives the trailing stop

	for i, bar := range bars {
		if pos := e.ledger.Position(); pos.Amount > 0 {
			if bar.High > highest {
				highest = bar.High
			}

			if kind, exitPrice, ok := checkExits(pos.AvgEntryPrice, highest, bar, opts); ok {
				sold := pos.Amount * e.cfg.FillRatio
				if sold <= 0 {
					// Zero-size fill: skip the exit, keep the bar's value,
					// and do not fall through to the signal.
					e.recordValue(bar)
					continue
				}

				px := e.cost.AdjustedPrice(exitPrice, market.Sell)
				if fill, ok := e.ledger.Sell(px, sold, e.cfg.TakerFeeRate); ok {
					e.logFill(bar, kind, fill)
				}
				e.recordValue(bar)
				continue
			}
		}

		e.applySignal(bar, signals[i], &highest)
		e.recordValue(bar)
	}
	return nil
}

func (e *Engine) applySignal(bar market.Bar, sig strategies.Signal, highest *float64) {
	pos := e.ledger.Position()

	switch {
	case sig == strategies.SignalLongEntry && pos.Amount == 0:
		// Size from the current cash balance, not the initial capital.
		budget := e.ledger.Cash() * e.cfg.TradeFraction
		if budget <= 0 {
			return
		}

		px := e.cost.AdjustedPrice(bar.Close, market.Buy)
		intended := budget / (px * (1.0 + e.cfg.TakerFeeRate))
		actual := intended * e.cfg.FillRatio
		if actual <= 0 {
			return
		}

		fill := e.ledger.Buy(px, actual, e.cfg.TakerFeeRate)
		*highest = px
		e.logFill(bar, KindBuy, fill)

	case sig == strategies.SignalExit && pos.Amount > 0:
		sold := pos.Amount * e.cfg.FillRatio
		if sold <= 0 {
			return
		}

		px := e.cost.AdjustedPrice(bar.Close, market.Sell)
		if fill, ok := e.ledger.Sell(px, sold, e.cfg.TakerFeeRate); ok {
			e.logFill(bar, KindSellSignal, fill)
		}
	}
}

// checkExits evaluates the configured exit thresholds against one bar. The
// first condition to fire wins; later checks never override it. Default
// precedence is stop-loss, take-profit, trailing-stop; TakeProfitFirst
// swaps the first two. Fills happen at the threshold price, not at the
// bar extreme that crossed it.
func checkExits(entry, highest float64, bar market.Bar, opts RunOptions) (TradeKind, float64, bool) {
	stop := func() (TradeKind, float64, bool) {
		if opts.StopLossPct == nil {
			return "", 0, false
		}
		th := entry * (1.0 - *opts.StopLossPct)
		if bar.Low <= th {
			return KindSellStopLoss, th, true
		}
		return "", 0, false
	}
	take := func() (TradeKind, float64, bool) {
		if opts.TakeProfitPct == nil {
			return "", 0, false
		}
		th := entry * (1.0 + *opts.TakeProfitPct)
		if bar.High >= th {
			return KindSellTakeProfit, th, true
		}
		return "", 0, false
	}

	first, second := stop, take
	if opts.TakeProfitFirst {
		first, second = take, stop
	}

	if kind, px, ok := first(); ok {
		return kind, px, true
	}
	if kind, px, ok := second(); ok {
		return kind, px, true
	}

	if opts.TrailingStopPct != nil {
		th := highest * (1.0 - *opts.TrailingStopPct)
		if bar.Low <= th {
			return KindSellTrailingStop, th, true
		}
	}
	return "", 0, false
}
