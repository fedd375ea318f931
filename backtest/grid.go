package backtest

import (
	"fmt"

	"tradesim/market"
	"tradesim/strategies"
)

// runGrid executes the resting-order model: the strategy reports which grid
// orders each bar's high/low range filled, and the engine settles them
// against the ledger at maker rates. Grid orders are all-or-nothing: an
// order the ledger cannot cover is dropped silently, with no log entry.
// Resting fills execute at their level price, so no slippage applies.
func (e *Engine) runGrid(bars []market.Bar, strat strategies.GridStrategy) error {
	if err := strat.Setup(bars); err != nil {
		return fmt.Errorf("backtest: grid setup: %w", err)
	}

	for _, bar := range bars {
		for _, o := range strat.CheckExecution(bar.High, bar.Low, bar.Time) {
			switch o.Side {
			case market.Buy:
				if fill, ok := e.ledger.TryBuy(o.Price, o.Amount, e.cfg.MakerFeeRate); ok {
					e.logFill(bar, KindGridBuy, fill)
				}
			case market.Sell:
				if fill, ok := e.ledger.Sell(o.Price, o.Amount, e.cfg.MakerFeeRate); ok {
					e.logFill(bar, KindGridSell, fill)
				}
			}
		}
		e.recordValue(bar)
	}
	return nil
}
