package backtest

import "time"

// TradeKind tags a trade log entry with what triggered the fill.
type TradeKind string

const (
	KindBuy              TradeKind = "BUY"
	KindSellSignal       TradeKind = "SELL (SIGNAL)"
	KindSellStopLoss     TradeKind = "SELL (STOP_LOSS)"
	KindSellTakeProfit   TradeKind = "SELL (TAKE_PROFIT)"
	KindSellTrailingStop TradeKind = "SELL (TRAILING_STOP)"
	KindGridBuy          TradeKind = "GRID_BUY"
	KindGridSell         TradeKind = "GRID_SELL"
)

// TradeLogEntry records one executed fill. The log is append-only and holds
// fills only: rejected or skipped orders leave no trace.
type TradeLogEntry struct {
	Time   time.Time
	Kind   TradeKind
	Price  float64
	Amount float64
	Fee    float64
}
