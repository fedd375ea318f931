package backtest

// Result summarizes one completed run. PortfolioValues has exactly one
// point per input bar; Trades holds executed fills in execution order.
type Result struct {
	PortfolioValues []float64
	Trades          []TradeLogEntry

	InitialBalance float64
	FinalValue     float64
	Profit         float64
	ProfitPct      float64
	MaxDrawdownPct float64
	TradeCount     int
}

func newResult(initial float64, values []float64, trades []TradeLogEntry) Result {
	final := initial
	if len(values) > 0 {
		final = values[len(values)-1]
	}

	profit := final - initial
	return Result{
		PortfolioValues: values,
		Trades:          trades,
		InitialBalance:  initial,
		FinalValue:      final,
		Profit:          profit,
		ProfitPct:       profit / initial * 100,
		MaxDrawdownPct:  MaxDrawdown(values),
		TradeCount:      len(trades),
	}
}
