// Package sim provides the execution cost model and cash/position ledger
// used by the backtest engine. Both are deterministic: the same inputs
// always produce the same fills.
package sim

import "tradesim/market"

// CostModel converts theoretical prices into executable prices by applying
// half the configured spread plus slippage, and computes fees on notional.
//
// Rates are fractions, not percentages: 0.0005 means 5 basis points.
type CostModel struct {
	SpreadRate   float64 // full spread as a fraction; half is applied per side
	SlippageRate float64
}

// AdjustedPrice returns the executable price for a theoretical price and
// side. Buyers pay more, sellers receive less, no side returns the price
// unchanged.
func (m CostModel) AdjustedPrice(price float64, side market.Side) float64 {
	switch side {
	case market.Buy:
		return price * (1.0 + m.SpreadRate/2.0) * (1.0 + m.SlippageRate)
	case market.Sell:
		return price * (1.0 - m.SpreadRate/2.0) * (1.0 - m.SlippageRate)
	}
	return price
}

// Fee computes the fee on a notional amount. A negative rate is a maker
// rebate: the returned fee is negative and reduces cost or adds to proceeds.
func (m CostModel) Fee(notional, rate float64) float64 {
	return notional * rate
}
