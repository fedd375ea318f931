package journal

import (
	"tradesim/backtest"
	"tradesim/internal/id"
	"tradesim/market"
)

// RecordResult persists a completed run: every fill from the trade log and
// one equity point per bar. Fill IDs are fresh ULIDs, so records from
// successive runs stay distinct and time-ordered.
func RecordResult(j Journal, bars []market.Bar, res backtest.Result) error {
	for _, tr := range res.Trades {
		rec := FillRecord{
			ID:     id.New(),
			Time:   tr.Time,
			Kind:   string(tr.Kind),
			Price:  tr.Price,
			Amount: tr.Amount,
			Fee:    tr.Fee,
		}
		if err := j.RecordFill(rec); err != nil {
			return err
		}
	}

	for i, v := range res.PortfolioValues {
		if i >= len(bars) {
			break
		}
		if err := j.RecordEquity(EquityPoint{Time: bars[i].Time, Value: v}); err != nil {
			return err
		}
	}
	return nil
}
