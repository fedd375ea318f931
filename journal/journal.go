// Package journal persists backtest output (executed fills and the
// per-bar portfolio-value series) outside the engine. The engine itself
// never touches a journal; callers feed it a finished result.
package journal

import "time"

// FillRecord is one executed fill as persisted.
type FillRecord struct {
	ID     string
	Time   time.Time
	Kind   string
	Price  float64
	Amount float64
	Fee    float64
}

// EquityPoint is one portfolio-value sample, one per bar.
type EquityPoint struct {
	Time  time.Time
	Value float64
}

type Journal interface {
	RecordFill(FillRecord) error
	RecordEquity(EquityPoint) error
	Close() error
}
