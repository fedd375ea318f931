// Package strategies defines the strategy capability interfaces consumed by
// the backtest engine, plus a few reference implementations.
//
// A strategy implements exactly one of the two capabilities: SignalStrategy
// precomputes a directional signal per bar, GridStrategy maintains a ladder
// of resting orders and reports which of them a bar would have executed.
// The engine selects its execution model by interface assertion, never by
// inspecting concrete types.
package strategies

import (
	"time"

	"tradesim/market"
)

// Signal is a per-bar directional instruction.
type Signal float64

const (
	SignalNone      Signal = 0
	SignalLongEntry Signal = 1
	SignalExit      Signal = -1
)

// Order is a resting order a grid strategy reports as executed for one bar.
// Orders are ephemeral: the engine consumes them immediately.
type Order struct {
	Side   market.Side
	Price  float64
	Amount float64
}

// Strategy is the common surface of all strategies.
type Strategy interface {
	Name() string
}

// SignalStrategy produces one signal per input bar, computed for the whole
// run before simulation begins.
type SignalStrategy interface {
	Strategy
	GenerateSignals(bars []market.Bar) ([]Signal, error)
}

// GridStrategy is set up once with the full bar history, then asked per bar
// which resting orders the bar's high/low range would have filled.
// CheckExecution must be deterministic and must report orders in ascending
// grid-level order.
type GridStrategy interface {
	Strategy
	Setup(bars []market.Bar) error
	CheckExecution(high, low float64, ts time.Time) []Order
}
