// Package market defines the basic market data types shared by the
// simulation and strategy packages.
package market

import "time"

// Bar is one OHLCV sample for a fixed time interval. Bars are immutable
// inputs, ordered by timestamp, one per time step. Gap or duplicate
// detection is the caller's responsibility.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Closes extracts the close series from bars, in bar order.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Highs extracts the high series from bars, in bar order.
func Highs(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low series from bars, in bar order.
func Lows(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}
	return out
}
