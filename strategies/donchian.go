package strategies

import (
	"fmt"

	talib "github.com/markcheno/go-talib"

	"tradesim/market"
)

// Donchian is a channel breakout strategy: enter long when the bar's high
// breaks the highest high of the previous Window bars, exit when the low
// breaks the lowest low. An optional ATR filter suppresses signals in quiet
// markets where the ATR/close ratio is below the threshold.
type Donchian struct {
	Window       int
	UseATRFilter bool
	ATRPeriod    int
	ATRThreshold float64 // minimum ATR/close ratio, e.g. 0.01 for 1%
}

func NewDonchian(window int, useATR bool, atrThreshold float64) *Donchian {
	return &Donchian{
		Window:       window,
		UseATRFilter: useATR,
		ATRPeriod:    14,
		ATRThreshold: atrThreshold,
	}
}

func (s *Donchian) Name() string {
	return fmt.Sprintf("Donchian(%d)", s.Window)
}

func (s *Donchian) GenerateSignals(bars []market.Bar) ([]Signal, error) {
	if s.Window <= 0 {
		return nil, fmt.Errorf("donchian: window must be positive, got %d", s.Window)
	}
	if s.UseATRFilter && s.ATRPeriod <= 0 {
		return nil, fmt.Errorf("donchian: atr period must be positive, got %d", s.ATRPeriod)
	}

	signals := make([]Signal, len(bars))
	start := s.Window
	if s.UseATRFilter && s.ATRPeriod+1 > start {
		start = s.ATRPeriod + 1
	}
	if len(bars) <= start {
		return signals, nil
	}

	highs := market.Highs(bars)
	lows := market.Lows(bars)
	closes := market.Closes(bars)

	upper := talib.Max(highs, s.Window)
	lower := talib.Min(lows, s.Window)

	var atr []float64
	if s.UseATRFilter {
		atr = talib.Atr(highs, lows, closes, s.ATRPeriod)
	}

	for i := start; i < len(bars); i++ {
		// Channels are shifted by one bar: today's breakout is measured
		// against the channel that excludes today.
		breakUp := highs[i] > upper[i-1]
		breakDown := lows[i] < lower[i-1]

		if s.UseATRFilter {
			if closes[i] <= 0 || atr[i]/closes[i] <= s.ATRThreshold {
				continue
			}
		}

		// A bar breaking both channels resolves to exit.
		switch {
		case breakDown:
			signals[i] = SignalExit
		case breakUp:
			signals[i] = SignalLongEntry
		}
	}
	return signals, nil
}
