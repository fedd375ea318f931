package strategies

import (
	"fmt"

	talib "github.com/markcheno/go-talib"

	"tradesim/market"
)

// MACD trades signal-line crossovers, with two entry filters: price must be
// above a long EMA trend line and RSI must not be overbought. Exits fire on
// any downward crossover, filters do not apply.
type MACD struct {
	FastPeriod   int
	SlowPeriod   int
	SignalPeriod int
	TrendPeriod  int
	RSIPeriod    int
	RSICeiling   float64
}

func NewMACD() *MACD {
	return &MACD{
		FastPeriod:   12,
		SlowPeriod:   26,
		SignalPeriod: 9,
		TrendPeriod:  200,
		RSIPeriod:    14,
		RSICeiling:   70,
	}
}

func (s *MACD) Name() string {
	return fmt.Sprintf("MACD(%d,%d,%d)", s.FastPeriod, s.SlowPeriod, s.SignalPeriod)
}

func (s *MACD) GenerateSignals(bars []market.Bar) ([]Signal, error) {
	if s.FastPeriod <= 0 || s.SlowPeriod <= s.FastPeriod || s.SignalPeriod <= 0 {
		return nil, fmt.Errorf("macd: bad periods %d/%d/%d", s.FastPeriod, s.SlowPeriod, s.SignalPeriod)
	}

	closes := market.Closes(bars)
	signals := make([]Signal, len(bars))
	if len(bars) <= s.SlowPeriod+s.SignalPeriod {
		return signals, nil
	}

	macd, signalLine, _ := talib.Macd(closes, s.FastPeriod, s.SlowPeriod, s.SignalPeriod)
	trend := talib.Ema(closes, s.TrendPeriod)
	rsi := talib.Rsi(closes, s.RSIPeriod)

	start := s.SlowPeriod + s.SignalPeriod
	for i := start; i < len(bars); i++ {
		crossUp := macd[i] > signalLine[i] && macd[i-1] <= signalLine[i-1]
		crossDown := macd[i] < signalLine[i] && macd[i-1] >= signalLine[i-1]

		switch {
		case crossUp && i >= s.TrendPeriod && closes[i] > trend[i] && rsi[i] < s.RSICeiling:
			signals[i] = SignalLongEntry
		case crossDown:
			signals[i] = SignalExit
		}
	}
	return signals, nil
}
