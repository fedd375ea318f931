package strategies

import (
	"fmt"

	talib "github.com/markcheno/go-talib"

	"tradesim/market"
)

// SMACross enters long when the short moving average crosses above the long
// one and exits on the opposite cross.
type SMACross struct {
	ShortWindow int
	LongWindow  int
}

func NewSMACross(short, long int) *SMACross {
	return &SMACross{ShortWindow: short, LongWindow: long}
}

func (s *SMACross) Name() string {
	return fmt.Sprintf("SMA(%d,%d)", s.ShortWindow, s.LongWindow)
}

func (s *SMACross) GenerateSignals(bars []market.Bar) ([]Signal, error) {
	if s.ShortWindow <= 0 || s.LongWindow <= 0 {
		return nil, fmt.Errorf("sma: windows must be positive, got %d/%d", s.ShortWindow, s.LongWindow)
	}
	if s.ShortWindow >= s.LongWindow {
		return nil, fmt.Errorf("sma: short window %d must be below long window %d", s.ShortWindow, s.LongWindow)
	}

	closes := market.Closes(bars)
	signals := make([]Signal, len(bars))
	if len(bars) <= s.LongWindow {
		return signals, nil
	}

	short := talib.Sma(closes, s.ShortWindow)
	long := talib.Sma(closes, s.LongWindow)

	// Crosses are only meaningful once both averages have a full window,
	// so the warmup region stays flat.
	for i := s.LongWindow; i < len(bars); i++ {
		switch {
		case short[i] > long[i] && short[i-1] <= long[i-1]:
			signals[i] = SignalLongEntry
		case short[i] < long[i] && short[i-1] >= long[i-1]:
			signals[i] = SignalExit
		}
	}
	return signals, nil
}
