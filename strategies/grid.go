package strategies

import (
	"fmt"
	"time"

	talib "github.com/markcheno/go-talib"

	"tradesim/market"
)

// GridLevel is one rung of the ladder. Occupied means the position bought
// at this level is still held and waits for a resting sell one level up.
type GridLevel struct {
	Price    float64
	Occupied bool
}

// RangeGrid places GridNum+1 evenly spaced resting buy levels across
// [RangeMin, RangeMax]. A bar whose low touches an unoccupied level fills
// its buy; a bar whose high reaches the next level up sells that inventory
// and frees the level. Levels are created once at Setup and never destroyed.
//
// With UseEMAFilter set, buys below the long EMA trend line are suppressed.
type RangeGrid struct {
	RangeMin      float64
	RangeMax      float64
	GridNum       int
	AmountPerGrid float64
	UseEMAFilter  bool
	TrendPeriod   int

	levels []GridLevel
	trend  map[int64]float64 // unix seconds -> EMA value, 0 while warming up
}

func NewRangeGrid(rangeMin, rangeMax float64, gridNum int, amountPerGrid float64, useEMA bool) *RangeGrid {
	return &RangeGrid{
		RangeMin:      rangeMin,
		RangeMax:      rangeMax,
		GridNum:       gridNum,
		AmountPerGrid: amountPerGrid,
		UseEMAFilter:  useEMA,
		TrendPeriod:   200,
	}
}

func (s *RangeGrid) Name() string {
	return fmt.Sprintf("Grid(%d)", s.GridNum)
}

// Levels exposes the ladder for inspection; the returned slice is the live
// state, callers must not modify it.
func (s *RangeGrid) Levels() []GridLevel { return s.levels }

// Setup builds the ladder and, when the EMA filter is on, precomputes the
// trend series aligned to bar timestamps.
func (s *RangeGrid) Setup(bars []market.Bar) error {
	if s.GridNum <= 0 {
		return fmt.Errorf("grid: grid count must be positive, got %d", s.GridNum)
	}
	if s.RangeMax <= s.RangeMin {
		return fmt.Errorf("grid: range max %v must exceed range min %v", s.RangeMax, s.RangeMin)
	}
	if s.AmountPerGrid <= 0 {
		return fmt.Errorf("grid: amount per grid must be positive, got %v", s.AmountPerGrid)
	}

	step := (s.RangeMax - s.RangeMin) / float64(s.GridNum)
	s.levels = make([]GridLevel, s.GridNum+1)
	for i := range s.levels {
		s.levels[i] = GridLevel{Price: s.RangeMin + float64(i)*step}
	}

	s.trend = nil
	if s.UseEMAFilter {
		s.trend = make(map[int64]float64, len(bars))
		if len(bars) > 0 {
			ema := talib.Ema(market.Closes(bars), s.TrendPeriod)
			for i, b := range bars {
				if i < s.TrendPeriod-1 {
					// Not warmed up yet; a zero trend never blocks buys.
					continue
				}
				s.trend[b.Time.Unix()] = ema[i]
			}
		}
	}
	return nil
}

// CheckExecution walks the ladder in ascending price order and reports the
// resting orders this bar's range would have filled. Each fill flips the
// level's occupancy, so a level cannot buy twice without selling in between.
func (s *RangeGrid) CheckExecution(high, low float64, ts time.Time) []Order {
	var out []Order

	trend := 0.0
	if s.UseEMAFilter {
		trend = s.trend[ts.Unix()]
	}

	for i := range s.levels {
		lvl := &s.levels[i]
		if !lvl.Occupied {
			if low > lvl.Price {
				continue
			}
			if s.UseEMAFilter && lvl.Price < trend {
				continue
			}
			out = append(out, Order{Side: market.Buy, Price: lvl.Price, Amount: s.AmountPerGrid})
			lvl.Occupied = true
		} else if i+1 < len(s.levels) {
			next := s.levels[i+1].Price
			if high >= next {
				out = append(out, Order{Side: market.Sell, Price: next, Amount: s.AmountPerGrid})
				lvl.Occupied = false
			}
		}
	}
	return out
}
