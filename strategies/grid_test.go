package strategies

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradesim/market"
)

func newTestGrid(t *testing.T, useEMA bool) *RangeGrid {
	t.Helper()

	g := NewRangeGrid(100, 200, 10, 0.01, useEMA)
	require.NoError(t, g.Setup(nil))
	return g
}

func TestRangeGrid_SetupBuildsEvenLadder(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, false)

	levels := g.Levels()
	require.Len(t, levels, 11)
	for i, lvl := range levels {
		assert.InDelta(t, 100+float64(i)*10, lvl.Price, 1e-9)
		assert.False(t, lvl.Occupied)
	}
}

func TestRangeGrid_SetupRejectsBadRange(t *testing.T) {
	t.Parallel()

	g := NewRangeGrid(200, 100, 10, 0.01, false)
	assert.Error(t, g.Setup(nil))

	g = NewRangeGrid(100, 200, 0, 0.01, false)
	assert.Error(t, g.Setup(nil))

	g = NewRangeGrid(100, 200, 10, 0, false)
	assert.Error(t, g.Setup(nil))
}

func TestRangeGrid_BuyFillsLevelsTouchedByLow(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, false)
	ts := time.Unix(1000, 0)

	orders := g.CheckExecution(150, 145, ts)
	require.Len(t, orders, 6) // levels 150..200 all sit at or above the low

	for i, o := range orders {
		assert.Equal(t, market.Buy, o.Side)
		assert.InDelta(t, 150+float64(i)*10, o.Price, 1e-9)
		assert.InDelta(t, 0.01, o.Amount, 1e-9)
	}
}

func TestRangeGrid_OccupiedLevelDoesNotRebuy(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, false)
	ts := time.Unix(1000, 0)

	first := g.CheckExecution(150, 145, ts)
	require.NotEmpty(t, first)

	// Same range again: everything that could buy is occupied, nothing can
	// sell because the high never reaches the next level up.
	second := g.CheckExecution(150, 145, ts.Add(time.Hour))
	assert.Empty(t, second)
}

func TestRangeGrid_SellAtNextLevelFreesLevel(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, false)
	ts := time.Unix(1000, 0)

	g.CheckExecution(150, 150, ts) // buys 150..200

	orders := g.CheckExecution(161, 150, ts.Add(time.Hour))

	var sells []Order
	for _, o := range orders {
		if o.Side == market.Sell {
			sells = append(sells, o)
		}
	}
	require.Len(t, sells, 1)
	assert.InDelta(t, 160.0, sells[0].Price, 1e-9)

	// The freed level accepts a new buy on the following bar.
	again := g.CheckExecution(150, 150, ts.Add(2*time.Hour))
	require.Len(t, again, 1)
	assert.Equal(t, market.Buy, again[0].Side)
	assert.InDelta(t, 150.0, again[0].Price, 1e-9)
}

func TestRangeGrid_TopLevelNeverSells(t *testing.T) {
	t.Parallel()

	g := newTestGrid(t, false)
	ts := time.Unix(1000, 0)

	g.CheckExecution(200, 200, ts) // occupies the top level only

	orders := g.CheckExecution(10000, 200, ts.Add(time.Hour))
	assert.Empty(t, orders)
}

func TestRangeGrid_EMAFilterSuppressesBuysBelowTrend(t *testing.T) {
	t.Parallel()

	g := NewRangeGrid(100, 200, 10, 0.01, true)
	g.TrendPeriod = 2

	base := time.Unix(0, 0)
	bars := make([]market.Bar, 4)
	for i := range bars {
		bars[i] = market.Bar{Time: base.Add(time.Duration(i) * time.Hour), Close: 1000}
	}
	require.NoError(t, g.Setup(bars))

	// Trend sits at 1000, every level is below it: no buys.
	orders := g.CheckExecution(150, 100, bars[3].Time)
	assert.Empty(t, orders)

	// A timestamp without a trend value resolves to 0 and never blocks.
	orders = g.CheckExecution(150, 145, base.Add(100 * time.Hour))
	assert.NotEmpty(t, orders)
}
