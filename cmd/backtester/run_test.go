package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradesim/config"
	"tradesim/market"
	"tradesim/strategies"
)

func testBars() []market.Bar {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []market.Bar{
		{Time: start, Open: 100, High: 120, Low: 90, Close: 110},
		{Time: start.Add(time.Hour), Open: 110, High: 150, Low: 80, Close: 140},
	}
}

func TestBuildStrategy_DonchianDefaultsFromConfig(t *testing.T) {
	runFlags.strategy = "donchian"
	runFlags.donchianWindow = 0
	runFlags.donchianATR = -1
	runFlags.stopLossPct = 0
	runFlags.takePctTP = 0
	runFlags.trailingPct = 0

	cfg := config.Default()
	strat, opts, err := buildStrategy(cfg, testBars())
	require.NoError(t, err)

	d, ok := strat.(*strategies.Donchian)
	require.True(t, ok)
	assert.Equal(t, cfg.Strategy.DonchianWindow, d.Window)

	require.NotNil(t, opts.StopLossPct)
	assert.InDelta(t, cfg.Strategy.DonchianSLPct/100, *opts.StopLossPct, 1e-12)
	require.NotNil(t, opts.TakeProfitPct)
	require.NotNil(t, opts.TrailingStopPct)
}

func TestBuildStrategy_FlagsOverrideConfig(t *testing.T) {
	runFlags.strategy = "donchian"
	runFlags.donchianWindow = 48
	runFlags.donchianATR = 0
	runFlags.stopLossPct = 2
	runFlags.takePctTP = 0
	runFlags.trailingPct = 0

	strat, opts, err := buildStrategy(config.Default(), testBars())
	require.NoError(t, err)

	d := strat.(*strategies.Donchian)
	assert.Equal(t, 48, d.Window)
	assert.False(t, d.UseATRFilter)

	require.NotNil(t, opts.StopLossPct)
	assert.InDelta(t, 0.02, *opts.StopLossPct, 1e-12)
}

func TestBuildStrategy_GridRangeFromData(t *testing.T) {
	runFlags.strategy = "grid"
	runFlags.gridMin = 0
	runFlags.gridMax = 0
	runFlags.gridNum = 10
	runFlags.gridAmount = 0.5

	strat, _, err := buildStrategy(config.Default(), testBars())
	require.NoError(t, err)

	g := strat.(*strategies.RangeGrid)
	assert.Equal(t, 80.0, g.RangeMin)
	assert.Equal(t, 150.0, g.RangeMax)
	assert.Equal(t, 10, g.GridNum)
}

func TestBuildStrategy_Unknown(t *testing.T) {
	runFlags.strategy = "martingale"
	_, _, err := buildStrategy(config.Default(), testBars())
	assert.Error(t, err)
}

func TestBarRange(t *testing.T) {
	lo, hi := barRange(testBars())
	assert.Equal(t, 80.0, lo)
	assert.Equal(t, 150.0, hi)
}
