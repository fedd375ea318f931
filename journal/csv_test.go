package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradesim/backtest"
	"tradesim/market"
)

func TestCSVJournal_WritesHeadersAndRows(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fillsPath := filepath.Join(dir, "fills.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	j, err := NewCSV(fillsPath, equityPath)
	require.NoError(t, err)

	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordFill(FillRecord{ID: "X1", Time: ts, Kind: "BUY", Price: 100, Amount: 1}))
	require.NoError(t, j.RecordEquity(EquityPoint{Time: ts, Value: 999}))
	require.NoError(t, j.Close())

	fills, err := os.ReadFile(fillsPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(fills)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "fill_id,time,kind,price,amount,fee", lines[0])
	assert.Contains(t, lines[1], "X1")
	assert.Contains(t, lines[1], "BUY")

	equity, err := os.ReadFile(equityPath)
	require.NoError(t, err)
	assert.Contains(t, string(equity), "999")
}

func TestRecordResult_PersistsFillsAndEquity(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	j, err := NewCSV(filepath.Join(dir, "fills.csv"), filepath.Join(dir, "equity.csv"))
	require.NoError(t, err)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := []market.Bar{
		{Time: base, Close: 100},
		{Time: base.Add(time.Hour), Close: 100},
	}
	res := backtest.Result{
		Trades: []backtest.TradeLogEntry{
			{Time: base, Kind: backtest.KindBuy, Price: 100, Amount: 1},
		},
		PortfolioValues: []float64{1000, 1000},
	}

	require.NoError(t, RecordResult(j, bars, res))
	require.NoError(t, j.Close())

	fills, err := os.ReadFile(filepath.Join(dir, "fills.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(fills), "BUY")

	equity, err := os.ReadFile(filepath.Join(dir, "equity.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(equity)), "\n")
	assert.Len(t, lines, 3) // header + one point per bar
}
