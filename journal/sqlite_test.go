package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteJournal {
	t.Helper()

	j, err := NewSQLite(filepath.Join(t.TempDir(), "bt.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestSQLiteJournal_RecordAndListFills(t *testing.T) {
	t.Parallel()

	j := newTestSQLite(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	recs := []FillRecord{
		{ID: "01A", Time: base, Kind: "BUY", Price: 100, Amount: 2, Fee: 0.4},
		{ID: "01B", Time: base.Add(time.Hour), Kind: "SELL (SIGNAL)", Price: 110, Amount: 2, Fee: 0.44},
	}
	for _, r := range recs {
		require.NoError(t, j.RecordFill(r))
	}

	got, err := j.ListFillsBetween(base, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "BUY", got[0].Kind)
	assert.Equal(t, "SELL (SIGNAL)", got[1].Kind)
	assert.InDelta(t, 110.0, got[1].Price, 1e-9)

	// Window excludes the end bound.
	got, err = j.ListFillsBetween(base, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "01A", got[0].ID)
}

func TestSQLiteJournal_RecordEquity(t *testing.T) {
	t.Parallel()

	j := newTestSQLite(t)

	require.NoError(t, j.RecordEquity(EquityPoint{
		Time:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Value: 1_000_000,
	}))
}
