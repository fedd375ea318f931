package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Default().Validate())
}

func TestLoadFromFile_YAMLOverlaysDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte(`
backtest:
  initial_balance: 500000
  taker_fee_rate: 0.001
strategy:
  donchian_window: 120
`)
	require.NoError(t, os.WriteFile(path, body, 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 500000.0, cfg.Backtest.InitialBalance)
	assert.Equal(t, 0.001, cfg.Backtest.TakerFeeRate)
	assert.Equal(t, 120, cfg.Strategy.DonchianWindow)
	// Untouched fields keep their defaults.
	assert.Equal(t, 5.0, cfg.Strategy.DonchianSLPct)
}

func TestLoadFromFile_JSONFallback(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	body := []byte(`{"backtest": {"initial_balance": 42000, "fill_ratio": 1, "trade_fraction": 1}}`)
	require.NoError(t, os.WriteFile(path, body, 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 42000.0, cfg.Backtest.InitialBalance)
}

func TestLoadFromFile_RejectsInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backtest:\n  initial_balance: -5\n"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestValidate_JournalRequirements(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Journal.Type = "csv"
	assert.Error(t, cfg.Validate())

	cfg.Journal.TradesFile = "trades.csv"
	cfg.Journal.EquityFile = "equity.csv"
	assert.NoError(t, cfg.Validate())

	cfg.Journal = JournalConfig{Type: "sqlite"}
	assert.Error(t, cfg.Validate())
	cfg.Journal.DBPath = "bt.sqlite"
	assert.NoError(t, cfg.Validate())

	cfg.Journal = JournalConfig{Type: "bogus"}
	assert.Error(t, cfg.Validate())
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yml")
	orig := Default()
	orig.Backtest.InitialBalance = 777

	require.NoError(t, orig.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, orig, loaded)
}
