package backtest

import "fmt"

// Config holds the cost-model and sizing parameters the engine is
// constructed with. Rates are fractions: 0.0012 means 0.12%.
type Config struct {
	InitialBalance float64 `json:"initial_balance" yaml:"initial_balance"`
	MakerFeeRate   float64 `json:"maker_fee_rate" yaml:"maker_fee_rate"` // negative means rebate
	TakerFeeRate   float64 `json:"taker_fee_rate" yaml:"taker_fee_rate"`
	SlippageRate   float64 `json:"slippage_rate" yaml:"slippage_rate"`
	SpreadRate     float64 `json:"spread_rate" yaml:"spread_rate"`
	FillRatio      float64 `json:"fill_ratio" yaml:"fill_ratio"`
	TradeFraction  float64 `json:"trade_fraction" yaml:"trade_fraction"`
}

// DefaultConfig mirrors the defaults of the production venue this engine
// was tuned against: a small maker rebate and a 0.12% taker fee.
func DefaultConfig() Config {
	return Config{
		InitialBalance: 1_000_000,
		MakerFeeRate:   -0.0002,
		TakerFeeRate:   0.0012,
		SlippageRate:   0.0005,
		SpreadRate:     0,
		FillRatio:      1,
		TradeFraction:  1,
	}
}

// Validate rejects out-of-range parameters. FillRatio and TradeFraction are
// not validated here: normalize clamps them to [0, 1] instead, which is the
// documented behavior for those two knobs.
func (c Config) Validate() error {
	if c.InitialBalance <= 0 {
		return fmt.Errorf("backtest: initial balance must be positive, got %v", c.InitialBalance)
	}
	if c.SlippageRate < 0 {
		return fmt.Errorf("backtest: slippage rate must not be negative, got %v", c.SlippageRate)
	}
	if c.SpreadRate < 0 {
		return fmt.Errorf("backtest: spread rate must not be negative, got %v", c.SpreadRate)
	}
	return nil
}

// normalize clamps FillRatio and TradeFraction into [0, 1].
func (c Config) normalize() Config {
	c.FillRatio = clamp01(c.FillRatio)
	c.TradeFraction = clamp01(c.TradeFraction)
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RunOptions are per-run overlays. The exit thresholds apply to signal-mode
// runs only; nil disables a check entirely.
type RunOptions struct {
	StopLossPct     *float64 // e.g. 0.05 exits 5% below entry
	TakeProfitPct   *float64
	TrailingStopPct *float64

	// TakeProfitFirst flips the same-bar precedence between stop-loss and
	// take-profit. The default (false) keeps the conservative stop-first
	// convention; set it when reproducing runs that used the optimistic one.
	TakeProfitFirst bool
}
