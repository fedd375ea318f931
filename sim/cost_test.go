package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradesim/market"
)

func TestCostModel_AdjustedPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		model    CostModel
		price    float64
		side     market.Side
		expected float64
	}{
		{
			name:     "no_costs_buy",
			model:    CostModel{},
			price:    100,
			side:     market.Buy,
			expected: 100,
		},
		{
			name:     "no_costs_sell",
			model:    CostModel{},
			price:    100,
			side:     market.Sell,
			expected: 100,
		},
		{
			name:     "slippage_buy",
			model:    CostModel{SlippageRate: 0.001},
			price:    100,
			side:     market.Buy,
			expected: 100.1,
		},
		{
			name:     "slippage_sell",
			model:    CostModel{SlippageRate: 0.001},
			price:    100,
			side:     market.Sell,
			expected: 99.9,
		},
		{
			name:     "half_spread_buy",
			model:    CostModel{SpreadRate: 0.01},
			price:    100,
			side:     market.Buy,
			expected: 100.5,
		},
		{
			name:     "half_spread_sell",
			model:    CostModel{SpreadRate: 0.01},
			price:    100,
			side:     market.Sell,
			expected: 99.5,
		},
		{
			name:     "spread_then_slippage_buy",
			model:    CostModel{SpreadRate: 0.01, SlippageRate: 0.001},
			price:    100,
			side:     market.Buy,
			expected: 100 * 1.005 * 1.001,
		},
		{
			name:     "no_side_unchanged",
			model:    CostModel{SpreadRate: 0.01, SlippageRate: 0.001},
			price:    100,
			side:     market.NoSide,
			expected: 100,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.model.AdjustedPrice(tt.price, tt.side)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestCostModel_SlippageMonotonicity(t *testing.T) {
	t.Parallel()

	m := CostModel{SlippageRate: 0.0005}
	price := 12345.67

	assert.Greater(t, m.AdjustedPrice(price, market.Buy), price)
	assert.Less(t, m.AdjustedPrice(price, market.Sell), price)
}

func TestCostModel_Fee(t *testing.T) {
	t.Parallel()

	m := CostModel{}

	assert.InDelta(t, 12.0, m.Fee(10000, 0.0012), 1e-9)

	// Negative rate is a maker rebate.
	assert.InDelta(t, -2.0, m.Fee(10000, -0.0002), 1e-9)
}
