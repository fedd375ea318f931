package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{
			name:     "empty_series",
			values:   nil,
			expected: 0,
		},
		{
			name:     "single_value",
			values:   []float64{100},
			expected: 0,
		},
		{
			name:     "monotonic_rise",
			values:   []float64{100, 110, 120},
			expected: 0,
		},
		{
			name:     "peak_then_trough",
			values:   []float64{100, 90, 95, 80, 120},
			expected: 20.0,
		},
		{
			name:     "later_peak_later_trough",
			values:   []float64{100, 200, 150, 180},
			expected: 25.0,
		},
		{
			name:     "full_loss",
			values:   []float64{100, 0},
			expected: 100.0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.expected, MaxDrawdown(tt.values), 1e-12)
		})
	}
}
