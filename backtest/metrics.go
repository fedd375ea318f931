package backtest

// MaxDrawdown returns the largest peak-to-trough decline of the series as a
// percentage. The peak initializes to the first value; an empty series has
// no drawdown.
func MaxDrawdown(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	peak := values[0]
	maxDD := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		dd := (peak - v) / peak
		if dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD * 100
}
