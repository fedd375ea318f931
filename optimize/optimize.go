// Package optimize sweeps strategy parameter grids over a fixed bar
// history and ranks the outcomes. Every combination runs on its own engine
// instance, so sweeps parallelize freely while each individual run stays
// strictly sequential and deterministic.
package optimize

import (
	"context"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"tradesim/backtest"
	"tradesim/market"
	"tradesim/strategies"
)

// Outcome is one ranked sweep result.
type Outcome struct {
	Label          string
	Profit         float64
	ProfitPct      float64
	MaxDrawdownPct float64
	Trades         int
}

// DonchianParams is one point of the Donchian sweep grid.
type DonchianParams struct {
	Window       int
	ATRThreshold float64
	StopLoss     float64
	TakeProfit   float64
	Trailing     float64
}

// DonchianSweep enumerates the cartesian product of its axes.
type DonchianSweep struct {
	Windows       []int
	ATRThresholds []float64
	StopLosses    []float64
	TakeProfits   []float64
	Trailings     []float64
}

// DefaultDonchianSweep covers the window/volatility/risk grid used for
// 1-hour candles: windows from 5 to 40 days, ATR floors up to 1%.
func DefaultDonchianSweep() DonchianSweep {
	return DonchianSweep{
		Windows:       []int{120, 240, 480, 960},
		ATRThresholds: []float64{0.003, 0.005, 0.01},
		StopLosses:    []float64{0.03, 0.05, 0.08},
		TakeProfits:   []float64{0.05, 0.10, 0.15},
		Trailings:     []float64{0.03, 0.05},
	}
}

func (s DonchianSweep) combinations() []DonchianParams {
	var out []DonchianParams
	for _, w := range s.Windows {
		for _, atr := range s.ATRThresholds {
			for _, sl := range s.StopLosses {
				for _, tp := range s.TakeProfits {
					for _, tr := range s.Trailings {
						out = append(out, DonchianParams{
							Window:       w,
							ATRThreshold: atr,
							StopLoss:     sl,
							TakeProfit:   tp,
							Trailing:     tr,
						})
					}
				}
			}
		}
	}
	return out
}

// RunDonchian evaluates every sweep combination over bars and returns
// outcomes ranked by profit, best first. parallelism bounds the number of
// concurrent runs; values below 1 mean sequential.
func RunDonchian(ctx context.Context, cfg backtest.Config, bars []market.Bar, sweep DonchianSweep, parallelism int) ([]Outcome, error) {
	combos := sweep.combinations()
	results := make([]Outcome, len(combos))

	g, ctx := errgroup.WithContext(ctx)
	if parallelism < 1 {
		parallelism = 1
	}
	g.SetLimit(parallelism)

	for i, p := range combos {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			engine, err := backtest.New(cfg, nil)
			if err != nil {
				return err
			}

			strat := strategies.NewDonchian(p.Window, p.ATRThreshold > 0, p.ATRThreshold)
			opts := backtest.RunOptions{
				StopLossPct:     &p.StopLoss,
				TakeProfitPct:   &p.TakeProfit,
				TrailingStopPct: &p.Trailing,
			}

			res, err := engine.Run(bars, strat, opts)
			if err != nil {
				return err
			}

			results[i] = outcome(strat.Name()+paramSuffix(p), res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rank(results)
	return results, nil
}

// GridSweep enumerates ladder densities and the EMA filter toggle. The
// price range spans the bar history unless set explicitly.
type GridSweep struct {
	GridNums      []int
	EMAFilters    []bool
	AmountPerGrid float64
	RangeMin      float64
	RangeMax      float64
}

func DefaultGridSweep() GridSweep {
	return GridSweep{
		GridNums:      []int{20, 50, 100},
		EMAFilters:    []bool{true, false},
		AmountPerGrid: 0.01,
	}
}

// RunGrid evaluates every ladder configuration over bars and returns
// outcomes ranked by profit, best first.
func RunGrid(ctx context.Context, cfg backtest.Config, bars []market.Bar, sweep GridSweep, parallelism int) ([]Outcome, error) {
	rangeMin, rangeMax := sweep.RangeMin, sweep.RangeMax
	if rangeMin == 0 && rangeMax == 0 {
		rangeMin, rangeMax = barRange(bars)
	}

	type combo struct {
		gridNum int
		useEMA  bool
	}
	var combos []combo
	for _, n := range sweep.GridNums {
		for _, ema := range sweep.EMAFilters {
			combos = append(combos, combo{gridNum: n, useEMA: ema})
		}
	}

	results := make([]Outcome, len(combos))

	g, ctx := errgroup.WithContext(ctx)
	if parallelism < 1 {
		parallelism = 1
	}
	g.SetLimit(parallelism)

	for i, c := range combos {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			engine, err := backtest.New(cfg, nil)
			if err != nil {
				return err
			}

			strat := strategies.NewRangeGrid(rangeMin, rangeMax, c.gridNum, sweep.AmountPerGrid, c.useEMA)
			res, err := engine.Run(bars, strat, backtest.RunOptions{})
			if err != nil {
				return err
			}

			label := strat.Name()
			if c.useEMA {
				label += " ema"
			}
			results[i] = outcome(label, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rank(results)
	return results, nil
}

func outcome(label string, res backtest.Result) Outcome {
	return Outcome{
		Label:          label,
		Profit:         res.Profit,
		ProfitPct:      res.ProfitPct,
		MaxDrawdownPct: res.MaxDrawdownPct,
		Trades:         res.TradeCount,
	}
}

// rank sorts by profit descending; ties keep sweep order so reruns print
// identically.
func rank(results []Outcome) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Profit > results[j].Profit
	})
}

func paramSuffix(p DonchianParams) string {
	return " sl=" + ftoa(p.StopLoss) + " tp=" + ftoa(p.TakeProfit) +
		" trail=" + ftoa(p.Trailing) + " atr=" + ftoa(p.ATRThreshold)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func barRange(bars []market.Bar) (lo, hi float64) {
	for i, b := range bars {
		if i == 0 || b.Low < lo {
			lo = b.Low
		}
		if i == 0 || b.High > hi {
			hi = b.High
		}
	}
	return lo, hi
}
