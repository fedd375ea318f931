package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tradesim/dataset"
	"tradesim/strategies"
)

var levelsFlags struct {
	dataPath string
	min      float64
	max      float64
	num      int
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Print the grid ladder for a price range",
	Long: `Print the evenly spaced buy levels a grid strategy would place.
The range comes from --min/--max, or from the low/high of a data file.`,
	RunE: doLevels,
}

func init() {
	f := levelsCmd.Flags()
	f.StringVar(&levelsFlags.dataPath, "data", "", "derive the range from this bar data file")
	f.Float64Var(&levelsFlags.min, "min", 0, "range lower bound")
	f.Float64Var(&levelsFlags.max, "max", 0, "range upper bound")
	f.IntVar(&levelsFlags.num, "num", 50, "number of grid intervals")
}

func doLevels(cmd *cobra.Command, args []string) error {
	lo, hi := levelsFlags.min, levelsFlags.max
	if lo <= 0 || hi <= lo {
		if levelsFlags.dataPath == "" {
			return fmt.Errorf("need --min/--max or --data to derive a range")
		}
		bars, err := dataset.LoadBars(levelsFlags.dataPath)
		if err != nil {
			return fmt.Errorf("load bars: %w", err)
		}
		lo, hi = barRange(bars)
	}

	grid := strategies.NewRangeGrid(lo, hi, levelsFlags.num, 1, false)
	if err := grid.Setup(nil); err != nil {
		return err
	}
	levels := grid.Levels()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "range [%.2f, %.2f], %d intervals, step %.4f\n",
		lo, hi, levelsFlags.num, (hi-lo)/float64(levelsFlags.num))
	for i, lv := range levels {
		fmt.Fprintf(out, "%4d %12.4f\n", i, lv.Price)
	}
	return nil
}
