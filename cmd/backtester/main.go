// Command backtester evaluates trading strategies against historical OHLCV
// data: single runs with a full cost model, parameter sweeps, and optional
// journaling of fills and equity to CSV or SQLite.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradesim/config"
)

var (
	configPath string
	verbose    bool

	cfg    = config.Default()
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "backtester",
	Short: "Evaluate trading strategies against historical bar data",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			loaded, err := config.LoadFromFile(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML/JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose (development) logging")

	rootCmd.AddCommand(runCmd, optimizeCmd, levelsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
