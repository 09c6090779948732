package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backsim",
	Short: "A bar-by-bar backtest simulator for single-asset trading strategies",
	Long: `Backsim replays historical OHLCV data against a trading strategy and
tracks the resulting portfolio bar by bar.

It provides tools for:
  - Replaying CSV candle data through pluggable strategies
  - Layered stop-loss / take-profit exit ladders with partial fills
  - Margin or cash accounting with slippage and transaction costs
  - Recording trades, position summaries and run results to CSV or SQLite
  - Risk-based position sizing

Complete documentation is available at https://github.com/rustyeddy/backsim`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
