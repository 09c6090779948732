package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rustyeddy/backsim/backtest"
	"github.com/rustyeddy/backsim/config"
	"github.com/rustyeddy/backsim/journal"
	"github.com/rustyeddy/backsim/market"
	"github.com/rustyeddy/backsim/sim"
	"github.com/rustyeddy/backsim/strategies"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest from a config file",
	Long: `Replay a CSV candle file through a strategy using settings from a
configuration file.

The config file specifies the data file, strategy, account parameters,
engine costs and where to record results.

Example:
  backsim run --config examples/configs/ma-cross.yaml`,
	RunE: runRun,
}

var (
	runConfigPath string
	runVerbose    bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "log engine decisions to stderr")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	series, err := market.LoadCSV(cfg.Run.DataFile)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	if cfg.Run.Name != "" {
		series.Name = cfg.Run.Name
	}

	strat, err := strategies.ByName(cfg.Run.Strategy)
	if err != nil {
		return err
	}
	if mc, ok := strat.(*strategies.MACross); ok && cfg.Account.RiskPercent > 0 {
		mc.Equity = cfg.Account.InitialBalance
		mc.RiskPct = cfg.Account.RiskPercent
	}

	rec, err := newRecorder(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer rec.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if runVerbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	fmt.Printf("Running backtest: %s\n", runConfigPath)
	fmt.Printf("  Data: %s (%d bars)\n", cfg.Run.DataFile, series.Len())
	fmt.Printf("  Strategy: %s (window: %d bars)\n", strat.Name(), cfg.Run.HistoryWindow)
	fmt.Printf("  Balance: $%.2f\n\n", cfg.Account.InitialBalance)

	runner := &backtest.Runner{
		Series:   series,
		Strategy: strat,
		Config: sim.Config{
			InitialBalance:      cfg.Account.InitialBalance,
			SlippagePct:         cfg.Engine.SlippagePct,
			TransactionCostPct:  cfg.Engine.TransactionCostPct,
			UseMarginAccounting: cfg.Engine.MarginAccounting,
		},
		Recorder:      rec,
		Logger:        logger,
		HistoryWindow: cfg.Run.HistoryWindow,
		CloseAtEnd:    cfg.Run.CloseAtEnd,
	}

	stats, err := runner.Run()
	if err != nil {
		return fmt.Errorf("run backtest: %w", err)
	}

	printStats(stats)

	switch cfg.Journal.Type {
	case "csv":
		fmt.Printf("\nResults saved to:\n  - %s\n  - %s\n  - %s\n",
			cfg.Journal.TradesFile, cfg.Journal.SummariesFile, cfg.Journal.RunsFile)
	case "sqlite":
		fmt.Printf("\nResults saved to: %s\n", cfg.Journal.DBPath)
	}

	return nil
}

func newRecorder(jc config.JournalConfig) (journal.Recorder, error) {
	switch jc.Type {
	case "csv":
		return journal.NewCSV(jc.TradesFile, jc.SummariesFile, jc.RunsFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return journal.Discard{}, nil
	}
}

func printStats(s journal.RunStats) {
	fmt.Printf("Run %s complete:\n", s.RunID)
	fmt.Printf("  Positions: %d opened, %d closed (%d win / %d lose, win rate %s)\n",
		s.OpenedCount, s.ClosedCount, s.WinCount, s.LoseCount, s.WinRate)
	fmt.Printf("  Realized Profit: $%.2f\n", s.RealizedProfit)
	fmt.Printf("  Unrealized Profit: $%.2f\n", s.UnrealizedProfit)
	fmt.Printf("  Fees Paid: $%.2f\n", s.FeesPaid)
	fmt.Printf("  Final Balance: $%.2f (%s)\n", s.FinalBalance, s.BalanceChange)
}
