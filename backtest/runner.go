package backtest

import (
	"fmt"
	"log/slog"

	"github.com/rustyeddy/backsim/journal"
	"github.com/rustyeddy/backsim/market"
	"github.com/rustyeddy/backsim/pkg/id"
	"github.com/rustyeddy/backsim/sim"
	"github.com/rustyeddy/backsim/strategies"
)

// Runner replays a price series bar-by-bar against a strategy and a
// portfolio ledger. Each Run owns an independent ledger, so runners may
// execute in parallel over their own series.
type Runner struct {
	Series   *market.Series
	Strategy strategies.Strategy
	Config   sim.Config
	Recorder journal.Recorder // nil discards
	Logger   *slog.Logger     // nil is silent

	// HistoryWindow is the warm-up offset: the strategy first fires at
	// this bar index and always sees that many prior bars.
	HistoryWindow int

	// CloseAtEnd force-closes anything still open at the final bar
	// close. Off by default: end-of-series positions stay open and are
	// reported as unrealized profit only.
	CloseAtEnd bool
}

// Run executes the replay. For every bar, strategy actions are applied in
// the order returned, then ladder exits fire for every open position in
// ascending key order; this ordering is load-bearing for reproducibility.
func (r *Runner) Run() (journal.RunStats, error) {
	if r.Series == nil || r.Series.Len() == 0 {
		return journal.RunStats{}, fmt.Errorf("backtest: Series is required")
	}
	if r.Strategy == nil {
		return journal.RunStats{}, fmt.Errorf("backtest: Strategy is required")
	}
	if r.HistoryWindow < 0 || r.HistoryWindow >= r.Series.Len() {
		return journal.RunStats{}, fmt.Errorf("backtest: history window %d leaves no bars to replay (series has %d)",
			r.HistoryWindow, r.Series.Len())
	}

	runID := id.New()
	rec := r.Recorder
	if rec == nil {
		rec = journal.Discard{}
	}
	rec = journal.WithRun(rec, runID)

	ledger := sim.NewLedger(r.Config, rec, r.Logger)
	bars := r.Series.Bars

	for i := r.HistoryWindow; i < len(bars); i++ {
		bar := bars[i]
		history := r.Series.Window(i, r.HistoryWindow)

		actions := r.Strategy.OnBar(bar, history, ledger.Snapshot())
		for _, a := range actions {
			ledger.Apply(bar, a)
		}

		ledger.CheckExits(bar)
		ledger.UpdateUnrealized(bar)
	}

	last := bars[len(bars)-1]
	if r.CloseAtEnd {
		ledger.CloseAll(last)
	}
	ledger.MarkToMarket(last)

	stats := r.runStats(runID, ledger)
	if err := rec.RecordRun(stats); err != nil {
		return stats, fmt.Errorf("record run: %w", err)
	}
	return stats, nil
}

func (r *Runner) runStats(runID string, l *sim.Ledger) journal.RunStats {
	s := l.Stats()
	return journal.RunStats{
		RunID:            runID,
		Name:             r.Series.Name,
		Strategy:         r.Strategy.Name(),
		Interval:         r.Series.Interval(),
		StartDate:        r.Series.Start(),
		EndDate:          r.Series.End(),
		OpenedCount:      s.OpenedCount,
		ClosedCount:      s.ClosedCount,
		WinCount:         s.WinCount,
		LoseCount:        s.LoseCount,
		WinRate:          journal.FormatRate(s.WinCount, s.ClosedCount),
		InitialBalance:   s.InitialBalance,
		ClosedProfit:     s.ClosedProfit,
		RealizedProfit:   s.RealizedProfit,
		UnrealizedProfit: s.UnrealizedProfit,
		FeesPaid:         s.FeesPaid,
		MarginReserve:    s.MarginReserve,
		FinalBalance:     s.Balance,
		BalanceChange:    journal.FormatPNL(s.Balance-s.InitialBalance, s.InitialBalance),
	}
}
