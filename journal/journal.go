package journal

import "fmt"

// TradeRecord is one fill: an open, an explicit close, or a ladder
// trigger. Timestamps are unix seconds.
type TradeRecord struct {
	RunID     string
	Key       int
	Timestamp int64
	Action    string // "open long", "close short", "takeprofit long", ...
	Amount    float64
	Price     float64
	Reserve   float64 // margin reserve after the fill
}

// PositionSummary is emitted exactly once, when a position fully closes.
// Positions still open at the end of a run never produce one.
type PositionSummary struct {
	RunID       string
	Key         int
	EntryTime   int64
	ExitTime    int64
	HoldTime    int64
	EntryPrice  float64
	EntryValue  float64
	ExitPrice   float64
	Amount      float64 // initial amount at open
	FinalProfit float64
	PNL         string
}

// RunStats is the end-of-run metadata block.
type RunStats struct {
	RunID    string
	Name     string
	Strategy string
	Interval int64 // bar spacing, seconds

	StartDate int64
	EndDate   int64

	OpenedCount int
	ClosedCount int
	WinCount    int
	LoseCount   int
	WinRate     string

	InitialBalance   float64
	ClosedProfit     float64
	RealizedProfit   float64
	UnrealizedProfit float64
	FeesPaid         float64
	MarginReserve    float64
	FinalBalance     float64
	BalanceChange    string
}

// Recorder is the passive sink for everything a run emits. It never drives
// the simulation.
type Recorder interface {
	RecordTrade(TradeRecord) error
	RecordSummary(PositionSummary) error
	RecordRun(RunStats) error
	Close() error
}

// FormatPNL renders profit as a percentage of the entry notional of the
// closed amount, "N/A%" when the notional is zero.
func FormatPNL(profit, notional float64) string {
	if notional == 0 {
		return "N/A%"
	}
	return fmt.Sprintf("%.3f%%", profit/notional*100)
}

// FormatRate renders a win rate over closed positions, "N/A" when nothing
// closed.
func FormatRate(wins, closed int) string {
	if closed == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", float64(wins)/float64(closed)*100)
}
