package journal

import (
	"encoding/csv"
	"os"
	"strconv"
)

// CSV journals trades, summaries, and run metadata to three flat files.
// Rows are flushed per record so a crashed run still leaves usable output.
type CSV struct {
	trades    *csv.Writer
	summaries *csv.Writer
	runs      *csv.Writer
	tf, sf, rf *os.File
}

func NewCSV(tradesPath, summariesPath, runsPath string) (*CSV, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(summariesPath)
	if err != nil {
		tf.Close()
		return nil, err
	}
	rf, err := os.Create(runsPath)
	if err != nil {
		tf.Close()
		sf.Close()
		return nil, err
	}

	j := &CSV{
		trades:    csv.NewWriter(tf),
		summaries: csv.NewWriter(sf),
		runs:      csv.NewWriter(rf),
		tf:        tf,
		sf:        sf,
		rf:        rf,
	}

	if err := j.writeHeaders(); err != nil {
		j.Close()
		return nil, err
	}
	return j, nil
}

func (j *CSV) writeHeaders() error {
	if err := j.trades.Write([]string{
		"run_id", "key", "timestamp", "action", "amount", "price", "reserve",
	}); err != nil {
		return err
	}
	if err := j.summaries.Write([]string{
		"run_id", "key", "entry_time", "exit_time", "hold_time",
		"entry_price", "entry_value", "exit_price", "amount", "final_profit", "pnl",
	}); err != nil {
		return err
	}
	if err := j.runs.Write([]string{
		"run_id", "name", "strategy", "interval", "start_date", "end_date",
		"opened_count", "closed_count", "win_count", "lose_count", "win_rate",
		"initial_balance", "closed_profit", "realized_profit", "unrealized_profit",
		"fees_paid", "margin_reserve", "final_balance", "balance_change",
	}); err != nil {
		return err
	}
	j.flush()
	return j.err()
}

func (j *CSV) RecordTrade(t TradeRecord) error {
	if err := j.trades.Write([]string{
		t.RunID,
		strconv.Itoa(t.Key),
		strconv.FormatInt(t.Timestamp, 10),
		t.Action,
		f(t.Amount),
		f(t.Price),
		f(t.Reserve),
	}); err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSV) RecordSummary(s PositionSummary) error {
	if err := j.summaries.Write([]string{
		s.RunID,
		strconv.Itoa(s.Key),
		strconv.FormatInt(s.EntryTime, 10),
		strconv.FormatInt(s.ExitTime, 10),
		strconv.FormatInt(s.HoldTime, 10),
		f(s.EntryPrice),
		f(s.EntryValue),
		f(s.ExitPrice),
		f(s.Amount),
		f(s.FinalProfit),
		s.PNL,
	}); err != nil {
		return err
	}
	j.summaries.Flush()
	return j.summaries.Error()
}

func (j *CSV) RecordRun(r RunStats) error {
	if err := j.runs.Write([]string{
		r.RunID,
		r.Name,
		r.Strategy,
		strconv.FormatInt(r.Interval, 10),
		strconv.FormatInt(r.StartDate, 10),
		strconv.FormatInt(r.EndDate, 10),
		strconv.Itoa(r.OpenedCount),
		strconv.Itoa(r.ClosedCount),
		strconv.Itoa(r.WinCount),
		strconv.Itoa(r.LoseCount),
		r.WinRate,
		f(r.InitialBalance),
		f(r.ClosedProfit),
		f(r.RealizedProfit),
		f(r.UnrealizedProfit),
		f(r.FeesPaid),
		f(r.MarginReserve),
		f(r.FinalBalance),
		r.BalanceChange,
	}); err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSV) Close() error {
	j.flush()
	if err := j.err(); err != nil {
		return err
	}
	for _, file := range []*os.File{j.tf, j.sf, j.rf} {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (j *CSV) flush() {
	j.trades.Flush()
	j.summaries.Flush()
	j.runs.Flush()
}

func (j *CSV) err() error {
	if err := j.trades.Error(); err != nil {
		return err
	}
	if err := j.summaries.Error(); err != nil {
		return err
	}
	return j.runs.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
