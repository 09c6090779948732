package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite journals runs into a single database so results from many
// backtests can be queried side by side.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(run_id, position_key, timestamp, action, amount, price, reserve)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.RunID, t.Key, t.Timestamp, t.Action, t.Amount, t.Price, t.Reserve,
	)
	return err
}

func (j *SQLite) RecordSummary(s PositionSummary) error {
	_, err := j.db.Exec(`
		INSERT INTO summaries
		(run_id, position_key, entry_time, exit_time, hold_time,
		 entry_price, entry_value, exit_price, amount, final_profit, pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Key, s.EntryTime, s.ExitTime, s.HoldTime,
		s.EntryPrice, s.EntryValue, s.ExitPrice, s.Amount, s.FinalProfit, s.PNL,
	)
	return err
}

func (j *SQLite) RecordRun(r RunStats) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, name, strategy, interval_secs, start_date, end_date,
		 opened_count, closed_count, win_count, lose_count, win_rate,
		 initial_balance, closed_profit, realized_profit, unrealized_profit,
		 fees_paid, margin_reserve, final_balance, balance_change)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Name, r.Strategy, r.Interval, r.StartDate, r.EndDate,
		r.OpenedCount, r.ClosedCount, r.WinCount, r.LoseCount, r.WinRate,
		r.InitialBalance, r.ClosedProfit, r.RealizedProfit, r.UnrealizedProfit,
		r.FeesPaid, r.MarginReserve, r.FinalBalance, r.BalanceChange,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
