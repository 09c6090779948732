package journal

import (
	"database/sql"
	"fmt"
)

// GetRun returns the metadata block of a single run.
func (j *SQLite) GetRun(runID string) (RunStats, error) {
	var r RunStats

	row := j.db.QueryRow(`
		SELECT run_id, name, strategy, interval_secs, start_date, end_date,
		       opened_count, closed_count, win_count, lose_count, win_rate,
		       initial_balance, closed_profit, realized_profit, unrealized_profit,
		       fees_paid, margin_reserve, final_balance, balance_change
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&r.RunID, &r.Name, &r.Strategy, &r.Interval, &r.StartDate, &r.EndDate,
		&r.OpenedCount, &r.ClosedCount, &r.WinCount, &r.LoseCount, &r.WinRate,
		&r.InitialBalance, &r.ClosedProfit, &r.RealizedProfit, &r.UnrealizedProfit,
		&r.FeesPaid, &r.MarginReserve, &r.FinalBalance, &r.BalanceChange,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunStats{}, fmt.Errorf("run %q not found", runID)
		}
		return RunStats{}, err
	}
	return r, nil
}

// ListRuns returns every recorded run, newest first. Run IDs are ULIDs,
// so lexicographic order is creation order.
func (j *SQLite) ListRuns() ([]RunStats, error) {
	rows, err := j.db.Query(`
		SELECT run_id, name, strategy, interval_secs, start_date, end_date,
		       opened_count, closed_count, win_count, lose_count, win_rate,
		       initial_balance, closed_profit, realized_profit, unrealized_profit,
		       fees_paid, margin_reserve, final_balance, balance_change
		FROM runs
		ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunStats
	for rows.Next() {
		var r RunStats
		if err := rows.Scan(
			&r.RunID, &r.Name, &r.Strategy, &r.Interval, &r.StartDate, &r.EndDate,
			&r.OpenedCount, &r.ClosedCount, &r.WinCount, &r.LoseCount, &r.WinRate,
			&r.InitialBalance, &r.ClosedProfit, &r.RealizedProfit, &r.UnrealizedProfit,
			&r.FeesPaid, &r.MarginReserve, &r.FinalBalance, &r.BalanceChange,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListTradesByRun returns every fill of a run in chronological order,
// position key breaking ties.
func (j *SQLite) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, position_key, timestamp, action, amount, price, reserve
		FROM trades
		WHERE run_id = ?
		ORDER BY timestamp ASC, position_key ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		if err := rows.Scan(
			&t.RunID, &t.Key, &t.Timestamp, &t.Action, &t.Amount, &t.Price, &t.Reserve,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListSummariesByRun returns the closed-position summaries of a run in
// close order.
func (j *SQLite) ListSummariesByRun(runID string) ([]PositionSummary, error) {
	rows, err := j.db.Query(`
		SELECT run_id, position_key, entry_time, exit_time, hold_time,
		       entry_price, entry_value, exit_price, amount, final_profit, pnl
		FROM summaries
		WHERE run_id = ?
		ORDER BY exit_time ASC, position_key ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PositionSummary
	for rows.Next() {
		var s PositionSummary
		if err := rows.Scan(
			&s.RunID, &s.Key, &s.EntryTime, &s.ExitTime, &s.HoldTime,
			&s.EntryPrice, &s.EntryValue, &s.ExitPrice, &s.Amount, &s.FinalProfit, &s.PNL,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
