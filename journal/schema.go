package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	run_id TEXT NOT NULL,
	position_key INTEGER NOT NULL,
	timestamp INTEGER NOT NULL,
	action TEXT NOT NULL,
	amount REAL NOT NULL,
	price REAL NOT NULL,
	reserve REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id, position_key);

CREATE TABLE IF NOT EXISTS summaries (
	run_id TEXT NOT NULL,
	position_key INTEGER NOT NULL,
	entry_time INTEGER NOT NULL,
	exit_time INTEGER NOT NULL,
	hold_time INTEGER NOT NULL,
	entry_price REAL NOT NULL,
	entry_value REAL NOT NULL,
	exit_price REAL NOT NULL,
	amount REAL NOT NULL,
	final_profit REAL NOT NULL,
	pnl TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_summaries_run ON summaries(run_id);

CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	strategy TEXT NOT NULL,
	interval_secs INTEGER NOT NULL,
	start_date INTEGER NOT NULL,
	end_date INTEGER NOT NULL,
	opened_count INTEGER NOT NULL,
	closed_count INTEGER NOT NULL,
	win_count INTEGER NOT NULL,
	lose_count INTEGER NOT NULL,
	win_rate TEXT NOT NULL,
	initial_balance REAL NOT NULL,
	closed_profit REAL NOT NULL,
	realized_profit REAL NOT NULL,
	unrealized_profit REAL NOT NULL,
	fees_paid REAL NOT NULL,
	margin_reserve REAL NOT NULL,
	final_balance REAL NOT NULL,
	balance_change TEXT NOT NULL
);
`
