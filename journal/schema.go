package journal

// Money columns are TEXT so decimals round-trip exactly.
const Schema = `
CREATE TABLE IF NOT EXISTS outcomes (
	entry_id TEXT PRIMARY KEY,
	seq INTEGER NOT NULL,
	account TEXT NOT NULL,
	symbol TEXT NOT NULL,
	price TEXT NOT NULL,
	quantity TEXT NOT NULL,
	notional TEXT NOT NULL,
	kind TEXT NOT NULL,
	stop_loss INTEGER NOT NULL,
	detail TEXT NOT NULL,
	balance TEXT NOT NULL,
	exposure TEXT NOT NULL,
	submitted_at DATETIME NOT NULL,
	processed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_outcomes_account ON outcomes(account, seq);
`
