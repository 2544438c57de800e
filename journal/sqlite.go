package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordOutcome(r OutcomeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO outcomes
		(entry_id, seq, account, symbol, price, quantity, notional, kind, stop_loss, detail, balance, exposure, submitted_at, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.EntryID, int64(r.Seq), r.AccountID, r.Symbol,
		r.Price.String(), r.Quantity.String(), r.Notional.String(),
		r.Kind, r.StopLoss, r.Detail,
		r.Balance.String(), r.Exposure.String(),
		r.SubmittedAt.UTC(), r.ProcessedAt.UTC(),
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
