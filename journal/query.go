package journal

import (
	"database/sql"
	"errors"
	"fmt"
)

const selectOutcome = `
	SELECT entry_id, seq, account, symbol, price, quantity, notional, kind, stop_loss, detail, balance, exposure, submitted_at, processed_at
	FROM outcomes`

type scanner interface {
	Scan(dest ...any) error
}

func scanOutcome(s scanner) (OutcomeRecord, error) {
	var (
		rec OutcomeRecord
		seq int64
	)
	err := s.Scan(
		&rec.EntryID,
		&seq,
		&rec.AccountID,
		&rec.Symbol,
		&rec.Price,
		&rec.Quantity,
		&rec.Notional,
		&rec.Kind,
		&rec.StopLoss,
		&rec.Detail,
		&rec.Balance,
		&rec.Exposure,
		&rec.SubmittedAt,
		&rec.ProcessedAt,
	)
	rec.Seq = uint64(seq)
	return rec, err
}

// GetOutcome returns the outcome recorded for one queue entry.
func (j *SQLite) GetOutcome(entryID string) (OutcomeRecord, error) {
	rec, err := scanOutcome(j.db.QueryRow(selectOutcome+` WHERE entry_id = ?`, entryID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OutcomeRecord{}, fmt.Errorf("outcome %q not found", entryID)
		}
		return OutcomeRecord{}, err
	}
	return rec, nil
}

// ListOutcomes returns outcomes in processing order. An empty accountID
// lists every account.
func (j *SQLite) ListOutcomes(accountID string) ([]OutcomeRecord, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if accountID == "" {
		rows, err = j.db.Query(selectOutcome + ` ORDER BY seq ASC`)
	} else {
		rows, err = j.db.Query(selectOutcome+` WHERE account = ? ORDER BY seq ASC`, accountID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OutcomeRecord
	for rows.Next() {
		rec, err := scanOutcome(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
