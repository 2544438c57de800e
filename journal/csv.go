package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{
	"entry_id", "seq", "account", "symbol", "price", "quantity", "notional",
	"kind", "stop_loss", "detail", "balance", "exposure", "submitted_at", "processed_at",
}

type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create outcomes csv: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) RecordOutcome(r OutcomeRecord) error {
	err := j.w.Write([]string{
		r.EntryID,
		strconv.FormatUint(r.Seq, 10),
		r.AccountID,
		r.Symbol,
		r.Price.String(),
		r.Quantity.String(),
		r.Notional.String(),
		r.Kind,
		strconv.FormatBool(r.StopLoss),
		r.Detail,
		r.Balance.String(),
		r.Exposure.String(),
		ts(r.SubmittedAt),
		ts(r.ProcessedAt),
	})
	if err != nil {
		return err
	}

	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		j.f.Close()
		return err
	}
	return j.f.Close()
}

func ts(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
