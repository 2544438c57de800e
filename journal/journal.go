// Package journal writes every terminal trade outcome to an append-only
// sink (CSV or SQLite). It is a reporting transport: nothing reads account
// state back out of it.
package journal

import (
	"time"

	"github.com/rustyeddy/tradegate/processor"
	"github.com/shopspring/decimal"
)

type OutcomeRecord struct {
	EntryID   string
	Seq       uint64
	AccountID string
	Symbol    string
	Price     decimal.Decimal
	Quantity  decimal.Decimal
	Notional  decimal.Decimal
	Kind      string
	StopLoss  bool
	Detail    string

	Balance  decimal.Decimal
	Exposure decimal.Decimal

	SubmittedAt time.Time
	ProcessedAt time.Time
}

func FromOutcome(o processor.Outcome) OutcomeRecord {
	t := o.Entry.Trade
	return OutcomeRecord{
		EntryID:     o.Entry.ID,
		Seq:         o.Entry.Seq,
		AccountID:   o.Entry.AccountID,
		Symbol:      t.Symbol,
		Price:       t.Price,
		Quantity:    t.Quantity,
		Notional:    t.Notional(),
		Kind:        string(o.Kind),
		StopLoss:    o.StopLossTriggered,
		Detail:      o.Detail,
		Balance:     o.Balance,
		Exposure:    o.Exposure,
		SubmittedAt: o.Entry.SubmittedAt,
		ProcessedAt: o.ProcessedAt,
	}
}

type Journal interface {
	RecordOutcome(OutcomeRecord) error
	Close() error
}
