package processor

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradegate/queue"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	Executed                    Kind = "EXECUTED"
	RejectedInsufficientBalance Kind = "REJECTED_INSUFFICIENT_BALANCE"
	RejectedExposureExceeded    Kind = "REJECTED_EXPOSURE_EXCEEDED"
	AccountNotFound             Kind = "ACCOUNT_NOT_FOUND"
)

// Outcome is the terminal result of one queue entry. Every dequeued entry
// produces exactly one.
//
// Balance and Exposure are the account values after the entry was handled;
// they stay zero for AccountNotFound.
type Outcome struct {
	Entry             queue.Entry
	Kind              Kind
	StopLossTriggered bool
	Detail            string

	Balance     decimal.Decimal
	Exposure    decimal.Decimal
	ProcessedAt time.Time
}

func (o Outcome) Accepted() bool { return o.Kind == Executed }

func (o Outcome) String() string {
	t := o.Entry.Trade
	switch o.Kind {
	case Executed:
		s := fmt.Sprintf("Trade executed: %s %s @ %s", t.Symbol, t.Quantity, t.Price)
		if o.StopLossTriggered {
			s += fmt.Sprintf("; Stop-loss triggered for account %s", o.Entry.AccountID)
		}
		return s
	case RejectedInsufficientBalance:
		return "Insufficient balance to place trade"
	case RejectedExposureExceeded:
		return "Trade exceeds maximum exposure"
	case AccountNotFound:
		return "Account not found"
	}
	return string(o.Kind)
}

// Observer receives outcomes on the processor goroutine, after the account
// lock has been released. Slow observers slow the whole pipeline.
type Observer interface {
	OnOutcome(Outcome)
}

type ObserverFunc func(Outcome)

func (f ObserverFunc) OnOutcome(o Outcome) { f(o) }

// Observers fans an outcome out to each observer in order.
type Observers []Observer

func (os Observers) OnOutcome(o Outcome) {
	for _, obs := range os {
		if obs != nil {
			obs.OnOutcome(o)
		}
	}
}
