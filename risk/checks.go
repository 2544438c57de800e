// Package risk decides whether an account can take a trade.
//
// Everything here is pure: functions read an account snapshot and a trade
// and describe the mutation, they never apply it.
package risk

import (
	"fmt"

	"github.com/rustyeddy/tradegate/account"
	"github.com/rustyeddy/tradegate/trade"
	"github.com/shopspring/decimal"
)

type Reason string

const (
	ReasonNone                Reason = ""
	ReasonInsufficientBalance Reason = "INSUFFICIENT_BALANCE"
	ReasonExposureExceeded    Reason = "EXPOSURE_EXCEEDED"
)

// Decision is the verdict for one trade against one account snapshot.
// For an accepted trade the deltas are what the caller must add to
// Balance and Exposure, together.
type Decision struct {
	Allowed bool
	Reason  Reason
	Msg     string

	Notional      decimal.Decimal
	BalanceDelta  decimal.Decimal
	ExposureDelta decimal.Decimal
}

func reject(notional decimal.Decimal, r Reason, msg string) Decision {
	return Decision{
		Reason:        r,
		Msg:           msg,
		Notional:      notional,
		BalanceDelta:  decimal.Zero,
		ExposureDelta: decimal.Zero,
	}
}

// Evaluate checks balance first and exposure second. An account failing
// both is reported as insufficient balance.
func Evaluate(acct account.Account, t trade.Trade) Decision {
	notional := t.Notional()

	if acct.Balance.LessThan(notional) {
		return reject(notional, ReasonInsufficientBalance,
			fmt.Sprintf("balance %s < notional %s", acct.Balance, notional))
	}

	next := acct.Exposure.Add(notional)
	if next.GreaterThan(acct.MaxExposure) {
		return reject(notional, ReasonExposureExceeded,
			fmt.Sprintf("exposure %s + notional %s > max %s", acct.Exposure, notional, acct.MaxExposure))
	}

	return Decision{
		Allowed:       true,
		Notional:      notional,
		BalanceDelta:  notional.Neg(),
		ExposureDelta: notional,
	}
}

// StopLossHit reports whether the balance has fallen to the stop-loss floor.
func StopLossHit(acct account.Account) bool {
	return acct.Balance.LessThanOrEqual(acct.StopLoss)
}
