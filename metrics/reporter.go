// Package metrics answers read-only risk questions about accounts and
// exports them to Prometheus.
package metrics

import (
	"github.com/rustyeddy/tradegate/account"
	"github.com/shopspring/decimal"
)

// Snapshotter is the read side of account.Store.
type Snapshotter interface {
	Snapshot(id string) (account.Account, error)
	IDs() []string
}

type AccountRatio struct {
	AccountID string
	Ratio     decimal.Decimal
}

// Reporter reads copies only; it never holds an account lock once a call
// returns.
type Reporter struct {
	accounts Snapshotter
}

func NewReporter(accounts Snapshotter) *Reporter {
	return &Reporter{accounts: accounts}
}

// RiskExposureRatio is exposure / max exposure, in [0, 1]. It reads 0 right
// after a stop-loss has closed the account's positions.
func (r *Reporter) RiskExposureRatio(id string) (decimal.Decimal, error) {
	a, err := r.accounts.Snapshot(id)
	if err != nil {
		return decimal.Zero, err
	}
	return ExposureRatio(a), nil
}

// Ratios reports every registered account, ordered by id. Accounts
// registered while it runs may or may not be included.
func (r *Reporter) Ratios() []AccountRatio {
	ids := r.accounts.IDs()
	out := make([]AccountRatio, 0, len(ids))
	for _, id := range ids {
		a, err := r.accounts.Snapshot(id)
		if err != nil {
			continue
		}
		out = append(out, AccountRatio{AccountID: id, Ratio: ExposureRatio(a)})
	}
	return out
}

func ExposureRatio(a account.Account) decimal.Decimal {
	if !a.MaxExposure.IsPositive() {
		return decimal.Zero
	}
	return a.Exposure.Div(a.MaxExposure)
}
