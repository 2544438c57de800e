package account

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrDuplicateAccount = errors.New("duplicate account")
	ErrAccountNotFound  = errors.New("account not found")
	ErrInvalidAccount   = errors.New("invalid account")
)

// Account is the risk state of one trading account.
//
// Exposure is the notional value of accepted, unclosed trades. It stays in
// [0, MaxExposure] after every committed mutation. StopLoss is a balance
// floor: once Balance drops to it, open exposure is closed out.
type Account struct {
	ID          string
	Balance     decimal.Decimal
	Exposure    decimal.Decimal
	MaxExposure decimal.Decimal
	StopLoss    decimal.Decimal
}

// New returns a flat account (zero exposure).
func New(id string, balance, maxExposure, stopLoss decimal.Decimal) Account {
	return Account{
		ID:          id,
		Balance:     balance,
		Exposure:    decimal.Zero,
		MaxExposure: maxExposure,
		StopLoss:    stopLoss,
	}
}

// Validate checks the static limits and the exposure invariant.
func (a Account) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidAccount)
	}
	if !a.MaxExposure.IsPositive() {
		return fmt.Errorf("%w: max exposure %s must be positive", ErrInvalidAccount, a.MaxExposure)
	}
	if a.Exposure.IsNegative() {
		return fmt.Errorf("%w: exposure %s is negative", ErrInvalidAccount, a.Exposure)
	}
	if a.Exposure.GreaterThan(a.MaxExposure) {
		return fmt.Errorf("%w: exposure %s exceeds max %s", ErrInvalidAccount, a.Exposure, a.MaxExposure)
	}
	return nil
}
