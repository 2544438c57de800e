package trade

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidTrade = errors.New("invalid trade")

// Trade is a buy request for Quantity units of Symbol at Price.
// Values are immutable once built; pass them by value.
type Trade struct {
	Symbol   string
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// New validates and builds a trade.
func New(symbol string, price, quantity decimal.Decimal) (Trade, error) {
	t := Trade{Symbol: symbol, Price: price, Quantity: quantity}
	if err := t.Validate(); err != nil {
		return Trade{}, err
	}
	return t, nil
}

func (t Trade) Validate() error {
	if t.Symbol == "" {
		return fmt.Errorf("%w: symbol is required", ErrInvalidTrade)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("%w: price %s must be positive", ErrInvalidTrade, t.Price)
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity %s must be positive", ErrInvalidTrade, t.Quantity)
	}
	return nil
}

// Notional is the amount at risk: price x quantity.
func (t Trade) Notional() decimal.Decimal {
	return t.Price.Mul(t.Quantity)
}

func (t Trade) String() string {
	return fmt.Sprintf("%s %s @ %s", t.Symbol, t.Quantity, t.Price)
}
