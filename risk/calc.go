package risk

import (
	"github.com/rustyeddy/tradegate/account"
	"github.com/shopspring/decimal"
)

// Headroom is how much notional the account can still take: the smaller of
// its balance and its remaining exposure allowance, floored at zero.
func Headroom(acct account.Account) decimal.Decimal {
	room := decimal.Min(acct.Balance, acct.MaxExposure.Sub(acct.Exposure))
	if room.IsNegative() {
		return decimal.Zero
	}
	return room
}

// MaxQuantity sizes an order: the largest quantity at price, truncated to
// places decimals, that Evaluate would accept. Zero when price is not
// positive or there is no headroom.
func MaxQuantity(acct account.Account, price decimal.Decimal, places int32) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	q, _ := Headroom(acct).QuoRem(price, places)
	return q
}
