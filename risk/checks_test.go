package risk

import (
	"testing"

	"github.com/rustyeddy/tradegate/account"
	"github.com/rustyeddy/tradegate/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func acct(balance, exposure, max, stop string) account.Account {
	return account.Account{
		ID:          "user1",
		Balance:     d(balance),
		Exposure:    d(exposure),
		MaxExposure: d(max),
		StopLoss:    d(stop),
	}
}

func tr(t *testing.T, price, qty string) trade.Trade {
	t.Helper()
	x, err := trade.New("BTCUSD", d(price), d(qty))
	require.NoError(t, err)
	return x
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		acct     account.Account
		price    string
		qty      string
		allowed  bool
		reason   Reason
		notional string
	}{
		{"insufficient balance", acct("1000", "0", "5000", "500"), "50000", "0.1", false, ReasonInsufficientBalance, "5000"},
		{"accepted", acct("1000", "0", "5000", "500"), "100", "5", true, ReasonNone, "500"},
		{"exact balance", acct("500", "0", "5000", "0"), "100", "5", true, ReasonNone, "500"},
		{"exposure exceeded", acct("10000", "4800", "5000", "0"), "100", "3", false, ReasonExposureExceeded, "300"},
		{"exact exposure", acct("10000", "4700", "5000", "0"), "100", "3", true, ReasonNone, "300"},
		{"both fail reports balance", acct("100", "4900", "5000", "0"), "100", "2", false, ReasonInsufficientBalance, "200"},
		{"negative balance", acct("-10", "0", "5000", "-100"), "1", "1", false, ReasonInsufficientBalance, "1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			before := tt.acct
			got := Evaluate(tt.acct, tr(t, tt.price, tt.qty))

			assert.Equal(t, tt.allowed, got.Allowed)
			assert.Equal(t, tt.reason, got.Reason)
			assert.True(t, got.Notional.Equal(d(tt.notional)), "notional %s", got.Notional)
			if tt.allowed {
				assert.True(t, got.BalanceDelta.Equal(d(tt.notional).Neg()))
				assert.True(t, got.ExposureDelta.Equal(d(tt.notional)))
				assert.Empty(t, got.Msg)
			} else {
				assert.True(t, got.BalanceDelta.IsZero())
				assert.True(t, got.ExposureDelta.IsZero())
				assert.NotEmpty(t, got.Msg)
			}
			assert.Equal(t, before, tt.acct, "evaluate must not mutate its input")
		})
	}
}

func TestStopLossHit(t *testing.T) {
	t.Parallel()

	assert.True(t, StopLossHit(acct("500", "0", "5000", "500")))
	assert.True(t, StopLossHit(acct("499.99", "0", "5000", "500")))
	assert.False(t, StopLossHit(acct("500.01", "0", "5000", "500")))
}

func TestEvaluateKeepsExposureBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		max := decimal.NewFromInt(rapid.Int64Range(1, 1_000_000).Draw(rt, "max"))
		exposure := decimal.NewFromInt(rapid.Int64Range(0, max.IntPart()).Draw(rt, "exposure"))
		balance := decimal.NewFromInt(rapid.Int64Range(-1000, 2_000_000).Draw(rt, "balance"))
		price := decimal.New(rapid.Int64Range(1, 1_000_000).Draw(rt, "price"), -2)
		qty := decimal.New(rapid.Int64Range(1, 10_000).Draw(rt, "qty"), -1)

		a := account.Account{ID: "p", Balance: balance, Exposure: exposure, MaxExposure: max}
		x := trade.Trade{Symbol: "X", Price: price, Quantity: qty}
		got := Evaluate(a, x)

		if !got.Allowed {
			return
		}
		next := exposure.Add(got.ExposureDelta)
		if next.IsNegative() || next.GreaterThan(max) {
			rt.Fatalf("exposure %s outside [0, %s]", next, max)
		}
		if balance.Add(got.BalanceDelta).IsNegative() {
			rt.Fatalf("accepted trade overdraws balance %s by %s", balance, got.Notional)
		}
	})
}
