package risk

import (
	"testing"

	"github.com/rustyeddy/tradegate/trade"
	"github.com/stretchr/testify/assert"
)

func TestHeadroom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		acct string
		want string
	}{
		{"balance bound", "1000", "1000"},
		{"exposure bound", "9000", "2000"},
		{"overdrawn", "-5", "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Headroom(acct(tt.acct, "3000", "5000", "0"))
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestMaxQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		price  string
		places int32
		want   string
	}{
		{"whole units", "300", 0, "3"},
		{"fractional", "300", 2, "3.33"},
		{"btc", "50000", 4, "0.02"},
		{"zero price", "0", 2, "0"},
	}

	a := acct("1000", "0", "5000", "500")
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MaxQuantity(a, d(tt.price), tt.places)
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)

			if got.IsPositive() {
				dec := Evaluate(a, trade.Trade{Symbol: "X", Price: d(tt.price), Quantity: got})
				assert.True(t, dec.Allowed, "sized order must pass: %s", dec.Msg)
			}
		})
	}
}
