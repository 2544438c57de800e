package trade

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		symbol  string
		price   string
		qty     string
		wantErr string
	}{
		{"valid", "BTCUSD", "50000", "0.1", ""},
		{"empty symbol", "", "1", "1", "symbol is required"},
		{"zero price", "BTCUSD", "0", "1", "price 0 must be positive"},
		{"negative price", "BTCUSD", "-5", "1", "price -5 must be positive"},
		{"zero quantity", "BTCUSD", "10", "0", "quantity 0 must be positive"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tr, err := New(tt.symbol, d(tt.price), d(tt.qty))
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.symbol, tr.Symbol)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTrade))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNotional(t *testing.T) {
	t.Parallel()

	tr, err := New("BTCUSD", d("50000"), d("0.1"))
	require.NoError(t, err)
	assert.True(t, tr.Notional().Equal(d("5000")), "got %s", tr.Notional())
	assert.Equal(t, "BTCUSD 0.1 @ 50000", tr.String())
}
