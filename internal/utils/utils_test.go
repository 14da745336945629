package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSplitFlag(t *testing.T) {
	tests := []struct {
		in      string
		account string
		amount  string
		memo    string
		wantErr bool
	}{
		{in: "Food:12.50", account: "Food", amount: "12.50"},
		{in: "Assets:Bank:-12.50", account: "Assets:Bank", amount: "-12.50"},
		{in: "Food:12.50:team lunch", account: "Food", amount: "12.50", memo: "team lunch"},
		{in: "Assets:Bank:1,200:rent: march", account: "Assets:Bank", amount: "1200", memo: "rent: march"},
		{in: "Food", wantErr: true},
		{in: ":12", wantErr: true},
		{in: "Food:abc", wantErr: true},
		{in: "Food:0.001", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSplitFlag(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.account, got.Account)
			assert.True(t, got.Amount.Equal(decimal.RequireFromString(tt.amount)), "amount %s", got.Amount)
			assert.Equal(t, tt.memo, got.Memo)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-31", d.Format("2006-01-02"))

	today, err := ParseDate("")
	require.NoError(t, err)
	assert.False(t, today.IsZero())

	_, err = ParseDate("31/01/2025")
	assert.Error(t, err)

	none, err := ParseOptionalDate(" ")
	require.NoError(t, err)
	assert.True(t, none.IsZero())
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42", "transaction")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseID("0", "transaction")
	assert.EqualError(t, err, "invalid transaction ID: 0")
	_, err = ParseID("x", "check")
	assert.Error(t, err)
}

func TestAmounts(t *testing.T) {
	assert.Equal(t, "-1500.00", FormatAmount(decimal.RequireFromString("-1500")))
	assert.Equal(t, "3.50 USD", FormatWithCurrency(decimal.RequireFromString("3.5"), "USD"))
	assert.Equal(t, "3.50", FormatWithCurrency(decimal.RequireFromString("3.5"), ""))

	_, err := ParseAmount("")
	assert.Error(t, err)

	opt, err := ParseOptionalAmount("")
	require.NoError(t, err)
	assert.False(t, opt.Valid)

	opt, err = ParseOptionalAmount("2,450.00")
	require.NoError(t, err)
	assert.True(t, opt.Valid)
	assert.True(t, opt.Decimal.Equal(decimal.RequireFromString("2450")))
}
