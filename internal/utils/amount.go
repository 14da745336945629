package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hance08/kea-ledger/internal/constants"
	"github.com/hance08/kea-ledger/internal/model"
)

// FormatAmount renders an amount with two decimals, e.g. "-1500.00".
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(constants.AmountScale)
}

// FormatWithCurrency appends the currency code when one is set.
func FormatWithCurrency(d decimal.Decimal, currency string) string {
	if currency == "" {
		return FormatAmount(d)
	}
	return fmt.Sprintf("%s %s", FormatAmount(d), currency)
}

// ParseAmount reads a command line amount such as "150", "-3.5" or "1,200.00".
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if clean == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount: %s", s)
	}
	if err := model.ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}
