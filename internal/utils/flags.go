package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/kea-ledger/internal/model"
)

// SplitFlag is one parsed --split value.
type SplitFlag struct {
	Account string
	Amount  decimal.Decimal
	Memo    string
}

// ParseSplitFlag parses "account:amount[:memo]". Account names may contain
// colons (Assets:Bank), so the amount is the first segment from the right
// that parses as a number.
func ParseSplitFlag(s string) (SplitFlag, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return SplitFlag{}, fmt.Errorf("invalid split '%s' (expected account:amount[:memo])", s)
	}

	for i := len(parts) - 1; i >= 1; i-- {
		amount, err := ParseAmount(parts[i])
		if err != nil {
			continue
		}
		account := strings.TrimSpace(strings.Join(parts[:i], ":"))
		if account == "" {
			return SplitFlag{}, fmt.Errorf("invalid split '%s': account is empty", s)
		}
		return SplitFlag{
			Account: account,
			Amount:  amount,
			Memo:    strings.TrimSpace(strings.Join(parts[i+1:], ":")),
		}, nil
	}

	return SplitFlag{}, fmt.Errorf("invalid split '%s': no amount found", s)
}

// ParseDate reads a YYYY-MM-DD flag; an empty value means today.
func ParseDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return model.Day(time.Now()), nil
	}
	d, err := model.ParseDay(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s' (expected YYYY-MM-DD)", s)
	}
	return d, nil
}

// ParseOptionalDate is ParseDate without the today default.
func ParseOptionalDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return ParseDate(s)
}

// ParseID reads a positive numeric id argument.
func ParseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %s", what, s)
	}
	return id, nil
}

// ParseOptionalAmount maps an empty flag to an invalid NullDecimal.
func ParseOptionalAmount(s string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
