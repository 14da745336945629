package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/kea-ledger/internal/constants"
)

// MaxAmount is the largest magnitude that fits in int64 minor units.
var MaxAmount = decimal.New(math.MaxInt64, -constants.AmountScale)

// ValidateAmount rejects amounts the store cannot keep exactly.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(constants.AmountScale)) {
		return &InvalidAmountError{Amount: amount, Scale: constants.AmountScale}
	}
	if amount.Abs().GreaterThan(MaxAmount) {
		return &InvalidAmountError{Amount: amount, Scale: constants.AmountScale, TooLarge: true}
	}
	return nil
}

// ToMinorUnits converts an amount to integer minor units (cents).
// The amount must already satisfy ValidateAmount.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(constants.AmountScale).IntPart()
}

// FromMinorUnits converts stored minor units back to a decimal amount.
func FromMinorUnits(units int64) decimal.Decimal {
	return decimal.New(units, -constants.AmountScale)
}

// Day truncates t to a calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(constants.DateFormat, s)
}

// FormatDay formats a date as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DaysBetween returns the absolute number of whole days between two dates.
func DaysBetween(a, b time.Time) int {
	d := Day(a).Sub(Day(b))
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}
