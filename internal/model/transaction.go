package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusPosted TransactionStatus = "posted"
)

// Transaction is a balanced set of splits. ReversesID and ReversedByID are
// independent cross-references, never embedded objects.
type Transaction struct {
	ID           int64
	Date         time.Time
	Description  string
	Reference    string
	Status       TransactionStatus
	ReversesID   *int64
	ReversedByID *int64
	CreatedAt    time.Time
	Splits       []Split
}

// IsReversed reports whether another transaction already reverses t.
func (t Transaction) IsReversed() bool {
	return t.ReversedByID != nil
}

// Split is one signed amount attributed to one account.
type Split struct {
	ID            int64
	TransactionID int64
	AccountID     int64
	Amount        decimal.Decimal
	Memo          string
}

// SumSplits adds split amounts with exact decimal arithmetic.
func SumSplits(splits []Split) decimal.Decimal {
	total := decimal.Zero
	for _, s := range splits {
		total = total.Add(s.Amount)
	}
	return total
}

// ValidateSplits checks the structural posting invariants that need no
// store access: at least two splits, representable amounts, zero sum.
func ValidateSplits(splits []Split) error {
	if len(splits) < 2 {
		return &EmptySplitsError{Count: len(splits)}
	}
	for _, s := range splits {
		if err := ValidateAmount(s.Amount); err != nil {
			return err
		}
	}
	if sum := SumSplits(splits); !sum.IsZero() {
		return &UnbalancedTransactionError{Sum: sum}
	}
	return nil
}

// NegateSplits mirrors splits: same accounts, same order, negated amounts.
// The memo is produced per original split.
func NegateSplits(splits []Split, memo func(Split) string) []Split {
	out := make([]Split, 0, len(splits))
	for _, s := range splits {
		neg := Split{
			AccountID: s.AccountID,
			Amount:    s.Amount.Neg(),
		}
		if memo != nil {
			neg.Memo = memo(s)
		}
		out = append(out, neg)
	}
	return out
}

// Posting is a split seen from its account's register: the split together
// with the date and description of its transaction.
type Posting struct {
	Split
	Date        time.Time
	Description string
}
