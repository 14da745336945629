package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/kea-ledger/internal/constants"
)

// Statement is one bank statement period for an account.
type Statement struct {
	ID          int64
	AccountID   int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	Opening     decimal.Decimal
	Closing     decimal.Decimal
}

// Contains reports whether d falls inside the statement period (inclusive).
func (s Statement) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(Day(s.PeriodStart)) && !d.After(Day(s.PeriodEnd))
}

// MatchStatus tells whether a statement line is linked to a split.
type MatchStatus string

const (
	LineUnmatched MatchStatus = "unmatched"
	LineMatched   MatchStatus = "matched"
)

// StatementLine is one record of external bank activity.
type StatementLine struct {
	ID             int64
	StatementID    int64
	ExternalID     string
	Date           time.Time
	Amount         decimal.Decimal
	Description    string
	MatchedSplitID *int64
}

func (l StatementLine) Status() MatchStatus {
	if l.MatchedSplitID != nil {
		return LineMatched
	}
	return LineUnmatched
}

func (l StatementLine) IsMatched() bool {
	return l.MatchedSplitID != nil
}

// DedupKey identifies an external record for duplicate detection. It is
// either External(id) or Composite(date, amount, description); two keys are
// equal only when both kind and payload match. DedupKey is comparable and
// can be used as a map key.
type DedupKey struct {
	kind        dedupKind
	externalID  string
	date        string
	amount      string
	description string
}

type dedupKind uint8

const (
	dedupExternal dedupKind = iota + 1
	dedupComposite
)

// ExternalKey builds the key for a record carrying an external id (FITID).
func ExternalKey(id string) DedupKey {
	return DedupKey{kind: dedupExternal, externalID: id}
}

// CompositeKey builds the key for a record without an external id.
func CompositeKey(date time.Time, amount decimal.Decimal, description string) DedupKey {
	return DedupKey{
		kind:        dedupComposite,
		date:        FormatDay(date),
		amount:      amount.StringFixed(constants.AmountScale),
		description: description,
	}
}

// KeyOf returns the dedup key of a line: its external id when present,
// otherwise the (date, amount, description) tuple.
func KeyOf(l StatementLine) DedupKey {
	if l.ExternalID != "" {
		return ExternalKey(l.ExternalID)
	}
	return CompositeKey(l.Date, l.Amount, l.Description)
}

func (k DedupKey) IsExternal() bool {
	return k.kind == dedupExternal
}

func (k DedupKey) String() string {
	if k.kind == dedupExternal {
		return fmt.Sprintf("External(%s)", k.externalID)
	}
	return fmt.Sprintf("Composite(%s, %s, %q)", k.date, k.amount, k.description)
}
