package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UnbalancedTransactionError reports splits whose amounts do not sum to zero.
type UnbalancedTransactionError struct {
	Sum decimal.Decimal
}

func (e *UnbalancedTransactionError) Error() string {
	return fmt.Sprintf("splits do not balance: sum is %s, must be 0", e.Sum.String())
}

// EmptySplitsError reports a transaction with fewer than two splits.
type EmptySplitsError struct {
	Count int
}

func (e *EmptySplitsError) Error() string {
	return fmt.Sprintf("transaction must have at least 2 splits (got %d)", e.Count)
}

// InvalidAmountError reports an amount with more decimal places than the
// ledger keeps, or one too large to store in minor units.
type InvalidAmountError struct {
	Amount   decimal.Decimal
	Scale    int32
	TooLarge bool
}

func (e *InvalidAmountError) Error() string {
	if e.TooLarge {
		return fmt.Sprintf("amount %s is out of range (max %s)", e.Amount.String(), MaxAmount.StringFixed(e.Scale))
	}
	return fmt.Sprintf("amount %s has more than %d decimal places", e.Amount.String(), e.Scale)
}

// ReferenceError reports a dangling reference to an account or statement.
// Name is set instead of ID when the reference was made by name.
type ReferenceError struct {
	Entity string
	ID     int64
	Name   string
}

func (e *ReferenceError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s '%s' doesn't exist", e.Entity, e.Name)
	}
	return fmt.Sprintf("%s %d does not exist", e.Entity, e.ID)
}

// NotFoundError reports an unknown id.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}

// AlreadyReversedError reports an attempt to reverse a transaction twice.
type AlreadyReversedError struct {
	TransactionID int64
	ReversedByID  int64
}

func (e *AlreadyReversedError) Error() string {
	return fmt.Sprintf("transaction %d is already reversed by transaction %d", e.TransactionID, e.ReversedByID)
}

// AlreadyVoidError reports an attempt to void a check twice.
type AlreadyVoidError struct {
	CheckID int64
}

func (e *AlreadyVoidError) Error() string {
	return fmt.Sprintf("check %d is already void", e.CheckID)
}

// AlreadyMatchedError reports a conflicting match. ConflictLineID and
// ConflictSplitID name the existing counterpart that blocks the request.
type AlreadyMatchedError struct {
	LineID          int64
	SplitID         int64
	ConflictLineID  int64
	ConflictSplitID int64
}

func (e *AlreadyMatchedError) Error() string {
	if e.ConflictSplitID != 0 {
		return fmt.Sprintf("statement line %d is already matched to split %d", e.LineID, e.ConflictSplitID)
	}
	return fmt.Sprintf("split %d is already matched by statement line %d", e.SplitID, e.ConflictLineID)
}

// NotMatchedError reports an unmatch of a line that has no match.
type NotMatchedError struct {
	LineID int64
}

func (e *NotMatchedError) Error() string {
	return fmt.Sprintf("statement line %d is not matched", e.LineID)
}

// ParseError reports malformed import input. Row is 1-based; zero means the
// position is unknown.
type ParseError struct {
	Source string
	Row    int
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Source
	if e.Row > 0 {
		msg = fmt.Sprintf("%s row %d", msg, e.Row)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: parsing %s %q", msg, e.Field, e.Value)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
