package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckStatus is the lifecycle state of a paper check.
type CheckStatus string

const (
	CheckIssued CheckStatus = "issued"
	CheckVoid   CheckStatus = "void"
)

// Check is a payment instrument tied to the transaction that recorded it.
type Check struct {
	ID                    int64
	AccountID             int64
	TransactionID         int64
	CheckNumber           string
	Payee                 string
	Amount                decimal.Decimal
	IssueDate             time.Time
	MemoLine              string
	Status                CheckStatus
	VoidedByTransactionID *int64
}

func (c Check) IsVoid() bool {
	return c.Status == CheckVoid
}
