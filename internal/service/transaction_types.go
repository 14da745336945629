package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/kea-ledger/internal/model"
)

type TransactionType string

const (
	TxTypeExpense  TransactionType = "Expense"
	TxTypeIncome   TransactionType = "Income"
	TxTypeTransfer TransactionType = "Transfer"
	TxTypeReversal TransactionType = "Reversal"
	TxTypeOther    TransactionType = "Other"
)

// TransactionSplitInput represents a split entry. AccountName is resolved
// when AccountID is zero.
type TransactionSplitInput struct {
	AccountName string
	AccountID   int64
	Amount      decimal.Decimal
	Memo        string
}

// TransactionInput represents user input for posting a transaction
type TransactionInput struct {
	Date        time.Time
	Description string
	Reference   string
	Splits      []TransactionSplitInput
}

// TransactionDetail represents a transaction with full split details
type TransactionDetail struct {
	*model.Transaction
	Type   TransactionType
	Splits []SplitDetail
}

type SplitDetail struct {
	model.Split
	AccountName string
	AccountType model.AccountType
}

// classify names the kind of transaction from the account types it touches.
func classify(tx *model.Transaction, splits []SplitDetail) TransactionType {
	if tx.ReversesID != nil {
		return TxTypeReversal
	}

	var hasExpense, hasIncome, other bool
	for _, s := range splits {
		switch s.AccountType {
		case model.AccountTypeExpense:
			hasExpense = true
		case model.AccountTypeIncome:
			hasIncome = true
		case model.AccountTypeAsset, model.AccountTypeLiability:
		default:
			other = true
		}
	}

	switch {
	case other || hasExpense && hasIncome:
		return TxTypeOther
	case hasExpense:
		return TxTypeExpense
	case hasIncome:
		return TxTypeIncome
	default:
		return TxTypeTransfer
	}
}
