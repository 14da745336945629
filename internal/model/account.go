package model

import (
	"fmt"
	"strings"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

// ParseAccountType accepts the full type name or its one-letter code
// (A, L, C, I/R, E).
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "asset", "assets":
		return AccountTypeAsset, nil
	case "l", "liability", "liabilities":
		return AccountTypeLiability, nil
	case "c", "equity":
		return AccountTypeEquity, nil
	case "i", "r", "income", "revenue":
		return AccountTypeIncome, nil
	case "e", "expense", "expenses":
		return AccountTypeExpense, nil
	default:
		return "", fmt.Errorf("invalid account type '%s' (must be asset, liability, equity, income or expense)", s)
	}
}

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// NormalBalance returns +1 for debit-normal accounts (assets, expenses) and
// -1 for credit-normal accounts.
func (t AccountType) NormalBalance() int {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return 1
	default:
		return -1
	}
}

// Account represents a row in the chart of accounts.
type Account struct {
	ID       int64
	Name     string
	Code     string
	Type     AccountType
	ParentID *int64
	IsActive bool
}

// NormalBalance is the sign of the account's normal balance.
func (a Account) NormalBalance() int {
	return a.Type.NormalBalance()
}
