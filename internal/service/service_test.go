package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/store"
)

type fixture struct {
	svc   *Service
	store *store.Store
	ctx   context.Context

	bank   int64
	food   int64
	salary int64
	rent   int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := store.NewStore(filepath.Join(t.TempDir(), "kea.db"), store.MigrationsFS)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	f := &fixture{
		svc:   NewService(s, config.NewDefault(), nil),
		store: s,
		ctx:   context.Background(),
	}
	f.bank = f.account(t, "Checking", model.AccountTypeAsset)
	f.food = f.account(t, "Food", model.AccountTypeExpense)
	f.salary = f.account(t, "Salary", model.AccountTypeIncome)
	f.rent = f.account(t, "Rent", model.AccountTypeExpense)
	return f
}

func (f *fixture) account(t *testing.T, name string, typ model.AccountType) int64 {
	t.Helper()
	acc, err := f.svc.Account.CreateAccount(f.ctx, AccountInput{Name: name, Type: typ})
	require.NoError(t, err)
	return acc.ID
}

// post books amount from the bank account to counter on date.
func (f *fixture) post(t *testing.T, date time.Time, counter int64, amount string, desc string) *model.Transaction {
	t.Helper()
	tx, err := f.svc.Transaction.Post(f.ctx, TransactionInput{
		Date:        date,
		Description: desc,
		Splits: []TransactionSplitInput{
			{AccountID: counter, Amount: dec(amount).Neg()},
			{AccountID: f.bank, Amount: dec(amount)},
		},
	})
	require.NoError(t, err)
	return tx
}

func (f *fixture) splitCount(t *testing.T) int {
	t.Helper()
	n, err := f.store.CountSplits(f.ctx)
	require.NoError(t, err)
	return n
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
