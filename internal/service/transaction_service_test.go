package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/kea-ledger/internal/constants"
	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/store"
)

func TestPost_Balanced(t *testing.T) {
	f := newFixture(t)

	tx, err := f.svc.Transaction.Post(f.ctx, TransactionInput{
		Date:        day(2025, 1, 5),
		Description: "Groceries",
		Splits: []TransactionSplitInput{
			{AccountID: f.food, Amount: dec("100.00")},
			{AccountID: f.bank, Amount: dec("-100.00")},
		},
	})
	require.NoError(t, err)
	require.Len(t, tx.Splits, 2)
	assert.NotZero(t, tx.ID)
	assert.Equal(t, f.food, tx.Splits[0].AccountID)
	assert.Equal(t, f.bank, tx.Splits[1].AccountID)

	stored, err := f.svc.Transaction.GetTransactionByID(f.ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, model.SumSplits(stored.Splits).IsZero())
	assert.Equal(t, tx.Splits[0].ID, stored.Splits[0].ID)
}

func TestPost_ByAccountName(t *testing.T) {
	f := newFixture(t)

	tx, err := f.svc.Transaction.Post(f.ctx, TransactionInput{
		Date: day(2025, 1, 5),
		Splits: []TransactionSplitInput{
			{AccountName: "Food", Amount: dec("3.50")},
			{AccountName: "Checking", Amount: dec("-3.50")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, f.food, tx.Splits[0].AccountID)

	_, err = f.svc.Transaction.Post(f.ctx, TransactionInput{
		Splits: []TransactionSplitInput{
			{AccountName: "Nope", Amount: dec("1")},
			{AccountName: "Checking", Amount: dec("-1")},
		},
	})
	var re *model.ReferenceError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "Nope", re.Name)
	assert.Contains(t, err.Error(), "split #1: account 'Nope' doesn't exist")
}

func TestPost_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		splits func(f *fixture) []TransactionSplitInput
		check  func(t *testing.T, err error)
	}{
		{
			name: "unbalanced by one cent",
			splits: func(f *fixture) []TransactionSplitInput {
				return []TransactionSplitInput{
					{AccountID: f.food, Amount: dec("100.00")},
					{AccountID: f.bank, Amount: dec("-99.99")},
				}
			},
			check: func(t *testing.T, err error) {
				var ue *model.UnbalancedTransactionError
				require.True(t, errors.As(err, &ue))
				assert.True(t, ue.Sum.Equal(dec("0.01")))
			},
		},
		{
			name: "single split",
			splits: func(f *fixture) []TransactionSplitInput {
				return []TransactionSplitInput{{AccountID: f.food, Amount: dec("0")}}
			},
			check: func(t *testing.T, err error) {
				var ee *model.EmptySplitsError
				require.True(t, errors.As(err, &ee))
				assert.Equal(t, 1, ee.Count)
			},
		},
		{
			name: "unknown account",
			splits: func(f *fixture) []TransactionSplitInput {
				return []TransactionSplitInput{
					{AccountID: f.food, Amount: dec("5")},
					{AccountID: 9999, Amount: dec("-5")},
				}
			},
			check: func(t *testing.T, err error) {
				var re *model.ReferenceError
				require.True(t, errors.As(err, &re))
				assert.Equal(t, int64(9999), re.ID)
			},
		},
		{
			name: "amount beyond storable range",
			splits: func(f *fixture) []TransactionSplitInput {
				return []TransactionSplitInput{
					{AccountID: f.food, Amount: dec("100000000000000000.00")},
					{AccountID: f.bank, Amount: dec("-100000000000000000.00")},
				}
			},
			check: func(t *testing.T, err error) {
				var ie *model.InvalidAmountError
				require.True(t, errors.As(err, &ie))
				assert.True(t, ie.TooLarge)
			},
		},
		{
			name: "sub-cent amount",
			splits: func(f *fixture) []TransactionSplitInput {
				return []TransactionSplitInput{
					{AccountID: f.food, Amount: dec("0.005")},
					{AccountID: f.bank, Amount: dec("-0.005")},
				}
			},
			check: func(t *testing.T, err error) {
				var ie *model.InvalidAmountError
				assert.True(t, errors.As(err, &ie))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			before := f.splitCount(t)

			_, err := f.svc.Transaction.Post(f.ctx, TransactionInput{Date: day(2025, 1, 5), Splits: tt.splits(f)})
			tt.check(t, err)

			assert.Equal(t, before, f.splitCount(t), "no split rows may survive a rejected post")
			recent, err := f.svc.Transaction.GetRecentTransactions(f.ctx, 10)
			require.NoError(t, err)
			assert.Empty(t, recent)
		})
	}
}

func TestReverse_MirrorsAndLinks(t *testing.T) {
	f := newFixture(t)

	orig, err := f.svc.Transaction.Post(f.ctx, TransactionInput{
		Date:        day(2025, 1, 10),
		Description: "Split dinner",
		Splits: []TransactionSplitInput{
			{AccountID: f.food, Amount: dec("60.00")},
			{AccountID: f.rent, Amount: dec("40.00")},
			{AccountID: f.bank, Amount: dec("-100.00")},
		},
	})
	require.NoError(t, err)

	rev, err := f.svc.Transaction.Reverse(f.ctx, orig.ID, day(2025, 1, 12), "")
	require.NoError(t, err)

	require.Len(t, rev.Splits, len(orig.Splits))
	for i, s := range orig.Splits {
		assert.Equal(t, s.AccountID, rev.Splits[i].AccountID)
		assert.True(t, rev.Splits[i].Amount.Equal(s.Amount.Neg()))
	}
	assert.Equal(t, "2025-01-12", model.FormatDay(rev.Date))
	assert.Equal(t, "Reversal of tx 1: Split dinner", rev.Description)
	assert.Equal(t, "REV-1", rev.Reference)
	require.NotNil(t, rev.ReversesID)
	assert.Equal(t, orig.ID, *rev.ReversesID)

	stored, err := f.svc.Transaction.GetTransactionByID(f.ctx, orig.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ReversedByID)
	assert.Equal(t, rev.ID, *stored.ReversedByID)

	bal, err := f.svc.Account.Balance(f.ctx, f.bank)
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func TestReverse_Twice(t *testing.T) {
	f := newFixture(t)
	orig := f.post(t, day(2025, 1, 10), f.food, "-20.00", "Lunch")

	first, err := f.svc.Transaction.Reverse(f.ctx, orig.ID, day(2025, 1, 11), "oops")
	require.NoError(t, err)
	assert.Equal(t, "oops", first.Description)
	splitsAfterFirst := f.splitCount(t)

	_, err = f.svc.Transaction.Reverse(f.ctx, orig.ID, day(2025, 1, 12), "")
	var ae *model.AlreadyReversedError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, first.ID, ae.ReversedByID)
	assert.Equal(t, splitsAfterFirst, f.splitCount(t))
}

func TestReverse_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Transaction.Reverse(f.ctx, 404, day(2025, 1, 1), "")
	var nf *model.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, int64(404), nf.ID)
}

func TestGetTransactionDetail(t *testing.T) {
	f := newFixture(t)
	tx := f.post(t, day(2025, 1, 3), f.food, "-12.00", "Lunch")

	detail, err := f.svc.Transaction.GetTransactionDetail(f.ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, TxTypeExpense, detail.Type)
	require.Len(t, detail.Splits, 2)
	assert.Equal(t, "Food", detail.Splits[0].AccountName)

	rev, err := f.svc.Transaction.Reverse(f.ctx, tx.ID, day(2025, 1, 4), "")
	require.NoError(t, err)
	detail, err = f.svc.Transaction.GetTransactionDetail(f.ctx, rev.ID)
	require.NoError(t, err)
	assert.Equal(t, TxTypeReversal, detail.Type)

	salary := f.post(t, day(2025, 1, 5), f.salary, "2000.00", "Payday")
	detail, err = f.svc.Transaction.GetTransactionDetail(f.ctx, salary.ID)
	require.NoError(t, err)
	assert.Equal(t, TxTypeIncome, detail.Type)
}

func TestAccountService(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Account.CreateAccount(f.ctx, AccountInput{Name: "Checking", Type: model.AccountTypeAsset})
	assert.Error(t, err)

	parent := f.bank
	sub, err := f.svc.Account.CreateAccount(f.ctx, AccountInput{Name: "Checking:Joint", Code: "1011", Type: model.AccountTypeAsset, ParentID: &parent})
	require.NoError(t, err)
	assert.True(t, sub.IsActive)

	missing := int64(777)
	_, err = f.svc.Account.CreateAccount(f.ctx, AccountInput{Name: "Orphan", Type: model.AccountTypeAsset, ParentID: &missing})
	var re *model.ReferenceError
	assert.True(t, errors.As(err, &re))

	_, err = f.svc.Account.CreateAccount(f.ctx, AccountInput{Name: "Bad", Type: "x"})
	assert.Error(t, err)

	acc, err := f.svc.Account.ResolveAccount(f.ctx, "Food")
	require.NoError(t, err)
	assert.Equal(t, f.food, acc.ID)

	acc, err = f.svc.Account.ResolveAccount(f.ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), acc.ID)

	_, err = f.svc.Account.ResolveAccount(f.ctx, "Nowhere")
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "Nowhere", re.Name)

	_, err = f.svc.Account.Balance(f.ctx, 999)
	var nf *model.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestAccountService_OpeningBalance(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Account.CreateAccount(f.ctx, AccountInput{
		Name:           constants.SystemAccountOpeningBalance,
		Type:           model.AccountTypeEquity,
		OpeningBalance: dec("10.00"),
	})
	require.Error(t, err)
	_, err = f.svc.Account.GetAccountByName(f.ctx, constants.SystemAccountOpeningBalance)
	require.ErrorIs(t, err, store.ErrRecordNotFound)

	savings, err := f.svc.Account.CreateAccount(f.ctx, AccountInput{
		Name:           "Savings",
		Type:           model.AccountTypeAsset,
		OpeningBalance: dec("1500.00"),
		OpeningDate:    day(2024, 1, 1),
	})
	require.NoError(t, err)

	bal, err := f.svc.Account.Balance(f.ctx, savings.ID)
	require.NoError(t, err)
	assert.True(t, dec("1500.00").Equal(bal), bal.String())

	equity, err := f.svc.Account.GetAccountByName(f.ctx, constants.SystemAccountOpeningBalance)
	require.NoError(t, err)
	assert.Equal(t, model.AccountTypeEquity, equity.Type)

	card, err := f.svc.Account.CreateAccount(f.ctx, AccountInput{
		Name:           "Visa",
		Type:           model.AccountTypeLiability,
		OpeningBalance: dec("200.00"),
	})
	require.NoError(t, err)
	bal, err = f.svc.Account.Balance(f.ctx, card.ID)
	require.NoError(t, err)
	assert.True(t, dec("-200.00").Equal(bal), bal.String())

	bal, err = f.svc.Account.Balance(f.ctx, equity.ID)
	require.NoError(t, err)
	assert.True(t, dec("-1300.00").Equal(bal), bal.String())

	recent, err := f.svc.Transaction.GetRecentTransactions(f.ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	descriptions := []string{recent[0].Description, recent[1].Description}
	assert.Contains(t, descriptions, "Opening balance for Savings")
	assert.Contains(t, descriptions, "Opening balance for Visa")

	splits := f.splitCount(t)
	_, err = f.svc.Account.CreateAccount(f.ctx, AccountInput{
		Name:           "Broken",
		Type:           model.AccountTypeAsset,
		OpeningBalance: dec("100000000000000000.00"),
	})
	var ie *model.InvalidAmountError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, splits, f.splitCount(t))
	_, err = f.svc.Account.GetAccountByName(f.ctx, "Broken")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}
