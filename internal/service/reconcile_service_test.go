package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/kea-ledger/internal/model"
)

// januaryStatement imports three bank lines for January and returns them.
func januaryStatement(t *testing.T, f *fixture) []*model.StatementLine {
	t.Helper()
	csv := `date,amount,description,fitid
2025-01-05,-50.00,Coffee,L1
2025-01-10,2000.00,Payroll,L2
2025-01-20,-75.00,Unknown,L3
`
	res, err := f.svc.Import.ImportCSV(f.ctx, ImportRequest{
		AccountID:   f.bank,
		PeriodStart: day(2025, 1, 1),
		PeriodEnd:   day(2025, 1, 31),
		Opening:     decimal.NewNullDecimal(dec("100.00")),
		Closing:     decimal.NewNullDecimal(dec("2050.00")),
	}, strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Lines, 3)
	return res.Lines
}

func bankSplit(t *testing.T, tx *model.Transaction, f *fixture) int64 {
	t.Helper()
	for _, s := range tx.Splits {
		if s.AccountID == f.bank {
			return s.ID
		}
	}
	t.Fatalf("transaction %d has no bank split", tx.ID)
	return 0
}

func TestPropose(t *testing.T) {
	f := newFixture(t)
	lines := januaryStatement(t, f)

	coffee := f.post(t, day(2025, 1, 6), f.food, "-50.00", "Coffee")
	payroll := f.post(t, day(2025, 1, 9), f.salary, "2000.00", "Payroll")
	f.post(t, day(2025, 1, 20), f.food, "-74.99", "Almost")

	proposals, err := f.svc.Reconcile.Propose(f.ctx, f.bank, day(2025, 1, 1), day(2025, 1, 31))
	require.NoError(t, err)
	require.Len(t, proposals, 2)

	assert.Equal(t, lines[0].ID, proposals[0].LineID)
	assert.Equal(t, bankSplit(t, coffee, f), proposals[0].SplitID)
	assert.Equal(t, 1, proposals[0].DayDiff)
	assert.Equal(t, lines[1].ID, proposals[1].LineID)
	assert.Equal(t, bankSplit(t, payroll, f), proposals[1].SplitID)

	status, err := f.svc.Reconcile.Status(f.ctx, f.bank, day(2025, 1, 1), day(2025, 1, 31))
	require.NoError(t, err)
	assert.Zero(t, status.MatchedCount, "propose never writes")
}

func TestPropose_DateWindow(t *testing.T) {
	f := newFixture(t)
	januaryStatement(t, f)

	f.post(t, day(2025, 1, 9), f.food, "-50.00", "Too far")
	proposals, err := f.svc.Reconcile.Propose(f.ctx, f.bank, day(2025, 1, 1), day(2025, 1, 31))
	require.NoError(t, err)
	assert.Empty(t, proposals)

	f.post(t, day(2025, 1, 2), f.food, "-50.00", "Just inside")
	proposals, err = f.svc.Reconcile.Propose(f.ctx, f.bank, day(2025, 1, 1), day(2025, 1, 31))
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, 3, proposals[0].DayDiff)
}

func TestProposeMatches_TieBreak(t *testing.T) {
	line := func(id int64, d int, amount string) *model.StatementLine {
		return &model.StatementLine{ID: id, Date: day(2025, 1, d), Amount: dec(amount)}
	}
	posting := func(id int64, d int, amount string) *model.Posting {
		return &model.Posting{Split: model.Split{ID: id, Amount: dec(amount)}, Date: day(2025, 1, d)}
	}

	lines := []*model.StatementLine{line(2, 10, "-5"), line(1, 10, "-5")}
	postings := []*model.Posting{
		posting(30, 12, "-5"),
		posting(20, 8, "-5"),
		posting(10, 11, "-5"),
		posting(40, 10, "-5.01"),
	}

	got := proposeMatches(lines, postings, 3)
	require.Len(t, got, 2)
	// Line 1 sorts first and takes the closest split; line 2 takes the
	// lower id of the two remaining splits two days away.
	assert.Equal(t, int64(1), got[0].LineID)
	assert.Equal(t, int64(10), got[0].SplitID)
	assert.Equal(t, int64(2), got[1].LineID)
	assert.Equal(t, int64(20), got[1].SplitID)

	assert.Empty(t, proposeMatches(lines, postings[3:], 3))
}

func TestApply_Unmatch_RoundTrip(t *testing.T) {
	f := newFixture(t)
	lines := januaryStatement(t, f)
	coffee := f.post(t, day(2025, 1, 5), f.food, "-50.00", "Coffee")
	split := bankSplit(t, coffee, f)

	applied, err := f.svc.Reconcile.Apply(f.ctx, lines[0].ID, split)
	require.NoError(t, err)
	require.NotNil(t, applied.MatchedSplitID)
	assert.Equal(t, split, *applied.MatchedSplitID)
	assert.Equal(t, model.LineMatched, applied.Status())

	again, err := f.svc.Reconcile.Apply(f.ctx, lines[0].ID, split)
	require.NoError(t, err, "re-applying the same pair is a no-op")
	assert.Equal(t, split, *again.MatchedSplitID)

	cleared, err := f.svc.Reconcile.Unmatch(f.ctx, applied.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.MatchedSplitID)

	stored, err := f.store.GetStatementLine(f.ctx, lines[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.LineUnmatched, stored.Status())
	_, err = f.store.GetLineByMatchedSplit(f.ctx, split)
	assert.Error(t, err, "no residual split linkage")

	_, err = f.svc.Reconcile.Unmatch(f.ctx, lines[0].ID)
	var nm *model.NotMatchedError
	assert.True(t, errors.As(err, &nm))
}

func TestApply_Conflicts(t *testing.T) {
	f := newFixture(t)
	lines := januaryStatement(t, f)
	a := bankSplit(t, f.post(t, day(2025, 1, 5), f.food, "-50.00", "A"), f)
	b := bankSplit(t, f.post(t, day(2025, 1, 5), f.food, "-50.00", "B"), f)

	_, err := f.svc.Reconcile.Apply(f.ctx, lines[0].ID, a)
	require.NoError(t, err)

	_, err = f.svc.Reconcile.Apply(f.ctx, lines[2].ID, a)
	var am *model.AlreadyMatchedError
	require.True(t, errors.As(err, &am), "split already taken")
	assert.Equal(t, lines[0].ID, am.ConflictLineID)

	_, err = f.svc.Reconcile.Apply(f.ctx, lines[0].ID, b)
	require.True(t, errors.As(err, &am), "line already matched")
	assert.Equal(t, a, am.ConflictSplitID)

	_, err = f.svc.Reconcile.Apply(f.ctx, 999, a)
	var nf *model.NotFoundError
	assert.True(t, errors.As(err, &nf))

	_, err = f.svc.Reconcile.Apply(f.ctx, lines[1].ID, 999)
	assert.True(t, errors.As(err, &nf))
}

func TestApplyAll_And_Status(t *testing.T) {
	f := newFixture(t)
	januaryStatement(t, f)
	f.post(t, day(2025, 1, 5), f.food, "-50.00", "Coffee")
	f.post(t, day(2025, 1, 10), f.salary, "2000.00", "Payroll")

	applied, err := f.svc.Reconcile.ApplyAll(f.ctx, f.bank, day(2025, 1, 1), day(2025, 1, 31))
	require.NoError(t, err)
	assert.Len(t, applied, 2)

	status, err := f.svc.Reconcile.Status(f.ctx, f.bank, day(2025, 1, 1), day(2025, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, 2, status.MatchedCount)
	assert.Equal(t, 1, status.UnmatchedCount)
	assert.True(t, status.MatchedAmount.Equal(dec("1950.00")))
	assert.True(t, status.UnmatchedAmount.Equal(dec("-75.00")))
	assert.True(t, status.Difference.IsZero())
	assert.True(t, status.Balanced)

	proposals, err := f.svc.Reconcile.Propose(f.ctx, f.bank, day(2025, 1, 1), day(2025, 1, 31))
	require.NoError(t, err)
	assert.Empty(t, proposals, "matched splits are not proposed again")

	n, err := f.svc.Reconcile.UnmatchAll(f.ctx, f.bank, day(2025, 1, 1), day(2025, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	status, err = f.svc.Reconcile.Status(f.ctx, f.bank, day(2025, 1, 1), day(2025, 1, 31))
	require.NoError(t, err)
	assert.False(t, status.Balanced)
	assert.True(t, status.Difference.Equal(dec("1950.00")))
}

func TestStatus_UnknownStatement(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Reconcile.Status(f.ctx, f.bank, day(2025, 3, 1), day(2025, 3, 31))
	var nf *model.NotFoundError
	assert.True(t, errors.As(err, &nf))

	_, err = f.svc.Reconcile.Propose(f.ctx, f.bank, day(2025, 3, 1), day(2025, 3, 31))
	assert.True(t, errors.As(err, &nf))
}
