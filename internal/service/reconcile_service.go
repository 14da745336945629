package service

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/store"
)

type ReconcileService struct {
	repo   store.UnitOfWork
	config *config.Config
	logger *zap.Logger
}

func NewReconcileService(repo store.UnitOfWork, cfg *config.Config, logger *zap.Logger) *ReconcileService {
	return &ReconcileService{repo: repo, config: cfg, logger: logger}
}

// Proposal pairs an unmatched statement line with a candidate split.
type Proposal struct {
	LineID          int64
	SplitID         int64
	TransactionID   int64
	LineDate        time.Time
	SplitDate       time.Time
	Amount          decimal.Decimal
	DayDiff         int
	LineDescription string
	TxDescription   string
}

// ReconcileStatus summarizes a statement's reconciliation progress.
type ReconcileStatus struct {
	StatementID     int64
	AccountID       int64
	PeriodStart     time.Time
	PeriodEnd       time.Time
	Opening         decimal.Decimal
	Closing         decimal.Decimal
	MatchedCount    int
	UnmatchedCount  int
	MatchedAmount   decimal.Decimal
	UnmatchedAmount decimal.Decimal
	// Difference is closing - (opening + matched amount).
	Difference decimal.Decimal
	Balanced   bool
}

// DateWindow is the number of days a split's date may differ from a line's
// date and still be proposed.
func (rs *ReconcileService) DateWindow() int {
	return rs.config.Reconcile.DateWindowDays
}

// Propose lists one-to-one candidate matches for the statement of
// (accountID, start, end). It never writes.
func (rs *ReconcileService) Propose(ctx context.Context, accountID int64, start, end time.Time) ([]Proposal, error) {
	return rs.propose(ctx, rs.repo, accountID, start, end)
}

func (rs *ReconcileService) propose(ctx context.Context, repo store.Repository, accountID int64, start, end time.Time) ([]Proposal, error) {
	st, err := findStatement(ctx, repo, accountID, start, end)
	if err != nil {
		return nil, err
	}

	lines, err := repo.ListStatementLines(ctx, st.ID)
	if err != nil {
		return nil, err
	}

	window := rs.DateWindow()
	from := model.Day(start).AddDate(0, 0, -window)
	to := model.Day(end).AddDate(0, 0, window)
	postings, err := repo.ListUnmatchedPostings(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}

	var candidates []*model.StatementLine
	for _, line := range lines {
		if !line.IsMatched() && st.Contains(line.Date) {
			candidates = append(candidates, line)
		}
	}

	return proposeMatches(candidates, postings, window), nil
}

// proposeMatches pairs each line, in (date, id) order, with the best split
// not yet claimed by an earlier line: exact amount, date within window,
// closest date first and lowest split id on ties.
func proposeMatches(lines []*model.StatementLine, postings []*model.Posting, window int) []Proposal {
	lines = slices.Clone(lines)
	slices.SortFunc(lines, func(a, b *model.StatementLine) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	claimed := make(map[int64]bool, len(postings))
	var proposals []Proposal
	for _, line := range lines {
		var (
			best     *model.Posting
			bestDiff int
		)
		for _, p := range postings {
			if claimed[p.ID] || !p.Amount.Equal(line.Amount) {
				continue
			}
			diff := model.DaysBetween(line.Date, p.Date)
			if diff > window {
				continue
			}
			if best == nil || diff < bestDiff || diff == bestDiff && p.ID < best.ID {
				best, bestDiff = p, diff
			}
		}
		if best == nil {
			continue
		}

		claimed[best.ID] = true
		proposals = append(proposals, Proposal{
			LineID:          line.ID,
			SplitID:         best.ID,
			TransactionID:   best.TransactionID,
			LineDate:        line.Date,
			SplitDate:       best.Date,
			Amount:          line.Amount,
			DayDiff:         bestDiff,
			LineDescription: line.Description,
			TxDescription:   best.Description,
		})
	}
	return proposals
}

// Apply links the line to the split. Applying a pair that is already linked
// succeeds without changes; linking either side to something else fails
// with AlreadyMatchedError.
func (rs *ReconcileService) Apply(ctx context.Context, lineID, splitID int64) (*model.StatementLine, error) {
	var line *model.StatementLine
	err := rs.repo.ExecTx(ctx, func(repo store.Repository) error {
		var err error
		line, err = applyMatch(ctx, repo, lineID, splitID)
		return err
	})
	if err != nil {
		return nil, err
	}

	rs.logger.Info("match applied", zap.Int64("line_id", lineID), zap.Int64("split_id", splitID))
	return line, nil
}

func applyMatch(ctx context.Context, repo store.Repository, lineID, splitID int64) (*model.StatementLine, error) {
	line, err := repo.GetStatementLine(ctx, lineID)
	if err != nil {
		return nil, notFound(err, "statement line", lineID)
	}
	if _, err := repo.GetSplitByID(ctx, splitID); err != nil {
		return nil, notFound(err, "split", splitID)
	}

	if line.MatchedSplitID != nil {
		if *line.MatchedSplitID == splitID {
			return line, nil
		}
		return nil, &model.AlreadyMatchedError{LineID: lineID, SplitID: splitID, ConflictSplitID: *line.MatchedSplitID}
	}

	other, err := repo.GetLineByMatchedSplit(ctx, splitID)
	switch {
	case err == nil:
		return nil, &model.AlreadyMatchedError{LineID: lineID, SplitID: splitID, ConflictLineID: other.ID}
	case !errors.Is(err, store.ErrRecordNotFound):
		return nil, err
	}

	if err := repo.SetLineMatch(ctx, lineID, &splitID); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, &model.AlreadyMatchedError{LineID: lineID, SplitID: splitID}
		}
		return nil, err
	}
	line.MatchedSplitID = &splitID
	return line, nil
}

// ApplyAll applies every current proposal for the statement in one unit of
// work and returns the applied pairs.
func (rs *ReconcileService) ApplyAll(ctx context.Context, accountID int64, start, end time.Time) ([]Proposal, error) {
	var applied []Proposal
	err := rs.repo.ExecTx(ctx, func(repo store.Repository) error {
		proposals, err := rs.propose(ctx, repo, accountID, start, end)
		if err != nil {
			return err
		}
		for _, p := range proposals {
			if _, err := applyMatch(ctx, repo, p.LineID, p.SplitID); err != nil {
				return err
			}
		}
		applied = proposals
		return nil
	})
	if err != nil {
		return nil, err
	}

	rs.logger.Info("proposals applied", zap.Int64("account_id", accountID), zap.Int("count", len(applied)))
	return applied, nil
}

// Unmatch clears the line's match. A line without a match is an error.
func (rs *ReconcileService) Unmatch(ctx context.Context, lineID int64) (*model.StatementLine, error) {
	var line *model.StatementLine
	err := rs.repo.ExecTx(ctx, func(repo store.Repository) error {
		var err error
		line, err = repo.GetStatementLine(ctx, lineID)
		if err != nil {
			return notFound(err, "statement line", lineID)
		}
		if !line.IsMatched() {
			return &model.NotMatchedError{LineID: lineID}
		}
		if err := repo.SetLineMatch(ctx, lineID, nil); err != nil {
			return err
		}
		line.MatchedSplitID = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	rs.logger.Info("match cleared", zap.Int64("line_id", lineID))
	return line, nil
}

// UnmatchAll clears every match on the statement and returns how many were
// cleared.
func (rs *ReconcileService) UnmatchAll(ctx context.Context, accountID int64, start, end time.Time) (int, error) {
	var cleared int
	err := rs.repo.ExecTx(ctx, func(repo store.Repository) error {
		st, err := findStatement(ctx, repo, accountID, start, end)
		if err != nil {
			return err
		}
		lines, err := repo.ListStatementLines(ctx, st.ID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if !line.IsMatched() {
				continue
			}
			if err := repo.SetLineMatch(ctx, line.ID, nil); err != nil {
				return err
			}
			cleared++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	rs.logger.Info("matches cleared", zap.Int64("account_id", accountID), zap.Int("count", cleared))
	return cleared, nil
}

// Status reports matched and unmatched counts and amounts for the statement
// and whether opening plus the matched net equals closing.
func (rs *ReconcileService) Status(ctx context.Context, accountID int64, start, end time.Time) (*ReconcileStatus, error) {
	st, err := findStatement(ctx, rs.repo, accountID, start, end)
	if err != nil {
		return nil, err
	}
	lines, err := rs.repo.ListStatementLines(ctx, st.ID)
	if err != nil {
		return nil, err
	}

	status := &ReconcileStatus{
		StatementID:     st.ID,
		AccountID:       st.AccountID,
		PeriodStart:     st.PeriodStart,
		PeriodEnd:       st.PeriodEnd,
		Opening:         st.Opening,
		Closing:         st.Closing,
		MatchedAmount:   decimal.Zero,
		UnmatchedAmount: decimal.Zero,
	}
	for _, line := range lines {
		if line.IsMatched() {
			status.MatchedCount++
			status.MatchedAmount = status.MatchedAmount.Add(line.Amount)
		} else {
			status.UnmatchedCount++
			status.UnmatchedAmount = status.UnmatchedAmount.Add(line.Amount)
		}
	}
	status.Difference = st.Closing.Sub(st.Opening.Add(status.MatchedAmount))
	status.Balanced = status.Difference.IsZero()
	return status, nil
}

func findStatement(ctx context.Context, repo store.Repository, accountID int64, start, end time.Time) (*model.Statement, error) {
	st, err := repo.FindStatement(ctx, accountID, start, end)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, &model.NotFoundError{Entity: "statement for account", ID: accountID}
		}
		return nil, err
	}
	return st, nil
}
