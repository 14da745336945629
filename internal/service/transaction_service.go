package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/constants"
	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/store"
)

type TransactionService struct {
	repo   store.UnitOfWork
	config *config.Config
	logger *zap.Logger
}

func NewTransactionService(repo store.UnitOfWork, cfg *config.Config, logger *zap.Logger) *TransactionService {
	return &TransactionService{repo: repo, config: cfg, logger: logger}
}

// Post validates the input and commits the transaction and all of its
// splits in one unit of work. Splits keep the order they were given in.
func (ts *TransactionService) Post(ctx context.Context, in TransactionInput) (*model.Transaction, error) {
	var posted *model.Transaction
	err := ts.repo.ExecTx(ctx, func(repo store.Repository) error {
		tx, err := ts.buildTransaction(ctx, repo, in)
		if err != nil {
			return err
		}
		if err := ts.postTx(ctx, repo, tx); err != nil {
			return err
		}
		posted = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posted, nil
}

func (ts *TransactionService) buildTransaction(ctx context.Context, repo store.Repository, in TransactionInput) (*model.Transaction, error) {
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	tx := &model.Transaction{
		Date:        model.Day(date),
		Description: in.Description,
		Reference:   in.Reference,
		Status:      model.StatusPosted,
		Splits:      make([]model.Split, 0, len(in.Splits)),
	}

	for i, s := range in.Splits {
		accountID := s.AccountID
		if accountID == 0 {
			acc, err := repo.GetAccountByName(ctx, s.AccountName)
			if err != nil {
				if errors.Is(err, store.ErrRecordNotFound) {
					return nil, fmt.Errorf("split #%d: %w", i+1, &model.ReferenceError{Entity: "account", Name: s.AccountName})
				}
				return nil, fmt.Errorf("split #%d: %w", i+1, err)
			}
			accountID = acc.ID
		}
		tx.Splits = append(tx.Splits, model.Split{
			AccountID: accountID,
			Amount:    s.Amount,
			Memo:      s.Memo,
		})
	}
	return tx, nil
}

// postTx runs every posting check before the first write, then inserts tx.
// It must be called inside ExecTx with the repository that ExecTx provides.
func (ts *TransactionService) postTx(ctx context.Context, repo store.Repository, tx *model.Transaction) error {
	if err := model.ValidateSplits(tx.Splits); err != nil {
		return err
	}

	checked := make(map[int64]bool, len(tx.Splits))
	for _, s := range tx.Splits {
		if checked[s.AccountID] {
			continue
		}
		ok, err := repo.AccountExists(ctx, s.AccountID)
		if err != nil {
			return err
		}
		if !ok {
			return &model.ReferenceError{Entity: "account", ID: s.AccountID}
		}
		checked[s.AccountID] = true
	}

	if _, err := repo.CreateTransactionWithSplits(ctx, tx); err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return fmt.Errorf("failed to create transaction: %w", &model.ReferenceError{Entity: "account"})
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	ts.logger.Info("transaction posted",
		zap.Int64("tx_id", tx.ID),
		zap.String("date", model.FormatDay(tx.Date)),
		zap.Int("splits", len(tx.Splits)),
	)
	return nil
}

// Reverse posts a new transaction that negates every split of the original,
// on the given date, and links the two both ways. An empty memo produces
// "Reversal of tx <id>: <description>".
func (ts *TransactionService) Reverse(ctx context.Context, originalID int64, date time.Time, memo string) (*model.Transaction, error) {
	var reversal *model.Transaction
	err := ts.repo.ExecTx(ctx, func(repo store.Repository) error {
		var err error
		reversal, err = ts.reverseTx(ctx, repo, originalID, date, memo)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reversal, nil
}

func (ts *TransactionService) reverseTx(ctx context.Context, repo store.Repository, originalID int64, date time.Time, memo string) (*model.Transaction, error) {
	orig, err := repo.GetTransactionByID(ctx, originalID)
	if err != nil {
		return nil, notFound(err, "transaction", originalID)
	}
	if orig.IsReversed() {
		return nil, &model.AlreadyReversedError{TransactionID: orig.ID, ReversedByID: *orig.ReversedByID}
	}

	if date.IsZero() {
		date = time.Now()
	}
	if memo == "" {
		memo = fmt.Sprintf("Reversal of tx %d: %s", orig.ID, orig.Description)
	}

	reversal := &model.Transaction{
		Date:        model.Day(date),
		Description: memo,
		Reference:   constants.ReversalRefPrefix + strconv.FormatInt(orig.ID, 10),
		Status:      model.StatusPosted,
		ReversesID:  &orig.ID,
		Splits: model.NegateSplits(orig.Splits, func(s model.Split) string {
			return fmt.Sprintf("Reversal of split %d", s.ID)
		}),
	}

	if err := ts.postTx(ctx, repo, reversal); err != nil {
		return nil, err
	}

	if err := repo.SetReversedBy(ctx, orig.ID, reversal.ID); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, &model.AlreadyReversedError{TransactionID: orig.ID}
		}
		return nil, err
	}

	ts.logger.Info("transaction reversed",
		zap.Int64("tx_id", orig.ID),
		zap.Int64("reversal_id", reversal.ID),
	)
	return reversal, nil
}

func (ts *TransactionService) GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error) {
	tx, err := ts.repo.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "transaction", id)
	}
	return tx, nil
}

// GetTransactionDetail returns the transaction with account names and a
// coarse classification for display.
func (ts *TransactionService) GetTransactionDetail(ctx context.Context, id int64) (*TransactionDetail, error) {
	tx, err := ts.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &TransactionDetail{
		Transaction: tx,
		Splits:      make([]SplitDetail, 0, len(tx.Splits)),
	}
	for _, split := range tx.Splits {
		account, err := ts.repo.GetAccountByID(ctx, split.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to get account for split: %w", err)
		}
		detail.Splits = append(detail.Splits, SplitDetail{
			Split:       split,
			AccountName: account.Name,
			AccountType: account.Type,
		})
	}
	detail.Type = classify(tx, detail.Splits)
	return detail, nil
}

// GetRecentTransactions retrieves recent transactions across all accounts
func (ts *TransactionService) GetRecentTransactions(ctx context.Context, limit int) ([]*model.Transaction, error) {
	transactions, err := ts.repo.ListTransactions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}
	return transactions, nil
}
