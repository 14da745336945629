package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hance08/kea-ledger/internal/model"
)

const transactionColumns = `id, date, description, reference, status, reverses_id, reversed_by_id, created_at`

// CreateTransactionWithSplits inserts a transaction and its splits in the
// order given, filling in the new ids on tx. It relies on the caller
// (Service layer) to wrap it in ExecTx for atomicity.
func (s *Store) CreateTransactionWithSplits(ctx context.Context, tx *model.Transaction) (int64, error) {
	var reference sql.NullString
	if tx.Reference != "" {
		reference = sql.NullString{String: tx.Reference, Valid: true}
	}
	status := tx.Status
	if status == "" {
		status = model.StatusPosted
	}

	var (
		newTxID   int64
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO transactions (date, description, reference, status, reverses_id)
        VALUES (?, ?, ?, ?, ?)
        RETURNING id, created_at;
    `, model.FormatDay(tx.Date), tx.Description, reference, string(status), tx.ReversesID).Scan(&newTxID, &createdAt)
	if err != nil {
		return 0, classify(err, "failed to insert transaction")
	}

	for i := range tx.Splits {
		split := &tx.Splits[i]

		var memo sql.NullString
		if split.Memo != "" {
			memo = sql.NullString{String: split.Memo, Valid: true}
		}

		var splitID int64
		err := s.db.QueryRowContext(ctx, `
            INSERT INTO splits (transaction_id, account_id, position, amount, memo)
            VALUES (?, ?, ?, ?, ?)
            RETURNING id;
        `, newTxID, split.AccountID, i, model.ToMinorUnits(split.Amount), memo).Scan(&splitID)
		if err != nil {
			return 0, classify(err, fmt.Sprintf("failed to insert split (account_id: %d)", split.AccountID))
		}
		split.ID = splitID
		split.TransactionID = newTxID
	}

	tx.ID = newTxID
	tx.Status = status
	tx.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return newTxID, nil
}

func (s *Store) GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction with ID %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}

	splits, err := s.getSplitsByTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	tx.Splits = splits
	return tx, nil
}

// ListTransactions returns the most recent transactions (without splits),
// newest first.
func (s *Store) ListTransactions(ctx context.Context, limit int) ([]*model.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT `+transactionColumns+`
        FROM transactions
        ORDER BY date DESC, id DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var transactions []*model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// SetReversedBy records reversalID on txID. It only succeeds while txID has
// no reversal yet; otherwise ErrConflict is returned.
func (s *Store) SetReversedBy(ctx context.Context, txID, reversalID int64) error {
	result, err := s.db.ExecContext(ctx, `
        UPDATE transactions
        SET reversed_by_id = ?
        WHERE id = ? AND reversed_by_id IS NULL
    `, reversalID, txID)
	if err != nil {
		return classify(err, "failed to link reversal")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("transaction %d: %w", txID, ErrConflict)
	}
	return nil
}

func (s *Store) CountSplits(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM splits").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count splits: %w", err)
	}
	return n, nil
}

func (s *Store) GetSplitByID(ctx context.Context, id int64) (*model.Split, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, transaction_id, account_id, amount, memo
        FROM splits
        WHERE id = ?
    `, id)

	split, err := scanSplit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("split with ID %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query split: %w", err)
	}
	return split, nil
}

// ListUnmatchedPostings returns the account's splits dated within
// [from, to] that no statement line is matched to, ordered by date then id.
func (s *Store) ListUnmatchedPostings(ctx context.Context, accountID int64, from, to time.Time) ([]*model.Posting, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT s.id, s.transaction_id, s.account_id, s.amount, s.memo, t.date, t.description
        FROM splits s
        INNER JOIN transactions t ON t.id = s.transaction_id
        LEFT JOIN statement_lines sl ON sl.matched_split_id = s.id
        WHERE s.account_id = ?
          AND t.date >= ? AND t.date <= ?
          AND sl.id IS NULL
        ORDER BY t.date, s.id
    `, accountID, model.FormatDay(from), model.FormatDay(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query postings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var postings []*model.Posting
	for rows.Next() {
		var (
			p      model.Posting
			amount int64
			memo   sql.NullString
			date   string
		)
		if err := rows.Scan(&p.ID, &p.TransactionID, &p.AccountID, &amount, &memo, &date, &p.Description); err != nil {
			return nil, fmt.Errorf("failed to scan posting: %w", err)
		}
		p.Amount = model.FromMinorUnits(amount)
		p.Memo = memo.String
		if p.Date, err = model.ParseDay(date); err != nil {
			return nil, fmt.Errorf("invalid stored date %q: %w", date, err)
		}
		postings = append(postings, &p)
	}
	return postings, rows.Err()
}

func (s *Store) getSplitsByTransaction(ctx context.Context, txID int64) ([]model.Split, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, transaction_id, account_id, amount, memo
        FROM splits
        WHERE transaction_id = ?
        ORDER BY position
    `, txID)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var splits []model.Split
	for rows.Next() {
		split, err := scanSplit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, *split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating splits: %w", err)
	}
	return splits, nil
}

func scanSplit(row rowScanner) (*model.Split, error) {
	split := &model.Split{}
	var (
		amount int64
		memo   sql.NullString
	)
	if err := row.Scan(&split.ID, &split.TransactionID, &split.AccountID, &amount, &memo); err != nil {
		return nil, err
	}
	split.Amount = model.FromMinorUnits(amount)
	split.Memo = memo.String
	return split, nil
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	tx := &model.Transaction{}
	var (
		date         string
		reference    sql.NullString
		status       string
		reversesID   sql.NullInt64
		reversedByID sql.NullInt64
		createdAt    string
	)
	if err := row.Scan(&tx.ID, &date, &tx.Description, &reference, &status, &reversesID, &reversedByID, &createdAt); err != nil {
		return nil, err
	}

	d, err := model.ParseDay(date)
	if err != nil {
		return nil, fmt.Errorf("invalid stored date %q: %w", date, err)
	}
	tx.Date = d
	tx.Reference = reference.String
	tx.Status = model.TransactionStatus(status)
	if reversesID.Valid {
		tx.ReversesID = &reversesID.Int64
	}
	if reversedByID.Valid {
		tx.ReversedByID = &reversedByID.Int64
	}
	tx.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return tx, nil
}
