package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hance08/kea-ledger/internal/model"
)

func (s *Store) CreateCheck(ctx context.Context, chk *model.Check) (int64, error) {
	var memoLine sql.NullString
	if chk.MemoLine != "" {
		memoLine = sql.NullString{String: chk.MemoLine, Valid: true}
	}
	status := chk.Status
	if status == "" {
		status = model.CheckIssued
	}

	var newID int64
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO checks (account_id, transaction_id, check_number, payee, amount, issue_date, memo_line, status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id;
    `, chk.AccountID, chk.TransactionID, chk.CheckNumber, chk.Payee,
		model.ToMinorUnits(chk.Amount), model.FormatDay(chk.IssueDate), memoLine, string(status)).Scan(&newID)
	if err != nil {
		return 0, classify(err, "failed to insert check")
	}

	chk.ID = newID
	chk.Status = status
	return newID, nil
}

func (s *Store) GetCheckByID(ctx context.Context, id int64) (*model.Check, error) {
	chk := &model.Check{}
	var (
		amount    int64
		issueDate string
		memoLine  sql.NullString
		status    string
		voidedBy  sql.NullInt64
	)

	err := s.db.QueryRowContext(ctx, `
        SELECT id, account_id, transaction_id, check_number, payee, amount, issue_date, memo_line, status, voided_by_transaction_id
        FROM checks
        WHERE id = ?
    `, id).Scan(&chk.ID, &chk.AccountID, &chk.TransactionID, &chk.CheckNumber, &chk.Payee,
		&amount, &issueDate, &memoLine, &status, &voidedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("check with ID %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query check: %w", err)
	}

	chk.Amount = model.FromMinorUnits(amount)
	if chk.IssueDate, err = model.ParseDay(issueDate); err != nil {
		return nil, fmt.Errorf("invalid stored date %q: %w", issueDate, err)
	}
	chk.MemoLine = memoLine.String
	chk.Status = model.CheckStatus(status)
	if voidedBy.Valid {
		chk.VoidedByTransactionID = &voidedBy.Int64
	}
	return chk, nil
}

// MarkCheckVoid flips an issued check to void. A check that is already void
// is left untouched and ErrConflict is returned.
func (s *Store) MarkCheckVoid(ctx context.Context, id int64, voidedBy *int64) error {
	result, err := s.db.ExecContext(ctx, `
        UPDATE checks
        SET status = ?, voided_by_transaction_id = ?
        WHERE id = ? AND status <> ?
    `, string(model.CheckVoid), voidedBy, id, string(model.CheckVoid))
	if err != nil {
		return classify(err, "failed to void check")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("check %d: %w", id, ErrConflict)
	}
	return nil
}
