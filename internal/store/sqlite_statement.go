package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hance08/kea-ledger/internal/model"
)

const lineColumns = `id, statement_id, fitid, posted_date, amount, description, matched_split_id`

func (s *Store) CreateStatement(ctx context.Context, st *model.Statement) (int64, error) {
	var newID int64
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO statements (account_id, period_start, period_end, opening, closing)
        VALUES (?, ?, ?, ?, ?)
        RETURNING id;
    `, st.AccountID, model.FormatDay(st.PeriodStart), model.FormatDay(st.PeriodEnd),
		model.ToMinorUnits(st.Opening), model.ToMinorUnits(st.Closing)).Scan(&newID)
	if err != nil {
		return 0, classify(err, "failed to insert statement")
	}

	st.ID = newID
	return newID, nil
}

// FindStatement returns the statement for exactly (accountID, start, end).
func (s *Store) FindStatement(ctx context.Context, accountID int64, start, end time.Time) (*model.Statement, error) {
	st := &model.Statement{}
	var (
		periodStart, periodEnd string
		opening, closing       int64
	)

	err := s.db.QueryRowContext(ctx, `
        SELECT id, account_id, period_start, period_end, opening, closing
        FROM statements
        WHERE account_id = ? AND period_start = ? AND period_end = ?
    `, accountID, model.FormatDay(start), model.FormatDay(end)).Scan(
		&st.ID, &st.AccountID, &periodStart, &periodEnd, &opening, &closing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("statement for account %d %s..%s: %w",
				accountID, model.FormatDay(start), model.FormatDay(end), ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query statement: %w", err)
	}

	if st.PeriodStart, err = model.ParseDay(periodStart); err != nil {
		return nil, fmt.Errorf("invalid stored date %q: %w", periodStart, err)
	}
	if st.PeriodEnd, err = model.ParseDay(periodEnd); err != nil {
		return nil, fmt.Errorf("invalid stored date %q: %w", periodEnd, err)
	}
	st.Opening = model.FromMinorUnits(opening)
	st.Closing = model.FromMinorUnits(closing)
	return st, nil
}

// CreateStatementLine inserts one line. A line whose dedup key already
// exists in the statement fails with ErrDuplicate.
func (s *Store) CreateStatementLine(ctx context.Context, line *model.StatementLine) (int64, error) {
	var fitid sql.NullString
	if line.ExternalID != "" {
		fitid = sql.NullString{String: line.ExternalID, Valid: true}
	}

	var newID int64
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO statement_lines (statement_id, fitid, posted_date, amount, description)
        VALUES (?, ?, ?, ?, ?)
        RETURNING id;
    `, line.StatementID, fitid, model.FormatDay(line.Date), model.ToMinorUnits(line.Amount), line.Description).Scan(&newID)
	if err != nil {
		return 0, classify(err, "failed to insert statement line")
	}

	line.ID = newID
	return newID, nil
}

func (s *Store) GetStatementLine(ctx context.Context, id int64) (*model.StatementLine, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+lineColumns+" FROM statement_lines WHERE id = ?", id)

	line, err := scanLine(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("statement line with ID %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query statement line: %w", err)
	}
	return line, nil
}

// ListStatementLines returns the statement's lines ordered by date then id.
func (s *Store) ListStatementLines(ctx context.Context, statementID int64) ([]*model.StatementLine, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+lineColumns+`
        FROM statement_lines
        WHERE statement_id = ?
        ORDER BY posted_date, id
    `, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to query statement lines: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var lines []*model.StatementLine
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// GetLineByMatchedSplit returns the line matched to splitID, or
// ErrRecordNotFound when the split is unmatched.
func (s *Store) GetLineByMatchedSplit(ctx context.Context, splitID int64) (*model.StatementLine, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+lineColumns+" FROM statement_lines WHERE matched_split_id = ?", splitID)

	line, err := scanLine(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("line matched to split %d: %w", splitID, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query statement line: %w", err)
	}
	return line, nil
}

// SetLineMatch links lineID to splitID, or clears the link when splitID is
// nil. Linking a split that another line already holds fails with
// ErrDuplicate.
func (s *Store) SetLineMatch(ctx context.Context, lineID int64, splitID *int64) error {
	result, err := s.db.ExecContext(ctx, `
        UPDATE statement_lines
        SET matched_split_id = ?
        WHERE id = ?
    `, splitID, lineID)
	if err != nil {
		return classify(err, "failed to update match")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("statement line with ID %d: %w", lineID, ErrRecordNotFound)
	}
	return nil
}

func scanLine(row rowScanner) (*model.StatementLine, error) {
	line := &model.StatementLine{}
	var (
		fitid     sql.NullString
		posted    string
		amount    int64
		matchedID sql.NullInt64
	)
	if err := row.Scan(&line.ID, &line.StatementID, &fitid, &posted, &amount, &line.Description, &matchedID); err != nil {
		return nil, err
	}

	d, err := model.ParseDay(posted)
	if err != nil {
		return nil, fmt.Errorf("invalid stored date %q: %w", posted, err)
	}
	line.Date = d
	line.ExternalID = fitid.String
	line.Amount = model.FromMinorUnits(amount)
	if matchedID.Valid {
		line.MatchedSplitID = &matchedID.Int64
	}
	return line, nil
}
