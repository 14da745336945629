package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hance08/kea-ledger/internal/model"
)

const accountColumns = `id, name, code, type, parent_id, is_active`

func (s *Store) CreateAccount(ctx context.Context, acc *model.Account) (int64, error) {
	var code sql.NullString
	if acc.Code != "" {
		code = sql.NullString{String: acc.Code, Valid: true}
	}

	var newID int64
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO accounts (name, code, type, parent_id, is_active)
        VALUES (?, ?, ?, ?, ?)
        RETURNING id;
    `, acc.Name, code, string(acc.Type), acc.ParentID, acc.IsActive).Scan(&newID)

	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("failed to create account '%s': %w", acc.Name, ErrAccountExists)
		}
		return 0, classify(err, "failed to execute SQL insertion")
	}

	acc.ID = newID
	return newID, nil
}

func (s *Store) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM accounts WHERE id = ?", id)

	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account with ID %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account with ID %d: %w", id, err)
	}
	return acc, nil
}

func (s *Store) GetAccountByName(ctx context.Context, name string) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM accounts WHERE name = ?", name)

	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account '%s': %w", name, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account '%s': %w", name, err)
	}
	return acc, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+accountColumns+" FROM accounts ORDER BY type, name")
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var accounts []*model.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (s *Store) AccountExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	row := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM accounts WHERE id = ?)", id)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return exists, nil
}

// GetAccountBalance sums the account's splits. Balances are never stored.
func (s *Store) GetAccountBalance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	var balance sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
        SELECT SUM(amount)
        FROM splits
        WHERE account_id = ?
    `, accountID).Scan(&balance)

	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to calculate balance: %w", err)
	}
	return model.FromMinorUnits(balance.Int64), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	acc := &model.Account{}
	var (
		code     sql.NullString
		accType  string
		parentID sql.NullInt64
	)

	if err := row.Scan(&acc.ID, &acc.Name, &code, &accType, &parentID, &acc.IsActive); err != nil {
		return nil, err
	}

	acc.Code = code.String
	acc.Type = model.AccountType(accType)
	if parentID.Valid {
		acc.ParentID = &parentID.Int64
	}
	return acc, nil
}
