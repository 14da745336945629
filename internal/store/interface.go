package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/kea-ledger/internal/model"
)

type Repository interface {
	// Account Operations
	CreateAccount(ctx context.Context, acc *model.Account) (int64, error)
	GetAccountByID(ctx context.Context, id int64) (*model.Account, error)
	GetAccountByName(ctx context.Context, name string) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]*model.Account, error)
	AccountExists(ctx context.Context, id int64) (bool, error)
	GetAccountBalance(ctx context.Context, accountID int64) (decimal.Decimal, error)

	// Transaction Operations
	CreateTransactionWithSplits(ctx context.Context, tx *model.Transaction) (int64, error)
	GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error)
	ListTransactions(ctx context.Context, limit int) ([]*model.Transaction, error)
	SetReversedBy(ctx context.Context, txID, reversalID int64) error
	CountSplits(ctx context.Context) (int, error)

	// Split Operations
	GetSplitByID(ctx context.Context, id int64) (*model.Split, error)
	ListUnmatchedPostings(ctx context.Context, accountID int64, from, to time.Time) ([]*model.Posting, error)

	// Check Operations
	CreateCheck(ctx context.Context, chk *model.Check) (int64, error)
	GetCheckByID(ctx context.Context, id int64) (*model.Check, error)
	MarkCheckVoid(ctx context.Context, id int64, voidedBy *int64) error

	// Statement Operations
	CreateStatement(ctx context.Context, st *model.Statement) (int64, error)
	FindStatement(ctx context.Context, accountID int64, start, end time.Time) (*model.Statement, error)
	CreateStatementLine(ctx context.Context, line *model.StatementLine) (int64, error)
	GetStatementLine(ctx context.Context, id int64) (*model.StatementLine, error)
	ListStatementLines(ctx context.Context, statementID int64) ([]*model.StatementLine, error)
	GetLineByMatchedSplit(ctx context.Context, splitID int64) (*model.StatementLine, error)
	SetLineMatch(ctx context.Context, lineID int64, splitID *int64) error
}

// UnitOfWork is a Repository that can also open a transaction. Operations
// that write more than one row run through ExecTx and use the Repository
// handed to fn for every read and write.
type UnitOfWork interface {
	Repository
	ExecTx(ctx context.Context, fn func(Repository) error) error
	Close() error
}

var _ UnitOfWork = (*Store)(nil)
