package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/constants"
	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/store"
	"github.com/hance08/kea-ledger/internal/validation"
)

type AccountService struct {
	repo   store.UnitOfWork
	txs    *TransactionService
	config *config.Config
	logger *zap.Logger
}

func NewAccountService(repo store.UnitOfWork, txs *TransactionService, cfg *config.Config, logger *zap.Logger) *AccountService {
	return &AccountService{repo: repo, txs: txs, config: cfg, logger: logger}
}

// AccountInput describes a new account. ParentID is optional.
//
// A non-zero OpeningBalance is posted against the Opening Balances equity
// account on OpeningDate (today when zero). The balance is given in the
// account's natural sign, so a liability of 500 is entered as 500.
type AccountInput struct {
	Name           string
	Code           string
	Type           model.AccountType
	ParentID       *int64
	OpeningBalance decimal.Decimal
	OpeningDate    time.Time
}

func (as *AccountService) CreateAccount(ctx context.Context, in AccountInput) (*model.Account, error) {
	if err := validation.ValidateAccountName(in.Name); err != nil {
		return nil, err
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("invalid account type '%s'", in.Type)
	}
	if err := model.ValidateAmount(in.OpeningBalance); err != nil {
		return nil, fmt.Errorf("opening balance: %w", err)
	}

	acc := &model.Account{
		Name:     strings.TrimSpace(in.Name),
		Code:     strings.TrimSpace(in.Code),
		Type:     in.Type,
		ParentID: in.ParentID,
		IsActive: true,
	}

	err := as.repo.ExecTx(ctx, func(repo store.Repository) error {
		if in.ParentID != nil {
			ok, err := repo.AccountExists(ctx, *in.ParentID)
			if err != nil {
				return err
			}
			if !ok {
				return &model.ReferenceError{Entity: "account", ID: *in.ParentID}
			}
		}
		if _, err := repo.CreateAccount(ctx, acc); err != nil {
			return err
		}
		if in.OpeningBalance.IsZero() {
			return nil
		}
		return as.postOpeningBalance(ctx, repo, acc, in.OpeningBalance, in.OpeningDate)
	})
	if err != nil {
		return nil, err
	}

	as.logger.Info("account created", zap.Int64("account_id", acc.ID), zap.String("name", acc.Name), zap.String("type", string(acc.Type)))
	return acc, nil
}

// postOpeningBalance books balance into acc with the equity side on the
// Opening Balances account, creating that account if it is missing.
func (as *AccountService) postOpeningBalance(ctx context.Context, repo store.Repository, acc *model.Account, balance decimal.Decimal, date time.Time) error {
	if acc.Name == constants.SystemAccountOpeningBalance {
		return fmt.Errorf("'%s' cannot carry an opening balance", acc.Name)
	}

	equity, err := repo.GetAccountByName(ctx, constants.SystemAccountOpeningBalance)
	if errors.Is(err, store.ErrRecordNotFound) {
		equity = &model.Account{
			Name:     constants.SystemAccountOpeningBalance,
			Type:     model.AccountTypeEquity,
			IsActive: true,
		}
		_, err = repo.CreateAccount(ctx, equity)
	}
	if err != nil {
		return err
	}

	if date.IsZero() {
		date = time.Now()
	}
	amount := balance.Mul(decimal.NewFromInt(int64(acc.NormalBalance())))
	tx := &model.Transaction{
		Date:        model.Day(date),
		Description: "Opening balance for " + acc.Name,
		Status:      model.StatusPosted,
		Splits: []model.Split{
			{AccountID: acc.ID, Amount: amount},
			{AccountID: equity.ID, Amount: amount.Neg()},
		},
	}
	return as.txs.postTx(ctx, repo, tx)
}

func (as *AccountService) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	acc, err := as.repo.GetAccountByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "account", id)
	}
	return acc, nil
}

func (as *AccountService) GetAccountByName(ctx context.Context, name string) (*model.Account, error) {
	return as.repo.GetAccountByName(ctx, name)
}

// ResolveAccount looks an account up by numeric id or by exact name.
func (as *AccountService) ResolveAccount(ctx context.Context, ref string) (*model.Account, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return as.GetAccountByID(ctx, id)
	}

	acc, err := as.repo.GetAccountByName(ctx, ref)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, &model.ReferenceError{Entity: "account", Name: ref}
	}
	return acc, err
}

func (as *AccountService) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	return as.repo.ListAccounts(ctx)
}

// Balance sums every split posted to the account.
func (as *AccountService) Balance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	if _, err := as.GetAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}
	return as.repo.GetAccountBalance(ctx, accountID)
}

// AccountNames maps account ids to names for display.
func (as *AccountService) AccountNames(ctx context.Context) (map[int64]string, error) {
	accounts, err := as.repo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(accounts))
	for _, acc := range accounts {
		names[acc.ID] = acc.Name
	}
	return names, nil
}
