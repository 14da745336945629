package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/store"
	"github.com/hance08/kea-ledger/internal/validation"
)

type CheckService struct {
	repo   store.UnitOfWork
	txs    *TransactionService
	logger *zap.Logger
}

func NewCheckService(repo store.UnitOfWork, txs *TransactionService, logger *zap.Logger) *CheckService {
	return &CheckService{repo: repo, txs: txs, logger: logger}
}

// IssueCheckInput describes a paper check drawn on AccountID and booked
// against PayeeAccountID.
type IssueCheckInput struct {
	AccountID      int64
	PayeeAccountID int64
	CheckNumber    string
	Payee          string
	Amount         decimal.Decimal
	IssueDate      time.Time
	MemoLine       string
}

// IssueCheck posts the payment transaction and records the check that
// belongs to it in one unit of work.
func (cs *CheckService) IssueCheck(ctx context.Context, in IssueCheckInput) (*model.Check, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("check amount must be positive (got %s)", in.Amount.String())
	}
	if err := model.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	if err := validation.ValidateCheckNumber(in.CheckNumber); err != nil {
		return nil, err
	}

	date := in.IssueDate
	if date.IsZero() {
		date = time.Now()
	}

	desc := "Check"
	if in.CheckNumber != "" {
		desc += " " + in.CheckNumber
	}
	if in.Payee != "" {
		desc += " to " + in.Payee
	}

	var chk *model.Check
	err := cs.repo.ExecTx(ctx, func(repo store.Repository) error {
		tx := &model.Transaction{
			Date:        model.Day(date),
			Description: desc,
			Status:      model.StatusPosted,
			Splits: []model.Split{
				{AccountID: in.PayeeAccountID, Amount: in.Amount, Memo: strings.TrimSpace(in.MemoLine)},
				{AccountID: in.AccountID, Amount: in.Amount.Neg()},
			},
		}
		if in.CheckNumber != "" {
			tx.Reference = "CHK-" + in.CheckNumber
		}
		if err := cs.txs.postTx(ctx, repo, tx); err != nil {
			return err
		}

		chk = &model.Check{
			AccountID:     in.AccountID,
			TransactionID: tx.ID,
			CheckNumber:   in.CheckNumber,
			Payee:         in.Payee,
			Amount:        in.Amount,
			IssueDate:     model.Day(date),
			MemoLine:      in.MemoLine,
			Status:        model.CheckIssued,
		}
		_, err := repo.CreateCheck(ctx, chk)
		return err
	})
	if err != nil {
		return nil, err
	}

	cs.logger.Info("check issued",
		zap.Int64("check_id", chk.ID),
		zap.String("number", chk.CheckNumber),
		zap.Int64("tx_id", chk.TransactionID),
	)
	return chk, nil
}

// VoidResult is the voided check and, when one was posted, the reversal of
// its transaction.
type VoidResult struct {
	Check    *model.Check
	Reversal *model.Transaction
}

// VoidCheck marks the check void. With createReversal it also reverses the
// check's transaction on date and records the reversal on the check. An
// empty memo produces "Void check <number>". Voiding twice is an error.
func (cs *CheckService) VoidCheck(ctx context.Context, checkID int64, date time.Time, memo string, createReversal bool) (*VoidResult, error) {
	result := &VoidResult{}
	err := cs.repo.ExecTx(ctx, func(repo store.Repository) error {
		chk, err := repo.GetCheckByID(ctx, checkID)
		if err != nil {
			return notFound(err, "check", checkID)
		}
		if chk.IsVoid() {
			return &model.AlreadyVoidError{CheckID: chk.ID}
		}

		var voidedBy *int64
		if createReversal {
			if memo == "" {
				memo = fmt.Sprintf("Void check %s", chk.CheckNumber)
			}
			rev, err := cs.txs.reverseTx(ctx, repo, chk.TransactionID, date, memo)
			if err != nil {
				return err
			}
			result.Reversal = rev
			voidedBy = &rev.ID
		}

		if err := repo.MarkCheckVoid(ctx, chk.ID, voidedBy); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return &model.AlreadyVoidError{CheckID: chk.ID}
			}
			return err
		}

		chk.Status = model.CheckVoid
		chk.VoidedByTransactionID = voidedBy
		result.Check = chk
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{zap.Int64("check_id", checkID)}
	if result.Reversal != nil {
		fields = append(fields, zap.Int64("reversal_id", result.Reversal.ID))
	}
	cs.logger.Info("check voided", fields...)
	return result, nil
}

func (cs *CheckService) GetCheck(ctx context.Context, id int64) (*model.Check, error) {
	chk, err := cs.repo.GetCheckByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "check", id)
	}
	return chk, nil
}
