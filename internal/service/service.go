package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/logging"
	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/store"
)

type Service struct {
	Account     *AccountService
	Transaction *TransactionService
	Check       *CheckService
	Import      *ImportService
	Reconcile   *ReconcileService
}

// NewService wires every domain service onto one store. A nil cfg uses
// config.NewDefault and a nil logger discards output.
func NewService(db store.UnitOfWork, cfg *config.Config, logger *zap.Logger) *Service {
	if cfg == nil {
		cfg = config.NewDefault()
	}
	logger = logging.OrNop(logger)

	txs := NewTransactionService(db, cfg, logger.Named("transaction"))
	return &Service{
		Account:     NewAccountService(db, txs, cfg, logger.Named("account")),
		Transaction: txs,
		Check:       NewCheckService(db, txs, logger.Named("check")),
		Import:      NewImportService(db, cfg, logger.Named("import")),
		Reconcile:   NewReconcileService(db, cfg, logger.Named("reconcile")),
	}
}

// notFound converts a store miss into the domain NotFoundError and passes
// every other error through.
func notFound(err error, entity string, id int64) error {
	if errors.Is(err, store.ErrRecordNotFound) {
		return &model.NotFoundError{Entity: entity, ID: id}
	}
	return err
}
