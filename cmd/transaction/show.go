package transaction

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/ui/views"
	"github.com/hance08/kea-ledger/internal/utils"
)

type ShowCommandRunner struct {
	svc *service.Service
	cfg *config.Config
}

func NewShowCmd(svc *service.Service, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction-id>",
		Short: "Show transaction details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ShowCommandRunner{svc: svc, cfg: cfg}
			return runner.Run(cmd.Context(), args)
		},
	}
}

func (r *ShowCommandRunner) Run(ctx context.Context, args []string) error {
	id, err := utils.ParseID(args[0], "transaction")
	if err != nil {
		return err
	}

	detail, err := r.svc.Transaction.GetTransactionDetail(ctx, id)
	if err != nil {
		return err
	}

	return views.RenderTransactionDetail(detail, r.cfg.Defaults.Currency)
}
