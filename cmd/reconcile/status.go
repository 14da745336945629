package reconcile

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/ui/views"
)

type statusRunner struct {
	svc   *service.Service
	cfg   *config.Config
	flags *statementFlags
}

func NewStatusCmd(svc *service.Service, cfg *config.Config) *cobra.Command {
	flags := &statementFlags{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show reconciliation progress for a statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &statusRunner{svc: svc, cfg: cfg, flags: flags}
			return runner.Run(cmd.Context())
		},
	}

	flags.register(cmd)

	return cmd
}

func (r *statusRunner) Run(ctx context.Context) error {
	accountID, start, end, err := r.flags.resolve(ctx, r.svc)
	if err != nil {
		return err
	}

	st, err := r.svc.Reconcile.Status(ctx, accountID, start, end)
	if err != nil {
		return err
	}
	return views.RenderReconcileStatus(st, r.cfg.Defaults.Currency)
}
