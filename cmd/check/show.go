package check

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/ui/views"
	"github.com/hance08/kea-ledger/internal/utils"
)

type showRunner struct {
	svc *service.Service
	cfg *config.Config
}

func NewShowCmd(svc *service.Service, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show <check-id>",
		Short: "Show a check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &showRunner{svc: svc, cfg: cfg}
			return runner.Run(cmd.Context(), args)
		},
	}
}

func (r *showRunner) Run(ctx context.Context, args []string) error {
	id, err := utils.ParseID(args[0], "check")
	if err != nil {
		return err
	}

	chk, err := r.svc.Check.GetCheck(ctx, id)
	if err != nil {
		return err
	}
	return views.RenderCheck(chk, r.cfg.Defaults.Currency)
}
