package reconcile

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/ui/prompts"
	"github.com/hance08/kea-ledger/internal/ui/views"
)

type proposeFlags struct {
	statementFlags
	Interactive bool
}

type proposeRunner struct {
	svc   *service.Service
	flags *proposeFlags
}

func NewProposeCmd(svc *service.Service) *cobra.Command {
	flags := &proposeFlags{}

	cmd := &cobra.Command{
		Use:   "propose",
		Short: "List candidate matches without applying them",
		Long: `List unmatched statement lines paired with unmatched splits of the same
amount whose date is within reconcile.date_window_days. Nothing is written
unless --interactive is used and matches are selected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &proposeRunner{svc: svc, flags: flags}
			return runner.Run(cmd.Context())
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", false, "Pick proposals to apply")

	return cmd
}

func (r *proposeRunner) Run(ctx context.Context) error {
	accountID, start, end, err := r.flags.resolve(ctx, r.svc)
	if err != nil {
		return err
	}

	proposals, err := r.svc.Reconcile.Propose(ctx, accountID, start, end)
	if err != nil {
		return err
	}

	if !r.flags.Interactive || len(proposals) == 0 {
		return views.RenderProposals(proposals, r.svc.Reconcile.DateWindow())
	}

	selected, err := prompts.PromptSelectProposals(proposals)
	if err != nil {
		return err
	}

	for _, p := range selected {
		if _, err := r.svc.Reconcile.Apply(ctx, p.LineID, p.SplitID); err != nil {
			return fmt.Errorf("failed to apply line %d to split %d: %w", p.LineID, p.SplitID, err)
		}
	}
	pterm.Success.Printf("Applied %d of %d proposals\n", len(selected), len(proposals))
	return nil
}
