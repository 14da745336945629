package reconcile

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/utils"
)

type applyFlags struct {
	statementFlags
	All bool
}

type applyRunner struct {
	svc   *service.Service
	flags *applyFlags
}

func NewApplyCmd(svc *service.Service) *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply [<line-id> <split-id>]",
		Short: "Link a statement line to a split",
		Long: `Link a statement line to a ledger split. With --all, every current
proposal for the selected statement is applied at once.

Examples:
  kea reconcile apply 12 40
  kea reconcile apply --all --account Checking --start 2025-01-01 --end 2025-01-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &applyRunner{svc: svc, flags: flags}
			return runner.Run(cmd.Context(), args)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.All, "all", false, "Apply every proposal for the statement")

	return cmd
}

func (r *applyRunner) Run(ctx context.Context, args []string) error {
	if r.flags.All {
		if len(args) > 0 {
			return fmt.Errorf("--all does not take line or split IDs")
		}
		accountID, start, end, err := r.flags.resolve(ctx, r.svc)
		if err != nil {
			return err
		}
		applied, err := r.svc.Reconcile.ApplyAll(ctx, accountID, start, end)
		if err != nil {
			return err
		}
		pterm.Success.Printf("Applied %d matches\n", len(applied))
		return nil
	}

	if len(args) != 2 {
		return fmt.Errorf("apply needs a line ID and a split ID, or --all")
	}
	lineID, err := utils.ParseID(args[0], "line")
	if err != nil {
		return err
	}
	splitID, err := utils.ParseID(args[1], "split")
	if err != nil {
		return err
	}

	if _, err := r.svc.Reconcile.Apply(ctx, lineID, splitID); err != nil {
		return err
	}
	pterm.Success.Printf("Line %d matched to split %d\n", lineID, splitID)
	return nil
}
