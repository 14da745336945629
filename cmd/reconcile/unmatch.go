package reconcile

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/utils"
)

type unmatchFlags struct {
	statementFlags
	All bool
}

type unmatchRunner struct {
	svc   *service.Service
	flags *unmatchFlags
}

func NewUnmatchCmd(svc *service.Service) *cobra.Command {
	flags := &unmatchFlags{}

	cmd := &cobra.Command{
		Use:   "unmatch [<line-id>]",
		Short: "Clear a statement line's match",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &unmatchRunner{svc: svc, flags: flags}
			return runner.Run(cmd.Context(), args)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.All, "all", false, "Clear every match on the statement")

	return cmd
}

func (r *unmatchRunner) Run(ctx context.Context, args []string) error {
	if r.flags.All {
		accountID, start, end, err := r.flags.resolve(ctx, r.svc)
		if err != nil {
			return err
		}
		n, err := r.svc.Reconcile.UnmatchAll(ctx, accountID, start, end)
		if err != nil {
			return err
		}
		pterm.Success.Printf("Cleared %d matches\n", n)
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("unmatch needs a line ID, or --all")
	}
	lineID, err := utils.ParseID(args[0], "line")
	if err != nil {
		return err
	}

	if _, err := r.svc.Reconcile.Unmatch(ctx, lineID); err != nil {
		return err
	}
	pterm.Success.Printf("Line %d is unmatched\n", lineID)
	return nil
}
