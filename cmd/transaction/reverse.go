package transaction

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/ui"
	"github.com/hance08/kea-ledger/internal/utils"
)

type reverseFlags struct {
	Date string
	Memo string
	Yes  bool
}

type ReverseCommandRunner struct {
	svc   *service.Service
	flags *reverseFlags
}

func NewReverseCmd(svc *service.Service) *cobra.Command {
	flags := &reverseFlags{}

	cmd := &cobra.Command{
		Use:   "reverse <transaction-id>",
		Short: "Post the mirror image of a transaction",
		Long: `Post a new transaction whose splits negate the original's, and link the
two. A transaction can be reversed at most once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ReverseCommandRunner{svc: svc, flags: flags}
			return runner.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVar(&flags.Date, "date", "", "Reversal date (YYYY-MM-DD), default is today")
	cmd.Flags().StringVarP(&flags.Memo, "memo", "m", "", "Reversal description")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func (r *ReverseCommandRunner) Run(ctx context.Context, args []string) error {
	id, err := utils.ParseID(args[0], "transaction")
	if err != nil {
		return err
	}
	date, err := utils.ParseDate(r.flags.Date)
	if err != nil {
		return err
	}

	tx, err := r.svc.Transaction.GetTransactionByID(ctx, id)
	if err != nil {
		return err
	}

	if !r.flags.Yes {
		pterm.Warning.Printf("About to reverse #%d %s %q\n", tx.ID, model.FormatDay(tx.Date), tx.Description)
		ok, err := ui.Confirm("Post the reversal?")
		if err != nil {
			return err
		}
		if !ok {
			pterm.Info.Println("Reversal cancelled")
			return nil
		}
	}

	rev, err := r.svc.Transaction.Reverse(ctx, id, date, r.flags.Memo)
	if err != nil {
		return fmt.Errorf("failed to reverse transaction: %w", err)
	}

	pterm.Success.Printf("Transaction #%d reversed by #%d (%s)\n", id, rev.ID, rev.Reference)
	return nil
}
