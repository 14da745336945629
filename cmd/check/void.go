package check

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

type voidFlags struct {
	Date       string
	Memo       string
	NoReversal bool
	Yes        bool
}

type VoidCommandRunner struct {
	svc   *service.Service
	flags *voidFlags
}

func NewVoidCmd(svc *service.Service) *cobra.Command {
	flags := &voidFlags{}

	cmd := &cobra.Command{
		Use:   "void <check-id>",
		Short: "Void a check",
		Long: `Mark a check void. By default its payment transaction is reversed in
the same step; --no-reversal only changes the check's status.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &VoidCommandRunner{svc: svc, flags: flags}
			return runner.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVar(&flags.Date, "date", "", "Void date (YYYY-MM-DD), default is today")
	cmd.Flags().StringVarP(&flags.Memo, "memo", "m", "", "Reversal description (default: Void check <number>)")
	cmd.Flags().BoolVar(&flags.NoReversal, "no-reversal", false, "Do not post a reversing transaction")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func (r *VoidCommandRunner) Run(ctx context.Context, args []string) error {
	id, err := utils.ParseID(args[0], "check")
	if err != nil {
		return err
	}
	date, err := utils.ParseDate(r.flags.Date)
	if err != nil {
		return err
	}

	chk, err := r.svc.Check.GetCheck(ctx, id)
	if err != nil {
		return err
	}
	if chk.IsVoid() {
		return &model.AlreadyVoidError{CheckID: chk.ID}
	}

	if !r.flags.Yes {
		pterm.Warning.Println("You are about to void this check:")
		if err := pterm.DefaultTable.WithData(pterm.TableData{
			{"Number", chk.CheckNumber},
			{"Payee", chk.Payee},
			{"Amount", utils.FormatAmount(chk.Amount)},
			{"Issued", model.FormatDay(chk.IssueDate)},
		}).Render(); err != nil {
			return err
		}

		ok, err := ui.Confirm("Void this check?")
		if err != nil {
			return err
		}
		if !ok {
			pterm.Info.Println("Void cancelled")
			return nil
		}
	}

	res, err := r.svc.Check.VoidCheck(ctx, id, date, r.flags.Memo, !r.flags.NoReversal)
	if err != nil {
		return fmt.Errorf("failed to void check: %w", err)
	}

	if res.Reversal != nil {
		pterm.Success.Printf("Check #%d voided, payment reversed by transaction #%d\n", id, res.Reversal.ID)
	} else {
		pterm.Success.Printf("Check #%d voided\n", id)
	}
	return nil
}
