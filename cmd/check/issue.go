package check

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/utils"
)

type issueFlags struct {
	Account string
	To      string
	Number  string
	Payee   string
	Amount  string
	Date    string
	Memo    string
}

type issueRunner struct {
	svc   *service.Service
	flags *issueFlags
}

func NewIssueCmd(svc *service.Service) *cobra.Command {
	flags := &issueFlags{}

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Write a check and post its payment",
		Long: `Write a check drawn on --account and book the payment against --to.

Example: kea check issue --account Checking --to Rent --number 1001 \
  --payee Landlord --amount 1200 --memo February`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &issueRunner{svc: svc, flags: flags}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Account, "account", "a", "", "Bank account the check is drawn on (name or ID)")
	cmd.Flags().StringVarP(&flags.To, "to", "t", "", "Account the payment is booked to (name or ID)")
	cmd.Flags().StringVarP(&flags.Number, "number", "n", "", "Check number")
	cmd.Flags().StringVarP(&flags.Payee, "payee", "p", "", "Payee name")
	cmd.Flags().StringVar(&flags.Amount, "amount", "", "Check amount")
	cmd.Flags().StringVar(&flags.Date, "date", "", "Issue date (YYYY-MM-DD), default is today")
	cmd.Flags().StringVarP(&flags.Memo, "memo", "m", "", "Memo line")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func (r *issueRunner) Run(ctx context.Context) error {
	bank, err := r.svc.Account.ResolveAccount(ctx, r.flags.Account)
	if err != nil {
		return err
	}
	payee, err := r.svc.Account.ResolveAccount(ctx, r.flags.To)
	if err != nil {
		return err
	}
	amount, err := utils.ParseAmount(r.flags.Amount)
	if err != nil {
		return err
	}
	date, err := utils.ParseDate(r.flags.Date)
	if err != nil {
		return err
	}

	chk, err := r.svc.Check.IssueCheck(ctx, service.IssueCheckInput{
		AccountID:      bank.ID,
		PayeeAccountID: payee.ID,
		CheckNumber:    r.flags.Number,
		Payee:          r.flags.Payee,
		Amount:         amount,
		IssueDate:      date,
		MemoLine:       r.flags.Memo,
	})
	if err != nil {
		return fmt.Errorf("failed to issue check: %w", err)
	}

	pterm.Success.Printf("Check #%d issued (transaction #%d)\n", chk.ID, chk.TransactionID)
	return nil
}
