package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/utils"
)

type postFlags struct {
	Date   string
	Desc   string
	Ref    string
	Splits []string
}

type postRunner struct {
	svc   *service.Service
	flags *postFlags
}

func NewPostCmd(svc *service.Service) *cobra.Command {
	flags := &postFlags{}

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a balanced transaction",
		Long: `Post a transaction made of two or more splits that add up to zero.

Positive amounts are debits, negative amounts are credits.

Examples:
  kea post --desc "Groceries" --split Food:42.10 --split Checking:-42.10
  kea post --date 2025-01-31 --ref INV-7 \
    --split "Rent:1200" --split "Utilities:80:power" --split "Checking:-1280"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &postRunner{
				svc:   svc,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&flags.Date, "date", "", "Transaction date (YYYY-MM-DD), default is today")
	cmd.Flags().StringVarP(&flags.Desc, "desc", "d", "", "Transaction description")
	cmd.Flags().StringVarP(&flags.Ref, "ref", "r", "", "External reference")
	cmd.Flags().StringArrayVarP(&flags.Splits, "split", "s", nil, "Split as account:amount[:memo] (repeatable)")
	_ = cmd.MarkFlagRequired("split")

	return cmd
}

func (r *postRunner) Run(ctx context.Context) error {
	date, err := utils.ParseDate(r.flags.Date)
	if err != nil {
		return err
	}

	input := service.TransactionInput{
		Date:        date,
		Description: r.flags.Desc,
		Reference:   r.flags.Ref,
	}
	for _, raw := range r.flags.Splits {
		sf, err := utils.ParseSplitFlag(raw)
		if err != nil {
			return err
		}
		input.Splits = append(input.Splits, service.TransactionSplitInput{
			AccountName: sf.Account,
			Amount:      sf.Amount,
			Memo:        sf.Memo,
		})
	}

	tx, err := r.svc.Transaction.Post(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to post transaction: %w", err)
	}

	pterm.Success.Printf("Transaction #%d posted with %d splits\n", tx.ID, len(tx.Splits))
	return nil
}
