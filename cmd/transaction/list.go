package transaction

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/ui/views"
)

type listFlags struct {
	Limit int
}

type listRunner struct {
	svc   *service.Service
	cfg   *config.Config
	flags *listFlags
}

func NewListCmd(svc *service.Service, cfg *config.Config) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List recent transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &listRunner{
				svc:   svc,
				cfg:   cfg,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 20, "Maximum number of transactions to display")

	return cmd
}

func (r *listRunner) Run(ctx context.Context) error {
	transactions, err := r.svc.Transaction.GetRecentTransactions(ctx, r.flags.Limit)
	if err != nil {
		return fmt.Errorf("failed to get transactions: %w", err)
	}

	details := make([]*service.TransactionDetail, 0, len(transactions))
	for _, tx := range transactions {
		detail, err := r.svc.Transaction.GetTransactionDetail(ctx, tx.ID)
		if err != nil {
			pterm.Warning.Printf("Skipping transaction %d: %v\n", tx.ID, err)
			continue
		}
		details = append(details, detail)
	}

	return views.NewTransactionListView(r.cfg.Defaults.Currency).Render(details, r.flags.Limit)
}
