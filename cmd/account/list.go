package account

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/ui/views"
)

type listFlags struct {
	Type string
}

type ListCommandRunner struct {
	svc   *service.Service
	cfg   *config.Config
	flags *listFlags
}

func NewListCmd(svc *service.Service, cfg *config.Config) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all accounts with their balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ListCommandRunner{
				svc:   svc,
				cfg:   cfg,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "Filter accounts by type (A, L, C, I, E)")

	return cmd
}

func (r *ListCommandRunner) Run(ctx context.Context) error {
	var filter model.AccountType
	if r.flags.Type != "" {
		typ, err := model.ParseAccountType(r.flags.Type)
		if err != nil {
			return err
		}
		filter = typ
	}

	accounts, err := r.svc.Account.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}

	items := make([]views.AccountListItem, 0, len(accounts))
	for _, acc := range accounts {
		if filter != "" && acc.Type != filter {
			continue
		}
		balance, err := r.svc.Account.Balance(ctx, acc.ID)
		if err != nil {
			return err
		}
		items = append(items, views.AccountListItem{Account: acc, Balance: balance})
	}

	return views.NewAccountListView(r.cfg.Defaults.Currency).Render(items)
}
