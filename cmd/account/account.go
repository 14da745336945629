package account

import (
	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/service"
)

func NewAccountCmd(svc *service.Service, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"acc"},
		Short:   "Manage the chart of accounts",
	}

	cmd.AddCommand(NewCreateCmd(svc))
	cmd.AddCommand(NewListCmd(svc, cfg))

	return cmd
}
