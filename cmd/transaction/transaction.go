package transaction

import (
	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/service"
)

func NewTransactionCmd(svc *service.Service, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transaction",
		Aliases: []string{"tx"},
		Short:   "Inspect and reverse transactions",
		Long: `Inspect and reverse transactions. Posted transactions are never edited
or deleted; a mistake is corrected by posting its reversal.`,
	}

	cmd.AddCommand(NewShowCmd(svc, cfg))
	cmd.AddCommand(NewListCmd(svc, cfg))
	cmd.AddCommand(NewReverseCmd(svc))

	return cmd
}
