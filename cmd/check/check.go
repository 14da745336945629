package check

import (
	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/service"
)

func NewCheckCmd(svc *service.Service, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check",
		Aliases: []string{"chk"},
		Short:   "Issue and void paper checks",
	}

	cmd.AddCommand(NewIssueCmd(svc))
	cmd.AddCommand(NewVoidCmd(svc))
	cmd.AddCommand(NewShowCmd(svc, cfg))

	return cmd
}
