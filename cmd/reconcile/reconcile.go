package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/utils"
)

func NewReconcileCmd(svc *service.Service, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reconcile",
		Aliases: []string{"rec"},
		Short:   "Match statement lines to ledger splits",
		Long: `Match imported statement lines to the ledger splits they correspond to.

A statement is selected by --account, --start and --end, the same values
used when it was imported.`,
	}

	cmd.AddCommand(NewProposeCmd(svc))
	cmd.AddCommand(NewApplyCmd(svc))
	cmd.AddCommand(NewUnmatchCmd(svc))
	cmd.AddCommand(NewStatusCmd(svc, cfg))

	return cmd
}

// statementFlags select one statement.
type statementFlags struct {
	Account string
	Start   string
	End     string
}

func (f *statementFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Account, "account", "a", "", "Bank account (name or ID)")
	cmd.Flags().StringVar(&f.Start, "start", "", "Statement period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.End, "end", "", "Statement period end (YYYY-MM-DD)")
}

func (f *statementFlags) resolve(ctx context.Context, svc *service.Service) (int64, time.Time, time.Time, error) {
	if f.Account == "" || f.Start == "" || f.End == "" {
		return 0, time.Time{}, time.Time{}, fmt.Errorf("--account, --start and --end select the statement and are required")
	}

	acc, err := svc.Account.ResolveAccount(ctx, f.Account)
	if err != nil {
		return 0, time.Time{}, time.Time{}, err
	}
	start, err := utils.ParseDate(f.Start)
	if err != nil {
		return 0, time.Time{}, time.Time{}, err
	}
	end, err := utils.ParseDate(f.End)
	if err != nil {
		return 0, time.Time{}, time.Time{}, err
	}
	return acc.ID, start, end, nil
}
