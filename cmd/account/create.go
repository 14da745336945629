package account

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

type createFlags struct {
	Name    string
	Type    string
	Code    string
	Parent  string
	Balance string
	Date    string
}

type CreateCommandRunner struct {
	svc   *service.Service
	flags *createFlags
}

func NewCreateCmd(svc *service.Service) *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account",
		Long: `Create an account of type asset (A), liability (L), equity (C),
income (I) or expense (E). A sub-account inherits its parent's type
when --type is omitted.

--balance books an opening balance against the Opening Balances
equity account, entered in the account's natural sign.

Example: kea account create -n Checking -t A --code 1010 --balance 1200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &CreateCommandRunner{
				svc:   svc,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Account name")
	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "Account type: A, L, C, I, E")
	cmd.Flags().StringVar(&flags.Code, "code", "", "Optional account code")
	cmd.Flags().StringVarP(&flags.Parent, "parent", "p", "", "Parent account name or ID")
	cmd.Flags().StringVarP(&flags.Balance, "balance", "b", "", "Opening balance")
	cmd.Flags().StringVar(&flags.Date, "date", "", "Opening balance date (YYYY-MM-DD), default is today")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func (r *CreateCommandRunner) Run(ctx context.Context) error {
	input := service.AccountInput{
		Name: r.flags.Name,
		Code: r.flags.Code,
	}

	if r.flags.Parent != "" {
		parent, err := r.svc.Account.ResolveAccount(ctx, r.flags.Parent)
		if err != nil {
			return err
		}
		input.ParentID = &parent.ID
		input.Type = parent.Type
	}

	if r.flags.Type != "" {
		typ, err := model.ParseAccountType(r.flags.Type)
		if err != nil {
			return err
		}
		input.Type = typ
	}
	if input.Type == "" {
		return fmt.Errorf("must enter at least one of --type or --parent flag")
	}

	if r.flags.Balance != "" {
		balance, err := utils.ParseAmount(r.flags.Balance)
		if err != nil {
			return err
		}
		date, err := utils.ParseDate(r.flags.Date)
		if err != nil {
			return err
		}
		input.OpeningBalance = balance
		input.OpeningDate = date
	}

	acc, err := r.svc.Account.CreateAccount(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	ui.Separator()
	if err := pterm.DefaultTable.WithData(pterm.TableData{
		{pterm.Blue("Account ID"), fmt.Sprintf("%d", acc.ID)},
		{pterm.Blue("Name"), acc.Name},
		{pterm.Blue("Type"), string(acc.Type)},
		{pterm.Blue("Opening Balance"), utils.FormatAmount(input.OpeningBalance)},
	}).Render(); err != nil {
		return err
	}
	pterm.Success.Println("Account created successfully!")
	return nil
}
