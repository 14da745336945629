package views

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"

	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/utils"
)

type AccountListItem struct {
	Account *model.Account
	Balance decimal.Decimal
}

type AccountListView struct {
	currency string
}

func NewAccountListView(currency string) *AccountListView {
	return &AccountListView{currency: currency}
}

func (v *AccountListView) Render(items []AccountListItem) error {
	if len(items) == 0 {
		pterm.Warning.Println("No accounts found")
		return nil
	}

	tableData := pterm.TableData{{"ID", "Code", "Name", "Type", "Balance"}}

	for _, item := range items {
		acc := item.Account
		balance := utils.FormatWithCurrency(item.Balance, v.currency)
		name := acc.Name
		if !acc.IsActive {
			name += " (inactive)"
		}

		typ := string(acc.Type)
		switch acc.Type {
		case model.AccountTypeAsset, model.AccountTypeIncome:
			typ, name, balance = pterm.Green(typ), pterm.Green(name), pterm.Green(balance)
		case model.AccountTypeLiability, model.AccountTypeExpense:
			typ, name, balance = pterm.Red(typ), pterm.Red(name), pterm.Red(balance)
		case model.AccountTypeEquity:
			typ, name, balance = pterm.Gray(typ), pterm.Gray(name), pterm.Gray(balance)
		}

		code := acc.Code
		if code == "" {
			code = "-"
		}
		tableData = append(tableData, []string{fmt.Sprintf("%d", acc.ID), code, name, typ, balance})
	}

	pterm.DefaultSection.Printf("Account List")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts\n", len(items))
	return nil
}
