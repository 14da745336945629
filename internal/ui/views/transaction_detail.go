package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/ui"
	"github.com/hance08/kea-ledger/internal/utils"
)

func RenderTransactionDetail(detail *service.TransactionDetail, currency string) error {
	pterm.Println()
	ui.PrintL2Title("Transaction Info")

	rows := [][]string{
		{"ID", fmt.Sprintf("%d", detail.ID)},
		{"Date", model.FormatDay(detail.Date)},
		{"Type", string(detail.Type)},
		{"Description", orDash(detail.Description)},
		{"Reference", orDash(detail.Reference)},
	}
	if detail.ReversesID != nil {
		rows = append(rows, []string{"Reverses", fmt.Sprintf("#%d", *detail.ReversesID)})
	}
	if detail.ReversedByID != nil {
		rows = append(rows, []string{"Reversed by", pterm.Yellow(fmt.Sprintf("#%d", *detail.ReversedByID))})
	}
	if err := ui.KeyValueTable(rows); err != nil {
		return err
	}

	pterm.Println()
	ui.PrintL2Title("Splits")
	splitsData := pterm.TableData{
		{"Split", "Account", "Debit", "Credit", "Memo"},
	}

	for _, split := range detail.Splits {
		accountName := split.AccountName
		if accountName == "" {
			accountName = fmt.Sprintf("[ID: %d]", split.AccountID)
		}

		debit, credit := "", ""
		if split.Amount.IsNegative() {
			credit = utils.FormatWithCurrency(split.Amount.Neg(), currency)
		} else {
			debit = utils.FormatWithCurrency(split.Amount, currency)
		}

		splitsData = append(splitsData, []string{
			fmt.Sprintf("%d", split.ID),
			accountName,
			debit,
			credit,
			orDash(split.Memo),
		})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(splitsData).
		Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
