package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/ui"
	"github.com/hance08/kea-ledger/internal/utils"
)

func RenderCheck(chk *model.Check, currency string) error {
	status := pterm.Green(string(chk.Status))
	if chk.IsVoid() {
		status = pterm.Red(string(chk.Status))
	}

	rows := [][]string{
		{"ID", fmt.Sprintf("%d", chk.ID)},
		{"Number", orDash(chk.CheckNumber)},
		{"Payee", orDash(chk.Payee)},
		{"Amount", utils.FormatWithCurrency(chk.Amount, currency)},
		{"Issued", model.FormatDay(chk.IssueDate)},
		{"Memo", orDash(chk.MemoLine)},
		{"Status", status},
		{"Transaction", fmt.Sprintf("#%d", chk.TransactionID)},
	}
	if chk.VoidedByTransactionID != nil {
		rows = append(rows, []string{"Voided by", fmt.Sprintf("#%d", *chk.VoidedByTransactionID)})
	}

	ui.PrintL2Title("Check")
	return ui.KeyValueTable(rows)
}
