package views

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"

	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/utils"
)

type TransactionListView struct {
	currency string
}

func NewTransactionListView(currency string) *TransactionListView {
	return &TransactionListView{currency: currency}
}

func (v *TransactionListView) Render(items []*service.TransactionDetail, limit int) error {
	if len(items) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	pterm.DefaultSection.Printf("Showing recent transactions (limit: %d)", limit)

	tableData := pterm.TableData{
		{"ID", "Date", "Type", "Description", "Amount", "Status"},
	}

	for _, item := range items {
		typ := string(item.Type)
		amount := utils.FormatWithCurrency(grossAmount(item.Splits), v.currency)

		switch item.Type {
		case service.TxTypeExpense:
			typ, amount = pterm.Red(typ), pterm.Red(amount)
		case service.TxTypeIncome:
			typ, amount = pterm.Green(typ), pterm.Green(amount)
		case service.TxTypeTransfer:
			typ, amount = pterm.Blue(typ), pterm.Blue(amount)
		case service.TxTypeReversal:
			typ, amount = pterm.Yellow(typ), pterm.Yellow(amount)
		}

		status := string(item.Status)
		if item.IsReversed() {
			status = fmt.Sprintf("reversed by #%d", *item.ReversedByID)
		}

		tableData = append(tableData, []string{
			fmt.Sprintf("%d", item.ID),
			model.FormatDay(item.Date),
			typ,
			orDash(item.Description),
			amount,
			status,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(items))
	return nil
}

// grossAmount is the total debited by a transaction.
func grossAmount(splits []service.SplitDetail) decimal.Decimal {
	total := decimal.Zero
	for _, s := range splits {
		if s.Amount.IsPositive() {
			total = total.Add(s.Amount)
		}
	}
	return total
}
