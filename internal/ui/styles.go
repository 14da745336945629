package ui

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"

	"github.com/hance08/kea-ledger/internal/utils"
)

func PrintL1Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)
	style.Println(fmt.Sprintf(" %s   ", fmt.Sprintf(format, a...)))
}

func PrintL2Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	style.Println(fmt.Sprintf("# %s   ", fmt.Sprintf(format, a...)))
}

// Separator prints a green rule between blocks of output.
func Separator() {
	pterm.Println(pterm.Green("----------------------------------------"))
}

// ColorAmount renders positive amounts green and negative amounts red.
func ColorAmount(d decimal.Decimal, currency string) string {
	s := utils.FormatWithCurrency(d, currency)
	switch d.Sign() {
	case 1:
		return pterm.Green(s)
	case -1:
		return pterm.Red(s)
	}
	return pterm.Gray(s)
}

// KeyValueTable renders two-column field/value rows with a gray header.
func KeyValueTable(rows [][]string) error {
	data := pterm.TableData{{"Field", "Value"}}
	data = append(data, rows...)
	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(data).
		Render()
}
