package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/ui"
	"github.com/hance08/kea-ledger/internal/utils"
)

func RenderProposals(proposals []service.Proposal, window int) error {
	if len(proposals) == 0 {
		pterm.Warning.Printf("No matches found within ±%d days\n", window)
		return nil
	}

	data := pterm.TableData{{"Line", "Line date", "Amount", "Bank description", "Split", "Tx date", "Ledger description", "Days"}}
	for _, p := range proposals {
		data = append(data, []string{
			fmt.Sprintf("%d", p.LineID),
			model.FormatDay(p.LineDate),
			utils.FormatAmount(p.Amount),
			p.LineDescription,
			fmt.Sprintf("%d", p.SplitID),
			model.FormatDay(p.SplitDate),
			orDash(p.TxDescription),
			fmt.Sprintf("%d", p.DayDiff),
		})
	}

	pterm.DefaultSection.Printf("Proposed matches (±%d days)", window)
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d proposals\n", len(proposals))
	return nil
}

func RenderReconcileStatus(st *service.ReconcileStatus, currency string) error {
	balanced := pterm.Green("yes")
	if !st.Balanced {
		balanced = pterm.Red("no")
	}

	ui.PrintL2Title("Statement #%d (%s .. %s)", st.StatementID, model.FormatDay(st.PeriodStart), model.FormatDay(st.PeriodEnd))
	return ui.KeyValueTable([][]string{
		{"Opening", utils.FormatWithCurrency(st.Opening, currency)},
		{"Closing", utils.FormatWithCurrency(st.Closing, currency)},
		{"Matched", fmt.Sprintf("%d lines, %s", st.MatchedCount, utils.FormatWithCurrency(st.MatchedAmount, currency))},
		{"Unmatched", fmt.Sprintf("%d lines, %s", st.UnmatchedCount, utils.FormatWithCurrency(st.UnmatchedAmount, currency))},
		{"Difference", ui.ColorAmount(st.Difference, currency)},
		{"Balanced", balanced},
	})
}
