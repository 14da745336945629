package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/ui"
	"github.com/hance08/kea-ledger/internal/utils"
)

func RenderImportResult(res *service.ImportResult, currency string) error {
	st := res.Statement
	verb := "Updated"
	if res.StatementCreated {
		verb = "Created"
	}
	ui.PrintL2Title("%s statement #%d (%s .. %s)", verb, st.ID, model.FormatDay(st.PeriodStart), model.FormatDay(st.PeriodEnd))

	if len(res.Lines) > 0 {
		data := pterm.TableData{{"Line", "Date", "Amount", "Description", "FITID"}}
		for _, l := range res.Lines {
			data = append(data, []string{
				fmt.Sprintf("%d", l.ID),
				model.FormatDay(l.Date),
				ui.ColorAmount(l.Amount, currency),
				l.Description,
				orDash(l.ExternalID),
			})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
	}

	pterm.Info.Printf("Opening %s, closing %s\n",
		utils.FormatWithCurrency(st.Opening, currency), utils.FormatWithCurrency(st.Closing, currency))
	pterm.Success.Printf("Imported %d lines\n", len(res.Lines))
	if res.SkippedDuplicates > 0 {
		pterm.Warning.Printf("Skipped %d duplicate records\n", res.SkippedDuplicates)
	}
	if res.SkippedOutOfPeriod > 0 {
		pterm.Warning.Printf("Skipped %d records outside the statement period\n", res.SkippedOutOfPeriod)
	}
	return nil
}
