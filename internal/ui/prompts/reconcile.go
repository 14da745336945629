package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/utils"
)

// PromptSelectProposals lets the user pick which proposed matches to apply.
// Every proposal starts selected.
func PromptSelectProposals(proposals []service.Proposal) ([]service.Proposal, error) {
	if len(proposals) == 0 {
		return nil, nil
	}

	opts := make([]huh.Option[int], 0, len(proposals))
	for i, p := range proposals {
		label := fmt.Sprintf("line %d %s %s %q  <->  split %d %s %q (±%dd)",
			p.LineID, model.FormatDay(p.LineDate), utils.FormatAmount(p.Amount), p.LineDescription,
			p.SplitID, model.FormatDay(p.SplitDate), p.TxDescription, p.DayDiff)
		opts = append(opts, huh.NewOption(label, i).Selected(true))
	}

	var picked []int
	err := huh.NewMultiSelect[int]().
		Title("Select the matches to apply").
		Description("space toggles, enter confirms").
		Options(opts...).
		Value(&picked).
		Run()
	if err != nil {
		return nil, err
	}

	selected := make([]service.Proposal, 0, len(picked))
	for _, i := range picked {
		selected = append(selected, proposals[i])
	}
	return selected, nil
}
