package errhandler

import (
	"errors"
	"os"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"

	"github.com/hance08/kea-ledger/internal/model"
)

// HandleError prints err for the terminal and exits. A cancelled prompt is
// not a failure.
func HandleError(err error) {
	if IsInterrupt(err) {
		pterm.Warning.Println("Operation Cancelled")
		os.Exit(0)
	}

	pterm.Error.Println(Message(err))
	if hint := Hint(err); hint != "" {
		pterm.Info.Println(hint)
	}
	os.Exit(1)
}

func IsInterrupt(err error) bool {
	return errors.Is(err, terminal.InterruptErr) ||
		errors.Is(err, huh.ErrUserAborted) ||
		strings.Contains(err.Error(), "interrupt")
}

// Message is the capitalized error text.
func Message(err error) string {
	s := err.Error()
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Hint suggests the next command for errors the user can act on.
func Hint(err error) string {
	var (
		unbalanced *model.UnbalancedTransactionError
		reversed   *model.AlreadyReversedError
		voided     *model.AlreadyVoidError
		matched    *model.AlreadyMatchedError
		notMatched *model.NotMatchedError
		parseErr   *model.ParseError
		refErr     *model.ReferenceError
	)

	switch {
	case errors.As(err, &unbalanced):
		return "The split amounts must add up to zero."
	case errors.As(err, &reversed):
		return "Use 'kea transaction show' to inspect the existing reversal."
	case errors.As(err, &voided):
		return "Use 'kea check show' to see when it was voided."
	case errors.As(err, &matched):
		return "Run 'kea reconcile unmatch' on the conflicting line first."
	case errors.As(err, &notMatched):
		return "Run 'kea reconcile status' to see which lines are matched."
	case errors.As(err, &parseErr):
		return "Check the import layout under import.csv in the config file."
	case errors.As(err, &refErr):
		return "Use 'kea account list' to see available accounts."
	}
	return ""
}
