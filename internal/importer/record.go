// Package importer turns bank feeds (CSV, OFX/QFX) into candidate statement
// records. Parsers are pure: they never touch the store.
package importer

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/hance08/kea-ledger/internal/constants"
	"github.com/hance08/kea-ledger/internal/model"
)

// Record is one candidate statement line parsed from a feed.
type Record struct {
	ExternalID  string
	Date        time.Time
	Amount      decimal.Decimal
	Description string
}

// Key returns the dedup key for the record.
func (r Record) Key() model.DedupKey {
	return model.KeyOf(r.Line(0))
}

// Line converts the record to an unsaved statement line.
func (r Record) Line(statementID int64) model.StatementLine {
	return model.StatementLine{
		StatementID: statementID,
		ExternalID:  r.ExternalID,
		Date:        r.Date,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// ParseAmount parses a feed amount. Thousands separators and surrounding
// spaces are dropped and a trailing minus ("50.00-") is moved to the front.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if strings.HasSuffix(s, "-") && len(s) > 1 {
		s = "-" + strings.TrimSuffix(s, "-")
	}
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if err := model.ValidateAmount(amount); err != nil {
		return decimal.Decimal{}, err
	}
	return amount, nil
}

// NormalizeDescription collapses runs of whitespace and truncates to the
// stored column width so dedup comparisons are stable.
func NormalizeDescription(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= constants.MaxDescriptionLen {
		return s
	}
	r := []rune(s)
	return string(r[:constants.MaxDescriptionLen])
}

// Dedup drops records whose key already appeared earlier in the batch,
// keeping the first occurrence. It returns the kept records and the number
// of dropped ones.
func Dedup(records []Record) ([]Record, int) {
	seen := make(map[model.DedupKey]struct{}, len(records))
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		k := r.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, r)
	}
	return kept, len(records) - len(kept)
}
