package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hance08/kea-ledger/internal/constants"
	"github.com/hance08/kea-ledger/internal/model"
)

// CSVLayout names the columns of a bank CSV export.
type CSVLayout struct {
	DateColumn        string
	AmountColumn      string
	DescriptionColumn string
	ExternalIDColumn  string
	DateFormat        string
}

// DefaultCSVLayout is date,amount,description[,fitid] with ISO dates.
func DefaultCSVLayout() CSVLayout {
	return CSVLayout{
		DateColumn:        "date",
		AmountColumn:      "amount",
		DescriptionColumn: "description",
		ExternalIDColumn:  "fitid",
		DateFormat:        constants.DateFormat,
	}
}

// CSVParser parses a header-first CSV bank export.
type CSVParser struct {
	Layout CSVLayout
}

// NewCSVParser returns a parser for the given layout; empty fields fall back
// to DefaultCSVLayout.
func NewCSVParser(layout CSVLayout) *CSVParser {
	def := DefaultCSVLayout()
	if layout.DateColumn == "" {
		layout.DateColumn = def.DateColumn
	}
	if layout.AmountColumn == "" {
		layout.AmountColumn = def.AmountColumn
	}
	if layout.DescriptionColumn == "" {
		layout.DescriptionColumn = def.DescriptionColumn
	}
	if layout.ExternalIDColumn == "" {
		layout.ExternalIDColumn = def.ExternalIDColumn
	}
	if layout.DateFormat == "" {
		layout.DateFormat = def.DateFormat
	}
	return &CSVParser{Layout: layout}
}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

type csvColumns struct {
	date, amount, desc, fitid int
}

// Parse reads the header row and every data row. Rows are reported by their
// line in the file, so the header is row 1.
func (p *CSVParser) Parse(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &model.ParseError{Source: "csv", Err: fmt.Errorf("missing header row")}
	}
	if err != nil {
		return nil, &model.ParseError{Source: "csv", Row: 1, Err: err}
	}

	cols, err := p.resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	row := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, &model.ParseError{Source: "csv", Row: row, Err: err}
		}
		row, _ = cr.FieldPos(0)
		if isBlank(rec) {
			continue
		}

		record, err := p.parseRow(rec, cols, row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (p *CSVParser) resolveColumns(header []string) (csvColumns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	lookup := func(name string, required bool) (int, error) {
		i, ok := index[strings.ToLower(name)]
		if !ok {
			if required {
				return -1, &model.ParseError{Source: "csv", Row: 1, Err: fmt.Errorf("missing required column %q", name)}
			}
			return -1, nil
		}
		return i, nil
	}

	var cols csvColumns
	var err error
	if cols.date, err = lookup(p.Layout.DateColumn, true); err != nil {
		return cols, err
	}
	if cols.amount, err = lookup(p.Layout.AmountColumn, true); err != nil {
		return cols, err
	}
	if cols.desc, err = lookup(p.Layout.DescriptionColumn, true); err != nil {
		return cols, err
	}
	cols.fitid, _ = lookup(p.Layout.ExternalIDColumn, false)
	return cols, nil
}

func (p *CSVParser) parseRow(rec []string, cols csvColumns, row int) (Record, error) {
	field := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	if cols.date >= len(rec) || cols.amount >= len(rec) {
		return Record{}, &model.ParseError{Source: "csv", Row: row, Err: fmt.Errorf("expected at least %d fields, got %d", max(cols.date, cols.amount)+1, len(rec))}
	}

	rawDate := field(cols.date)
	date, err := time.Parse(p.Layout.DateFormat, rawDate)
	if err != nil {
		return Record{}, &model.ParseError{Source: "csv", Row: row, Field: "date", Value: rawDate, Err: err}
	}

	rawAmount := field(cols.amount)
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return Record{}, &model.ParseError{Source: "csv", Row: row, Field: "amount", Value: rawAmount, Err: err}
	}

	return Record{
		ExternalID:  field(cols.fitid),
		Date:        model.Day(date),
		Amount:      amount,
		Description: NormalizeDescription(field(cols.desc)),
	}, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
