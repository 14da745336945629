package importer

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/kea-ledger/internal/constants"
	"github.com/hance08/kea-ledger/internal/model"
)

// OFXStatement is the result of parsing an OFX/QFX document.
type OFXStatement struct {
	Records       []Record
	PeriodStart   *time.Time
	PeriodEnd     *time.Time
	LedgerBalance decimal.NullDecimal
}

// OFXParser parses SGML-style and XML-style OFX/QFX statements.
type OFXParser struct{}

func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

// Format returns the parser name.
func (p *OFXParser) Format() string { return "ofx" }

// Parse reads the whole document and extracts its transaction records.
func (p *OFXParser) Parse(r io.Reader) ([]Record, error) {
	st, err := p.ParseStatement(r)
	if err != nil {
		return nil, err
	}
	return st.Records, nil
}

// ParseStatement reads the whole document, including the statement period
// and the ledger balance when present.
func (p *OFXParser) ParseStatement(r io.Reader) (*OFXStatement, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &model.ParseError{Source: "ofx", Err: err}
	}
	return ParseOFX(string(raw))
}

type ofxFields map[string]string

// set keeps the first value seen for a tag.
func (f ofxFields) set(tag, value string) {
	if _, ok := f[tag]; !ok {
		f[tag] = value
	}
}

// ParseOFX extracts STMTTRN records, DTSTART/DTEND and the ledger balance.
// A record ends at the next STMTTRN, at a closing STMTTRN or BANKTRANLIST
// tag, at the balance aggregates, or at end of input.
func ParseOFX(doc string) (*OFXStatement, error) {
	st := &OFXStatement{}

	var (
		current     ofxFields
		groups      []ofxFields
		inLedger    bool
		ledgerBal   string
		firstBalAmt string
		dtStart     string
		dtEnd       string
	)

	flush := func() {
		if current != nil {
			groups = append(groups, current)
			current = nil
		}
	}

	for tok := range Tokens(doc) {
		if tok.Closing {
			switch tok.Tag {
			case "STMTTRN", "BANKTRANLIST":
				flush()
			case "LEDGERBAL":
				inLedger = false
			}
			continue
		}

		switch tok.Tag {
		case "STMTTRN":
			flush()
			current = ofxFields{}
			continue
		case "LEDGERBAL":
			flush()
			inLedger = true
			continue
		case "AVAILBAL":
			flush()
			inLedger = false
			continue
		case "DTSTART":
			if dtStart == "" {
				dtStart = tok.Value
			}
		case "DTEND":
			if dtEnd == "" {
				dtEnd = tok.Value
			}
		case "BALAMT":
			if inLedger && ledgerBal == "" {
				ledgerBal = tok.Value
			}
			if firstBalAmt == "" {
				firstBalAmt = tok.Value
			}
		}

		if current != nil && tok.Value != "" {
			current.set(tok.Tag, tok.Value)
		}
	}
	flush()

	for i, g := range groups {
		rec, err := recordFromOFX(g, i+1)
		if err != nil {
			return nil, err
		}
		st.Records = append(st.Records, rec)
	}

	if d, ok := parseOFXDate(dtStart); ok {
		st.PeriodStart = &d
	}
	if d, ok := parseOFXDate(dtEnd); ok {
		st.PeriodEnd = &d
	}

	bal := ledgerBal
	if bal == "" {
		bal = firstBalAmt
	}
	if bal != "" {
		amount, err := ParseAmount(bal)
		if err != nil {
			return nil, &model.ParseError{Source: "ofx", Field: "BALAMT", Value: bal, Err: err}
		}
		st.LedgerBalance = decimal.NullDecimal{Decimal: amount, Valid: true}
	}

	return st, nil
}

func recordFromOFX(f ofxFields, row int) (Record, error) {
	rawDate, ok := f["DTPOSTED"]
	if !ok {
		return Record{}, &model.ParseError{Source: "ofx", Row: row, Field: "DTPOSTED", Err: fmt.Errorf("missing")}
	}
	date, ok := parseOFXDate(rawDate)
	if !ok {
		return Record{}, &model.ParseError{Source: "ofx", Row: row, Field: "DTPOSTED", Value: rawDate, Err: fmt.Errorf("invalid date")}
	}

	rawAmount, ok := f["TRNAMT"]
	if !ok {
		return Record{}, &model.ParseError{Source: "ofx", Row: row, Field: "TRNAMT", Err: fmt.Errorf("missing")}
	}
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return Record{}, &model.ParseError{Source: "ofx", Row: row, Field: "TRNAMT", Value: rawAmount, Err: err}
	}

	desc := f["NAME"]
	if memo := f["MEMO"]; memo != "" {
		desc = desc + " " + memo
	}

	return Record{
		ExternalID:  f["FITID"],
		Date:        date,
		Amount:      amount,
		Description: NormalizeDescription(desc),
	}, nil
}

// parseOFXDate reads the YYYYMMDD prefix of an OFX datetime such as
// 20250105120000.000[-5:EST].
func parseOFXDate(s string) (time.Time, bool) {
	if len(s) < len(constants.OFXDateFormat) {
		return time.Time{}, false
	}
	d, err := time.Parse(constants.OFXDateFormat, s[:len(constants.OFXDateFormat)])
	if err != nil {
		return time.Time{}, false
	}
	return model.Day(d), true
}
