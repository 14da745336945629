package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/kea-ledger/internal/model"
)

const coffeeCSV = `date,amount,description
2025-01-05,-50.00,Coffee
2025-01-05,-50.00,Coffee
2025-01-07,1200.00,Payroll
2025-02-01,-9.99,Next month
`

const januaryOFX = `OFXHEADER:100
DATA:OFXSGML

<OFX><BANKMSGSRSV1><STMTTRNRS><STMTRS>
<BANKTRANLIST>
<DTSTART>20250101
<DTEND>20250131
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250105120000
<TRNAMT>-50.00
<FITID>F1
<NAME>COFFEE SHOP
<MEMO>POS
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20250107
<TRNAMT>1200.00
<FITID>F2
<NAME>PAYROLL
</BANKTRANLIST>
<LEDGERBAL><BALAMT>1650.00<DTASOF>20250131</LEDGERBAL>
</STMTRS></STMTTRNRS></BANKMSGSRSV1></OFX>
`

func TestImportCSV_DuplicateRows(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Import.ImportCSV(f.ctx, ImportRequest{
		AccountID:   f.bank,
		PeriodStart: day(2025, 1, 1),
		PeriodEnd:   day(2025, 1, 31),
	}, strings.NewReader(coffeeCSV))
	require.NoError(t, err)

	assert.True(t, res.StatementCreated)
	require.Len(t, res.Lines, 2)
	assert.Equal(t, "Coffee", res.Lines[0].Description)
	assert.Equal(t, 1, res.SkippedDuplicates)
	assert.Equal(t, 1, res.SkippedOutOfPeriod)
}

func TestImportCSV_Idempotent(t *testing.T) {
	f := newFixture(t)
	req := ImportRequest{AccountID: f.bank, PeriodStart: day(2025, 1, 1), PeriodEnd: day(2025, 1, 31)}

	first, err := f.svc.Import.ImportCSV(f.ctx, req, strings.NewReader(coffeeCSV))
	require.NoError(t, err)
	linesOnce, err := f.store.ListStatementLines(f.ctx, first.Statement.ID)
	require.NoError(t, err)

	second, err := f.svc.Import.ImportCSV(f.ctx, req, strings.NewReader(coffeeCSV))
	require.NoError(t, err)
	assert.False(t, second.StatementCreated)
	assert.Equal(t, first.Statement.ID, second.Statement.ID)
	assert.Empty(t, second.Lines)
	assert.Equal(t, 3, second.SkippedDuplicates)

	linesTwice, err := f.store.ListStatementLines(f.ctx, first.Statement.ID)
	require.NoError(t, err)
	assert.Equal(t, linesOnce, linesTwice)
}

func TestImportCSV_KeepsExistingBalances(t *testing.T) {
	f := newFixture(t)
	req := ImportRequest{
		AccountID:   f.bank,
		PeriodStart: day(2025, 1, 1),
		PeriodEnd:   day(2025, 1, 31),
		Opening:     decimal.NewNullDecimal(dec("100")),
		Closing:     decimal.NewNullDecimal(dec("1200")),
	}
	_, err := f.svc.Import.ImportCSV(f.ctx, req, strings.NewReader(coffeeCSV))
	require.NoError(t, err)

	req.Opening = decimal.NewNullDecimal(dec("5"))
	req.Closing = decimal.NewNullDecimal(dec("6"))
	res, err := f.svc.Import.ImportCSV(f.ctx, req, strings.NewReader(coffeeCSV))
	require.NoError(t, err)
	assert.True(t, res.Statement.Opening.Equal(dec("100")))
	assert.True(t, res.Statement.Closing.Equal(dec("1200")))
}

func TestImportCSV_PeriodFromRecords(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.Import.ImportCSV(f.ctx, ImportRequest{AccountID: f.bank}, strings.NewReader(coffeeCSV))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-05", model.FormatDay(res.Statement.PeriodStart))
	assert.Equal(t, "2025-02-01", model.FormatDay(res.Statement.PeriodEnd))
	assert.Len(t, res.Lines, 3)
}

func TestImportCSV_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Import.ImportCSV(f.ctx, ImportRequest{AccountID: 999}, strings.NewReader(coffeeCSV))
	var re *model.ReferenceError
	assert.True(t, errors.As(err, &re))

	_, err = f.svc.Import.ImportCSV(f.ctx, ImportRequest{AccountID: f.bank}, strings.NewReader("date,amount,description\n2025-01-05,x,Coffee\n"))
	var pe *model.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Row)

	_, err = f.svc.Import.ImportCSV(f.ctx, ImportRequest{AccountID: f.bank}, strings.NewReader("date,amount,description\n"))
	assert.True(t, errors.As(err, &pe), "an empty file has no period")
}

func TestImportOFX(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Import.ImportOFX(f.ctx, ImportRequest{AccountID: f.bank, InferOpening: true}, strings.NewReader(januaryOFX))
	require.NoError(t, err)
	require.Len(t, res.Lines, 2)

	st := res.Statement
	assert.Equal(t, "2025-01-01", model.FormatDay(st.PeriodStart))
	assert.Equal(t, "2025-01-31", model.FormatDay(st.PeriodEnd))
	assert.True(t, st.Closing.Equal(dec("1650.00")))
	assert.True(t, st.Opening.Equal(dec("500.00")), "opening is closing minus the period net")

	assert.Equal(t, "F1", res.Lines[0].ExternalID)
	assert.Equal(t, "COFFEE SHOP POS", res.Lines[0].Description)

	again, err := f.svc.Import.ImportOFX(f.ctx, ImportRequest{AccountID: f.bank}, strings.NewReader(januaryOFX))
	require.NoError(t, err)
	assert.Empty(t, again.Lines)
	assert.Equal(t, 2, again.SkippedDuplicates)
}

func TestImportOFX_InferOpeningNeedsClosing(t *testing.T) {
	f := newFixture(t)
	doc := "<STMTTRN><DTPOSTED>20250105<TRNAMT>-1.00<FITID>A</STMTTRN>"
	_, err := f.svc.Import.ImportOFX(f.ctx, ImportRequest{AccountID: f.bank, InferOpening: true}, strings.NewReader(doc))
	assert.Error(t, err)
}
