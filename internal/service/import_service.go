package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/importer"
	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/store"
)

type ImportService struct {
	repo   store.UnitOfWork
	config *config.Config
	logger *zap.Logger
}

func NewImportService(repo store.UnitOfWork, cfg *config.Config, logger *zap.Logger) *ImportService {
	return &ImportService{repo: repo, config: cfg, logger: logger}
}

// ImportRequest selects the statement an import feeds. A zero PeriodStart or
// PeriodEnd is taken from the document (OFX DTSTART/DTEND) or from the
// earliest and latest record dates. Opening and Closing are only used when
// the statement is created; an existing statement keeps its balances.
type ImportRequest struct {
	AccountID   int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	Opening     decimal.NullDecimal
	Closing     decimal.NullDecimal
	// InferOpening computes opening as closing minus the sum of the
	// in-period records when Opening is not given.
	InferOpening bool
}

// ImportResult reports what an import changed.
type ImportResult struct {
	Statement          *model.Statement
	Lines              []*model.StatementLine
	StatementCreated   bool
	SkippedDuplicates  int
	SkippedOutOfPeriod int
}

// ImportCSV parses a CSV bank export with the configured column layout and
// adds its new lines to the statement.
func (is *ImportService) ImportCSV(ctx context.Context, req ImportRequest, r io.Reader) (*ImportResult, error) {
	csvCfg := is.config.Import.CSV
	parser := importer.NewCSVParser(importer.CSVLayout{
		DateColumn:        csvCfg.DateColumn,
		AmountColumn:      csvCfg.AmountColumn,
		DescriptionColumn: csvCfg.DescriptionColumn,
		ExternalIDColumn:  csvCfg.ExternalIDColumn,
		DateFormat:        csvCfg.DateFormat,
	})

	records, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}
	return is.importRecords(ctx, req, parser.Format(), records)
}

// ImportOFX parses an OFX/QFX document and adds its new lines to the
// statement. The document's period and ledger balance fill in whatever the
// request leaves empty.
func (is *ImportService) ImportOFX(ctx context.Context, req ImportRequest, r io.Reader) (*ImportResult, error) {
	parser := importer.NewOFXParser()
	st, err := parser.ParseStatement(r)
	if err != nil {
		return nil, err
	}

	if req.PeriodStart.IsZero() && st.PeriodStart != nil {
		req.PeriodStart = *st.PeriodStart
	}
	if req.PeriodEnd.IsZero() && st.PeriodEnd != nil {
		req.PeriodEnd = *st.PeriodEnd
	}
	if !req.Closing.Valid && st.LedgerBalance.Valid {
		req.Closing = st.LedgerBalance
	}
	return is.importRecords(ctx, req, parser.Format(), st.Records)
}

func (is *ImportService) importRecords(ctx context.Context, req ImportRequest, source string, records []importer.Record) (*ImportResult, error) {
	ok, err := is.repo.AccountExists(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &model.ReferenceError{Entity: "account", ID: req.AccountID}
	}

	start, end, err := resolvePeriod(req, records, source)
	if err != nil {
		return nil, err
	}
	period := model.Statement{PeriodStart: start, PeriodEnd: end}

	result := &ImportResult{}

	inPeriod := make([]importer.Record, 0, len(records))
	for _, rec := range records {
		if !period.Contains(rec.Date) {
			result.SkippedOutOfPeriod++
			continue
		}
		inPeriod = append(inPeriod, rec)
	}

	batch, dropped := importer.Dedup(inPeriod)
	result.SkippedDuplicates = dropped

	opening, closing, err := resolveBalances(req, batch)
	if err != nil {
		return nil, err
	}

	err = is.repo.ExecTx(ctx, func(repo store.Repository) error {
		st, created, err := findOrCreateStatement(ctx, repo, &model.Statement{
			AccountID:   req.AccountID,
			PeriodStart: start,
			PeriodEnd:   end,
			Opening:     opening,
			Closing:     closing,
		})
		if err != nil {
			return err
		}
		result.Statement = st
		result.StatementCreated = created

		existing, err := repo.ListStatementLines(ctx, st.ID)
		if err != nil {
			return err
		}
		persisted := make(map[model.DedupKey]struct{}, len(existing))
		for _, line := range existing {
			persisted[model.KeyOf(*line)] = struct{}{}
		}

		for _, rec := range batch {
			if _, dup := persisted[rec.Key()]; dup {
				result.SkippedDuplicates++
				continue
			}

			line := rec.Line(st.ID)
			if _, err := repo.CreateStatementLine(ctx, &line); err != nil {
				if errors.Is(err, store.ErrDuplicate) {
					result.SkippedDuplicates++
					continue
				}
				return err
			}
			result.Lines = append(result.Lines, &line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	is.logger.Info("statement imported",
		zap.String("source", source),
		zap.Int64("statement_id", result.Statement.ID),
		zap.Bool("statement_created", result.StatementCreated),
		zap.Int("lines_created", len(result.Lines)),
		zap.Int("skipped_duplicates", result.SkippedDuplicates),
		zap.Int("skipped_out_of_period", result.SkippedOutOfPeriod),
	)
	return result, nil
}

// findOrCreateStatement returns the statement for the same account and
// period, creating it with want's balances if it does not exist yet.
func findOrCreateStatement(ctx context.Context, repo store.Repository, want *model.Statement) (*model.Statement, bool, error) {
	st, err := repo.FindStatement(ctx, want.AccountID, want.PeriodStart, want.PeriodEnd)
	if err == nil {
		return st, false, nil
	}
	if !errors.Is(err, store.ErrRecordNotFound) {
		return nil, false, err
	}

	if _, err := repo.CreateStatement(ctx, want); err != nil {
		return nil, false, err
	}
	return want, true, nil
}

func resolvePeriod(req ImportRequest, records []importer.Record, source string) (time.Time, time.Time, error) {
	start, end := req.PeriodStart, req.PeriodEnd
	if start.IsZero() || end.IsZero() {
		var minDate, maxDate time.Time
		for _, rec := range records {
			if minDate.IsZero() || rec.Date.Before(minDate) {
				minDate = rec.Date
			}
			if maxDate.IsZero() || rec.Date.After(maxDate) {
				maxDate = rec.Date
			}
		}
		if start.IsZero() {
			start = minDate
		}
		if end.IsZero() {
			end = maxDate
		}
	}

	if start.IsZero() || end.IsZero() {
		return time.Time{}, time.Time{}, &model.ParseError{Source: source, Err: fmt.Errorf("cannot determine statement period")}
	}
	start, end = model.Day(start), model.Day(end)
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("statement period end %s is before start %s", model.FormatDay(end), model.FormatDay(start))
	}
	return start, end, nil
}

func resolveBalances(req ImportRequest, batch []importer.Record) (decimal.Decimal, decimal.Decimal, error) {
	opening, closing := decimal.Zero, decimal.Zero
	if req.Closing.Valid {
		closing = req.Closing.Decimal
	}
	switch {
	case req.Opening.Valid:
		opening = req.Opening.Decimal
	case req.InferOpening:
		if !req.Closing.Valid {
			return decimal.Zero, decimal.Zero, fmt.Errorf("cannot infer opening balance without a closing balance")
		}
		net := decimal.Zero
		for _, rec := range batch {
			net = net.Add(rec.Amount)
		}
		opening = closing.Sub(net)
	}

	for _, d := range []decimal.Decimal{opening, closing} {
		if err := model.ValidateAmount(d); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
	}
	return opening, closing, nil
}
