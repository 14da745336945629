package imports

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/ui/views"
	"github.com/hance08/kea-ledger/internal/utils"
)

type importFlags struct {
	Account      string
	Start        string
	End          string
	Opening      string
	Closing      string
	InferOpening bool
}

type importFunc func(ctx context.Context, req service.ImportRequest, r io.Reader) (*service.ImportResult, error)

type importRunner struct {
	svc    *service.Service
	cfg    *config.Config
	flags  *importFlags
	format string
}

func NewImportCmd(svc *service.Service, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a bank statement",
		Long: `Import bank activity into the statement for an account and period.
Records already imported are skipped, so the same file can be loaded twice.`,
	}

	cmd.AddCommand(newFormatCmd(svc, cfg, "csv", `Import a CSV export. Column names and the date layout come from
import.csv in the config file.

Example: kea import csv january.csv --account Checking --start 2025-01-01 --end 2025-01-31`))
	cmd.AddCommand(newFormatCmd(svc, cfg, "ofx", `Import an OFX/QFX file. The period and closing balance are read from
the file when not given.

Example: kea import ofx january.ofx --account Checking --infer-opening`))

	return cmd
}

func newFormatCmd(svc *service.Service, cfg *config.Config, format, long string) *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   format + " <file>",
		Short: fmt.Sprintf("Import a %s statement file", format),
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &importRunner{svc: svc, cfg: cfg, flags: flags, format: format}
			return runner.Run(cmd.Context(), args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.Account, "account", "a", "", "Bank account (name or ID)")
	cmd.Flags().StringVar(&flags.Start, "start", "", "Statement period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.End, "end", "", "Statement period end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.Opening, "opening", "", "Opening balance")
	cmd.Flags().StringVar(&flags.Closing, "closing", "", "Closing balance")
	cmd.Flags().BoolVar(&flags.InferOpening, "infer-opening", false, "Compute the opening balance from the closing balance")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func (r *importRunner) Run(ctx context.Context, path string) error {
	req, err := r.request(ctx)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open statement: %w", err)
	}
	defer f.Close()

	var run importFunc = r.svc.Import.ImportCSV
	if r.format == "ofx" {
		run = r.svc.Import.ImportOFX
	}

	res, err := run(ctx, req, f)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}

	return views.RenderImportResult(res, r.cfg.Defaults.Currency)
}

func (r *importRunner) request(ctx context.Context) (service.ImportRequest, error) {
	var req service.ImportRequest

	acc, err := r.svc.Account.ResolveAccount(ctx, r.flags.Account)
	if err != nil {
		return req, err
	}
	req.AccountID = acc.ID

	if req.PeriodStart, err = utils.ParseOptionalDate(r.flags.Start); err != nil {
		return req, err
	}
	if req.PeriodEnd, err = utils.ParseOptionalDate(r.flags.End); err != nil {
		return req, err
	}

	if req.Opening, err = utils.ParseOptionalAmount(r.flags.Opening); err != nil {
		return req, err
	}
	if req.Closing, err = utils.ParseOptionalAmount(r.flags.Closing); err != nil {
		return req, err
	}
	req.InferOpening = r.flags.InferOpening

	return req, nil
}
