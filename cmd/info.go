package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hance08/kea-ledger/internal/app"
	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/ui/views"
)

type infoRunner struct {
	cfg *config.Config
}

func NewInfoCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:         "info",
		Short:       "Display application information",
		Long:        `Display current configuration, database path, and system details.`,
		Annotations: map[string]string{annotationNoLedger: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				cfg: cfg,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	configPath := r.cfg.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	dbPath, err := app.ResolveDBPath(r.cfg)
	if err != nil {
		return err
	}

	dbExists := false
	if _, err := os.Stat(dbPath); err == nil {
		dbExists = true
	}

	appDir, err := app.AppDataDir()
	if err != nil {
		appDir = "Unknown"
	}

	return views.RenderSystemInfo(views.SystemInfoItem{
		ConfigPath:      configPath,
		DBPath:          dbPath,
		DBExists:        dbExists,
		DefaultCurrency: r.cfg.Defaults.Currency,
		AppDataDir:      appDir,
		DateWindowDays:  r.cfg.Reconcile.DateWindowDays,
		LogLevel:        r.cfg.Log.Level,
	})
}
