package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hance08/kea-ledger/cmd/account"
	"github.com/hance08/kea-ledger/cmd/check"
	"github.com/hance08/kea-ledger/cmd/imports"
	"github.com/hance08/kea-ledger/cmd/reconcile"
	"github.com/hance08/kea-ledger/cmd/transaction"
	"github.com/hance08/kea-ledger/internal/app"
	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/constants"
	"github.com/hance08/kea-ledger/internal/errhandler"
	"github.com/hance08/kea-ledger/internal/logging"
	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/store"
	"github.com/hance08/kea-ledger/internal/ui/prompts"
)

var (
	cfgFile string
	cfg     = config.NewDefault()
	// svc is filled in by the root PersistentPreRunE once the config and
	// database are ready; subcommands only dereference it inside RunE.
	svc     = &service.Service{}
	cleanup = func() {}
)

// annotationNoLedger marks commands that only need the config.
const annotationNoLedger = "kea.no-ledger"

func Execute() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	cleanup()
	if err != nil {
		errhandler.HandleError(err)
	}
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kea",
		Short: "kea is a double-entry ledger with bank statement reconciliation",
		Long: `kea records balanced transactions, reverses them and voids checks
without deleting history, imports bank statements from CSV and OFX files
and reconciles them against the ledger.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")
	rootCmd.PersistentFlags().String("log-level", "", "override log.level (debug, info, warn, error)")

	rootCmd.AddCommand(account.NewAccountCmd(svc, cfg))
	rootCmd.AddCommand(transaction.NewTransactionCmd(svc, cfg))
	rootCmd.AddCommand(check.NewCheckCmd(svc, cfg))
	rootCmd.AddCommand(imports.NewImportCmd(svc, cfg))
	rootCmd.AddCommand(reconcile.NewReconcileCmd(svc, cfg))
	rootCmd.AddCommand(NewPostCmd(svc))
	rootCmd.AddCommand(NewInfoCmd(cfg))

	return rootCmd
}

// setup loads the config, builds the logger and opens the ledger.
func setup(cmd *cobra.Command) error {
	if err := initConfig(); err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.Log.Level = f.Value.String()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cfg.ConfigPath, err)
	}

	if cmd.Annotations[annotationNoLedger] == "true" {
		return nil
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	application, done, err := app.NewApp(cfg, logger)
	if err != nil {
		return err
	}
	cleanup = done
	*svc = *application.Service

	return initSysAcc(cmd.Context(), svc)
}

func initSysAcc(ctx context.Context, svc *service.Service) error {
	_, err := svc.Account.GetAccountByName(ctx, constants.SystemAccountOpeningBalance)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrRecordNotFound) {
		return err
	}

	if viper.GetString("defaults.currency") == "" {
		currency, err := initWizard()
		if err != nil {
			return err
		}
		cfg.Defaults.Currency = currency
	}

	_, err = svc.Account.CreateAccount(ctx, service.AccountInput{
		Name: constants.SystemAccountOpeningBalance,
		Type: model.AccountTypeEquity,
	})
	if err != nil {
		return fmt.Errorf("failed create system account: %w", err)
	}

	return nil
}

func initConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.AppDataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if err := createDefaultConfig(appDir); err != nil {
			return fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix("KEA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	loaded := config.NewDefault()
	if err := viper.Unmarshal(loaded); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}
	loaded.ConfigPath = viper.ConfigFileUsed()
	*cfg = *loaded

	return nil
}

func initWizard() (string, error) {
	currency, err := prompts.PromptInitCurrency("USD")
	if err != nil {
		return "", err
	}

	viper.Set("defaults.currency", currency)

	if err := viper.WriteConfig(); err != nil {
		return "", fmt.Errorf("failed to save config to file: %w", err)
	}

	pterm.Success.Printf("Configuration saved. Default currency set to: %s\n", currency)

	return currency, nil
}

func createDefaultConfig(appDir string) error {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
