package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/logging"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/store"
)

type App struct {
	Service *service.Service
	Store   *store.Store
	DBPath  string
}

// NewApp opens the database, runs migrations and wires the services.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, func(), error) {
	logger = logging.OrNop(logger)

	dbPath, err := ResolveDBPath(cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dbStore, err := store.NewStore(dbPath, store.MigrationsFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Debug("database ready", zap.String("path", dbPath))

	svc := service.NewService(dbStore, cfg, logger)

	cleanup := func() {
		if err := dbStore.Close(); err != nil {
			logger.Error("closing database", zap.Error(err))
		}
		_ = logger.Sync()
	}

	return &App{
		Service: svc,
		Store:   dbStore,
		DBPath:  dbPath,
	}, cleanup, nil
}

// ResolveDBPath expands ~ in database.path and falls back to kea.db in the
// app data directory.
func ResolveDBPath(cfg *config.Config) (string, error) {
	if cfg.Database.Path == "" {
		appDir, err := AppDataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(appDir, "kea.db"), nil
	}
	return ExpandPath(cfg.Database.Path)
}

func AppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".kea"), nil
	}

	return filepath.Join(configDir, "kea"), nil
}

func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
