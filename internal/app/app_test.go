package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hance08/kea-ledger/internal/config"
)

func TestNewApp(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Database.Path = filepath.Join(t.TempDir(), "nested", "ledger.db")

	a, cleanup, err := NewApp(cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, cfg.Database.Path, a.DBPath)
	assert.NotNil(t, a.Service.Reconcile)

	_, err = os.Stat(cfg.Database.Path)
	assert.NoError(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/books/kea.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "books", "kea.db"), got)

	got, err = ExpandPath("/tmp/kea.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/kea.db", got)
}

func TestResolveDBPath_Default(t *testing.T) {
	got, err := ResolveDBPath(config.NewDefault())
	require.NoError(t, err)
	assert.Equal(t, "kea.db", filepath.Base(got))
}
