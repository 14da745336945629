package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/kea-ledger/internal/config"
	"github.com/hance08/kea-ledger/internal/model"
	"github.com/hance08/kea-ledger/internal/service"
	"github.com/hance08/kea-ledger/internal/store"
)

type cli struct {
	dir     string
	cfgPath string
	dbPath  string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	c := &cli{
		dir:     dir,
		cfgPath: filepath.Join(dir, "config.yaml"),
		dbPath:  filepath.Join(dir, "kea.db"),
	}
	yaml := fmt.Sprintf("database:\n  path: %s\ndefaults:\n  currency: USD\nlog:\n  level: error\n", c.dbPath)
	require.NoError(t, os.WriteFile(c.cfgPath, []byte(yaml), 0o644))
	return c
}

func (c *cli) run(args ...string) error {
	root := NewRootCmd()
	root.SetArgs(append([]string{"--config", c.cfgPath}, args...))
	err := root.ExecuteContext(context.Background())
	cleanup()
	cleanup = func() {}
	return err
}

// open returns a service on the same database for assertions.
func (c *cli) open(t *testing.T) *service.Service {
	t.Helper()
	s, err := store.NewStore(c.dbPath, store.MigrationsFS)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return service.NewService(s, config.NewDefault(), nil)
}

func TestCLI_PostImportReconcile(t *testing.T) {
	c := newCLI(t)

	require.NoError(t, c.run("account", "create", "-n", "Checking", "-t", "A"))
	require.NoError(t, c.run("account", "create", "-n", "Food", "-t", "E"))
	require.NoError(t, c.run("post", "--date", "2025-01-05", "--desc", "Lunch",
		"--split", "Food:12.50", "--split", "Checking:-12.50"))

	statement := filepath.Join(c.dir, "jan.csv")
	require.NoError(t, os.WriteFile(statement, []byte("date,amount,description\n2025-01-06,-12.50,LUNCH PLACE\n"), 0o644))
	require.NoError(t, c.run("import", "csv", statement, "--account", "Checking", "--start", "2025-01-01", "--end", "2025-01-31", "--opening", "100", "--closing", "87.50"))
	require.NoError(t, c.run("import", "csv", statement, "--account", "Checking", "--start", "2025-01-01", "--end", "2025-01-31"))

	require.NoError(t, c.run("reconcile", "propose", "--account", "Checking", "--start", "2025-01-01", "--end", "2025-01-31"))
	require.NoError(t, c.run("reconcile", "apply", "--all", "--account", "Checking", "--start", "2025-01-01", "--end", "2025-01-31"))
	require.NoError(t, c.run("reconcile", "status", "--account", "Checking", "--start", "2025-01-01", "--end", "2025-01-31"))

	svc := c.open(t)
	ctx := context.Background()
	bank, err := svc.Account.GetAccountByName(ctx, "Checking")
	require.NoError(t, err)
	status, err := svc.Reconcile.Status(ctx, bank.ID, mustDay(t, "2025-01-01"), mustDay(t, "2025-01-31"))
	require.NoError(t, err)
	assert.Equal(t, 1, status.MatchedCount)
	assert.Equal(t, 0, status.UnmatchedCount)
	assert.True(t, status.Balanced)

	_, err = svc.Account.GetAccountByName(ctx, "Opening Balances")
	assert.NoError(t, err, "first run creates the opening balance account")
}

func TestCLI_ReverseAndVoid(t *testing.T) {
	c := newCLI(t)

	require.NoError(t, c.run("account", "create", "-n", "Checking", "-t", "A"))
	require.NoError(t, c.run("account", "create", "-n", "Rent", "-t", "E"))
	require.NoError(t, c.run("check", "issue", "--account", "Checking", "--to", "Rent", "--number", "1001", "--payee", "Landlord", "--amount", "1200", "--date", "2025-02-01"))
	require.NoError(t, c.run("check", "void", "1", "--yes", "--date", "2025-02-03"))

	err := c.run("check", "void", "1", "--yes")
	var ve *model.AlreadyVoidError
	assert.True(t, errors.As(err, &ve))

	err = c.run("transaction", "reverse", "1", "--yes")
	var ae *model.AlreadyReversedError
	assert.True(t, errors.As(err, &ae), "voiding reversed the check payment")

	require.NoError(t, c.run("transaction", "show", "2"))
	require.NoError(t, c.run("transaction", "list"))
	require.NoError(t, c.run("account", "list"))
}

func TestCLI_AccountOpeningBalance(t *testing.T) {
	c := newCLI(t)

	require.NoError(t, c.run("account", "create", "-n", "Savings", "-t", "A", "--balance", "2,500.00", "--date", "2025-01-01"))
	assert.Error(t, c.run("account", "create", "-n", "Loan", "-t", "L", "--balance", "12.345"))

	svc := c.open(t)
	ctx := context.Background()
	savings, err := svc.Account.GetAccountByName(ctx, "Savings")
	require.NoError(t, err)
	bal, err := svc.Account.Balance(ctx, savings.ID)
	require.NoError(t, err)
	assert.Equal(t, "2500.00", bal.StringFixed(2))

	_, err = svc.Account.GetAccountByName(ctx, "Loan")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestCLI_Rejections(t *testing.T) {
	c := newCLI(t)
	require.NoError(t, c.run("account", "create", "-n", "Checking", "-t", "A"))
	require.NoError(t, c.run("account", "create", "-n", "Food", "-t", "E"))

	err := c.run("post", "--split", "Food:10", "--split", "Checking:-9.99")
	var ue *model.UnbalancedTransactionError
	assert.True(t, errors.As(err, &ue))

	assert.Error(t, c.run("post", "--split", "Food"))
	assert.Error(t, c.run("reconcile", "status", "--account", "Checking"))
	assert.Error(t, c.run("reconcile", "apply", "1"))

	err = c.run("reconcile", "unmatch", "1")
	var nf *model.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDay(s)
	require.NoError(t, err)
	return d
}
