package backups

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mori/internal/cli"
	"github.com/julianstephens/mori/internal/config"
	"github.com/julianstephens/mori/internal/storage/sqlite"
)

func newContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Database = filepath.Join(dir, "mori.db")
	cfg.Timezone = "UTC"

	store := sqlite.NewStore(cfg.Database)
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &cli.Context{
		Store:      store,
		Config:     cfg,
		ConfigPath: filepath.Join(dir, "config.toml"),
		Out:        out,
		Now:        func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
	}, out
}

func TestCreateAndList(t *testing.T) {
	ctx, out := newContext(t)

	require.NoError(t, (&BackupListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No backups found.")

	out.Reset()
	require.NoError(t, (&BackupCreateCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "✓ Backup created: mori-")

	out.Reset()
	require.NoError(t, (&BackupListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Available backups (1 total, keeping most recent 14)")
}

func TestRestoreReplacesDatabase(t *testing.T) {
	ctx, out := newContext(t)

	j, err := ctx.Journal()
	require.NoError(t, err)
	require.NoError(t, j.UpsertToday("before"))

	require.NoError(t, (&BackupCreateCmd{}).Run(ctx))
	mgr, err := ctx.BackupManager()
	require.NoError(t, err)
	list, err := mgr.ListBackups()
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, j.UpsertToday("after"))

	out.Reset()
	require.NoError(t, (&BackupRestoreCmd{BackupFile: list[0].Name(), Yes: true}).Run(ctx))
	assert.Contains(t, out.String(), "✓ Database restored successfully")
	assert.Contains(t, out.String(), "Previous database saved as")

	require.NoError(t, ctx.Store.Load())
	j, err = ctx.Journal()
	require.NoError(t, err)
	assert.Equal(t, "before", j.GetToday())
}

func TestRestoreCancelled(t *testing.T) {
	ctx, out := newContext(t)
	require.NoError(t, (&BackupCreateCmd{}).Run(ctx))
	mgr, _ := ctx.BackupManager()
	list, err := mgr.ListBackups()
	require.NoError(t, err)

	orig := confirmRestore
	confirmRestore = func(string) (bool, error) { return false, nil }
	t.Cleanup(func() { confirmRestore = orig })

	require.NoError(t, (&BackupRestoreCmd{BackupFile: list[0].Path}).Run(ctx))
	assert.Contains(t, out.String(), "Restore cancelled.")
}

func TestResolveBackupPath(t *testing.T) {
	_, err := resolveBackupPath("missing.db", t.TempDir())
	assert.Error(t, err)

	_, err = resolveBackupPath(filepath.Join(t.TempDir(), "missing.db"), t.TempDir())
	assert.Error(t, err)
}
