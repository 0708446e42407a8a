package settings

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mori/internal/cli"
	"github.com/julianstephens/mori/internal/config"
)

func newContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return &cli.Context{
		Config:     config.Default(),
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Out:        out,
	}, out
}

func TestShow(t *testing.T) {
	ctx, out := newContext(t)
	require.NoError(t, (&ConfigShowCmd{}).Run(ctx))
	for _, want := range []string{"birth_date", "1990-01-01", "life_expectancy", "85", "Exercise,Read,Meditate"} {
		assert.Contains(t, out.String(), want)
	}
}

func TestSetWritesFile(t *testing.T) {
	ctx, out := newContext(t)
	require.NoError(t, (&ConfigSetCmd{Key: "habits", Value: "Walk, Write ,,Walk"}).Run(ctx))
	assert.Contains(t, out.String(), "Set habits = Walk,Write")

	saved, err := config.LoadFile(ctx.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Walk", "Write"}, saved.Habits)
}

func TestSetDoesNotPersistEnvOverrides(t *testing.T) {
	ctx, _ := newContext(t)
	t.Setenv("MORI_LIFE_EXPECTANCY", "60")

	require.NoError(t, (&ConfigSetCmd{Key: "timezone", Value: "UTC"}).Run(ctx))
	saved, err := config.LoadFile(ctx.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, 85, saved.LifeExpectancy)
	assert.Equal(t, "UTC", saved.Timezone)
}

func TestSetRejectsInvalid(t *testing.T) {
	ctx, _ := newContext(t)
	assert.ErrorIs(t, (&ConfigSetCmd{Key: "colour", Value: "red"}).Run(ctx), config.ErrUnknownKey)
	assert.Error(t, (&ConfigSetCmd{Key: "timezone", Value: "Mars/Olympus"}).Run(ctx))
	assert.NoFileExists(t, ctx.ConfigPath)
}
