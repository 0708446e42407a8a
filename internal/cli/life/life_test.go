package life

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mori/internal/cli"
	"github.com/julianstephens/mori/internal/config"
	"github.com/julianstephens/mori/internal/constants"
)

func newContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.BirthDate = "1990-06-15"
	out := &bytes.Buffer{}
	return &cli.Context{
		Config: cfg,
		Out:    out,
		Now:    func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
	}, out
}

func TestCountdownAt(t *testing.T) {
	ctx, out := newContext(t)
	// Age 33 on 2024-06-01; 52 years from then is 2076-06-01.
	require.NoError(t, (&CountdownCmd{At: "2024-06-01"}).Run(ctx))
	assert.Contains(t, out.String(), "Time Remaining: 18,993 days")
	assert.Contains(t, out.String(), "Age 33 of 85 (extrapolate)")
}

func TestCountdownDirect(t *testing.T) {
	ctx, out := newContext(t)
	ctx.Config.CountdownMethod = string(constants.CountdownDirect)
	// 2024-06-01 to 2075-06-15.
	require.NoError(t, (&CountdownCmd{At: "2024-06-01"}).Run(ctx))
	assert.Contains(t, out.String(), "Time Remaining: 18,641 days")
}

func TestCountdownPastExpectancy(t *testing.T) {
	ctx, out := newContext(t)
	require.NoError(t, (&CountdownCmd{At: "2090-01-01"}).Run(ctx))
	assert.Contains(t, out.String(), "Time Remaining: 0 days")
}

func TestCountdownBadAt(t *testing.T) {
	ctx, _ := newContext(t)
	assert.Error(t, (&CountdownCmd{At: "June 1"}).Run(ctx))
}

func TestGrid(t *testing.T) {
	ctx, out := newContext(t)
	require.NoError(t, (&GridCmd{}).Run(ctx))

	text := out.String()
	assert.Contains(t, text, "Life in Squares")
	rows := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.ContainsAny(line, "■□") {
			rows++
		}
	}
	assert.Equal(t, constants.GridRows, rows)
}
