package lifegrid

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mori/internal/constants"
	"github.com/julianstephens/mori/internal/lifespan"
)

func TestRenderShape(t *testing.T) {
	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	g := lifespan.BuildGrid(birth, birth.AddDate(10, 0, 0))

	out := Render(g)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, constants.GridRows)

	total := strings.Count(out, LivedCell) + strings.Count(out, FutureCell)
	assert.Equal(t, constants.GridCells, total)
	assert.Equal(t, g.LivedCount(), strings.Count(out, LivedCell))
	assert.Contains(t, lines[0], "  0 ")
	assert.Contains(t, lines[5], "  5 ")
}

func TestRenderBeforeBirth(t *testing.T) {
	birth := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	g := lifespan.BuildGrid(birth, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 0, strings.Count(Render(g), LivedCell))
}

func TestModelScrollsToCurrentWeek(t *testing.T) {
	birth := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
	m := New(60, 10)
	m.SetGrid(lifespan.BuildGrid(birth, time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)))

	// Sixty years lived: row 60 sits in the middle of a ten-line window.
	assert.Equal(t, 55, m.YOffset())
	assert.Contains(t, m.View(), "Life in Squares")
}

func TestModelIgnoresKeysWhenBlurred(t *testing.T) {
	birth := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	m := New(60, 10)
	m.SetGrid(lifespan.BuildGrid(birth, birth))
	require.Equal(t, 0, m.YOffset())

	down := tea.KeyMsg{Type: tea.KeyDown}
	m, _ = m.Update(down)
	assert.Equal(t, 0, m.YOffset())

	m.Focus()
	m, _ = m.Update(down)
	assert.Equal(t, 1, m.YOffset())
}
