package lifegrid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mori/internal/constants"
	"github.com/julianstephens/mori/internal/lifespan"
)

const (
	LivedCell  = "■"
	FutureCell = "□"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	livedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	futureStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Render draws the grid one year per line with an age label every fifth year.
// Lived weeks are gray, future weeks blue, and the current week highlighted.
func Render(g lifespan.Grid) string {
	current := g.CurrentWeek()

	var b strings.Builder
	for row := 0; row < g.Rows(); row++ {
		if row%5 == 0 {
			b.WriteString(labelStyle.Render(fmt.Sprintf("%3d ", row)))
		} else {
			b.WriteString("    ")
		}
		for col := 0; col < g.Columns(); col++ {
			week := row*g.Columns() + col
			switch {
			case week == current:
				b.WriteString(currentStyle.Render(LivedCell))
			case g.At(row, col):
				b.WriteString(livedStyle.Render(LivedCell))
			default:
				b.WriteString(futureStyle.Render(FutureCell))
			}
		}
		if row < g.Rows()-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Header is the title block shown above the grid.
func Header(g lifespan.Grid) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Life in Squares"),
		subtitleStyle.Render(fmt.Sprintf("%d years × %d weeks, %d lived", constants.GridRows, constants.GridColumns, g.LivedCount())),
	)
}

type Model struct {
	grid     lifespan.Grid
	viewport viewport.Model
	focused  bool
}

func New(width, height int) Model {
	vp := viewport.New(width, height)
	return Model{viewport: vp}
}

// SetGrid replaces the grid and keeps the current week in view.
func (m *Model) SetGrid(g lifespan.Grid) {
	m.grid = g
	m.viewport.SetContent(Render(g))
	m.scrollToCurrent()
}

func (m Model) Grid() lifespan.Grid { return m.grid }

func (m *Model) scrollToCurrent() {
	week := m.grid.CurrentWeek()
	if week < 0 {
		m.viewport.GotoTop()
		return
	}
	row := week / constants.GridColumns
	offset := row - m.viewport.Height/2
	if offset < 0 {
		offset = 0
	}
	m.viewport.SetYOffset(offset)
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.scrollToCurrent()
}

func (m *Model) Focus() { m.focused = true }
func (m *Model) Blur()  { m.focused = false }

// YOffset reports the first visible row.
func (m Model) YOffset() int { return m.viewport.YOffset }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		Header(m.grid),
		m.viewport.View(),
	)
}
