package countdown

import (
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mori/internal/lifespan"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Bold(true)

	daysStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	unitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	birth      time.Time
	expectancy int
	method     lifespan.Method
	days       int
	age        int
	width      int
}

func New(birth time.Time, expectancy int, method lifespan.Method) Model {
	return Model{
		birth:      birth,
		expectancy: expectancy,
		method:     method,
	}
}

// Refresh recomputes the countdown for now.
func (m *Model) Refresh(now time.Time) {
	m.days = lifespan.Remaining(m.method, m.birth, now, m.expectancy)
	m.age = lifespan.Age(m.birth, now)
}

func (m Model) Days() int { return m.days }

func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Time Remaining"),
		daysStyle.Render(FormatDays(m.days)),
		unitStyle.Render("days"),
		detailStyle.Render(fmt.Sprintf("age %d of %d", m.age, m.expectancy)),
	)
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content)
	}
	return content
}

// FormatDays renders n with thousands separators.
func FormatDays(n int) string {
	if n < 0 {
		return "-" + FormatDays(-n)
	}
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
