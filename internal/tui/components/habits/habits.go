package habits

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type IncrementMsg struct {
	Name string
}

type DecrementMsg struct {
	Name string
}

// Source supplies the habit names and tallies to display.
type Source interface {
	Habits() []string
	Tally(name string) int
	Bonus() int
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	tallyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	positiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	negativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Increment key.Binding
	Decrement key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Increment: key.NewBinding(
			key.WithKeys("+", "=", "right", "l"),
			key.WithHelp("+", "+10 min"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-", "_", "left", "h"),
			key.WithHelp("-", "-10 min"),
		),
	}
}

type Model struct {
	source  Source
	keys    KeyMap
	cursor  int
	focused bool
	width   int
}

func New(source Source) Model {
	return Model{
		source: source,
		keys:   DefaultKeyMap(),
	}
}

func (m Model) Keys() KeyMap { return m.keys }

func (m *Model) Focus() { m.focused = true }
func (m *Model) Blur()  { m.focused = false }

func (m *Model) SetWidth(width int) {
	m.width = width
}

// Selected returns the highlighted habit, or "" when there are none.
func (m Model) Selected() string {
	names := m.source.Habits()
	if len(names) == 0 {
		return ""
	}
	return names[m.cursor]
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	count := len(m.source.Habits())
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < count-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Increment):
		if name := m.Selected(); name != "" {
			return m, func() tea.Msg { return IncrementMsg{Name: name} }
		}
	case key.Matches(keyMsg, m.keys.Decrement):
		if name := m.Selected(); name != "" {
			return m, func() tea.Msg { return DecrementMsg{Name: name} }
		}
	}
	return m, nil
}

// BonusLine renders "Today's Bonus: N minutes", green when N >= 0 and red otherwise.
func BonusLine(bonus int) string {
	style := positiveStyle
	if bonus < 0 {
		style = negativeStyle
	}
	return "Today's Bonus: " + style.Render(fmt.Sprintf("%d minutes", bonus))
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Habit Tracking"))
	b.WriteString("\n")

	for i, name := range m.source.Habits() {
		cursor := "  "
		style := itemStyle
		if m.focused && i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(fmt.Sprintf("[-] %-12s [+]", name)))
		b.WriteString(tallyStyle.Render(fmt.Sprintf(" %+d", m.source.Tally(name))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(BonusLine(m.source.Bonus()))
	return b.String()
}
