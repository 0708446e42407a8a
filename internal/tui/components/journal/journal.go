package journal

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mori/internal/constants"
)

// ChangedMsg is sent whenever an edit changes the text.
type ChangedMsg struct {
	Text string
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Bold(true)

	savedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	unsavedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)
)

type Model struct {
	textarea  textarea.Model
	day       string
	lastSaved time.Time
	saveErr   error
	loc       *time.Location
}

func New(width, height int) Model {
	ta := textarea.New()
	ta.Placeholder = "What are you grateful for today?"
	ta.ShowLineNumbers = false
	ta.SetWidth(width)
	ta.SetHeight(height)
	return Model{textarea: ta, loc: time.Local}
}

// SetLocation sets the timezone the save time is shown in.
func (m *Model) SetLocation(loc *time.Location) {
	if loc != nil {
		m.loc = loc
	}
}

// SetText loads a day's entry into the editor, clearing any save status.
func (m *Model) SetText(day, text string) {
	m.day = day
	m.textarea.SetValue(text)
	m.saveErr = nil
}

// SetSaved records the outcome of the latest write.
func (m *Model) SetSaved(at time.Time, err error) {
	if err != nil {
		m.saveErr = err
		return
	}
	m.saveErr = nil
	m.lastSaved = at
}

// SetLastSaved shows a save time without touching the error state.
func (m *Model) SetLastSaved(at time.Time) {
	m.lastSaved = at
}

func (m Model) Value() string { return m.textarea.Value() }
func (m Model) Day() string   { return m.day }
func (m Model) Focused() bool { return m.textarea.Focused() }
func (m Model) Err() error    { return m.saveErr }

func (m *Model) Focus() tea.Cmd { return m.textarea.Focus() }
func (m *Model) Blur()          { m.textarea.Blur() }

func (m *Model) SetSize(width, height int) {
	m.textarea.SetWidth(width)
	m.textarea.SetHeight(height)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	before := m.textarea.Value()

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)

	if after := m.textarea.Value(); after != before {
		changed := func() tea.Msg { return ChangedMsg{Text: after} }
		return m, tea.Batch(cmd, changed)
	}
	return m, cmd
}

func (m Model) status() string {
	switch {
	case m.saveErr != nil:
		return unsavedStyle.Render("Not saved: " + m.saveErr.Error())
	case !m.lastSaved.IsZero():
		return savedStyle.Render("Last saved: " + m.lastSaved.In(m.loc).Format(constants.TimeFormat))
	default:
		return ""
	}
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Today's Gratitude"),
		m.textarea.View(),
		m.status(),
	)
}
