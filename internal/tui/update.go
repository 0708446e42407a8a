package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mori/internal/constants"
	habitlist "github.com/julianstephens/mori/internal/tui/components/habits"
	editor "github.com/julianstephens/mori/internal/tui/components/journal"
)

const paneCount = 3

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tick()

	case habitlist.IncrementMsg:
		m.tracker.Increment(msg.Name)
		return m, nil

	case habitlist.DecrementMsg:
		m.tracker.Decrement(msg.Name)
		return m, nil

	case editor.ChangedMsg:
		m.save(msg.Text)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and the like.
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		cmd := m.setFocus((m.state + 1) % paneCount)
		return m, cmd
	case key.Matches(msg, m.keys.ShiftTab):
		cmd := m.setFocus((m.state - 1 + paneCount) % paneCount)
		return m, cmd
	}

	if m.state != constants.StateJournal {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateJournal:
		m.editor, cmd = m.editor.Update(msg)
	case constants.StateGrid:
		m.grid, cmd = m.grid.Update(msg)
	default:
		m.habits, cmd = m.habits.Update(msg)
	}
	return m, cmd
}

// save writes the editor text through to today's entry. A failed write is
// shown next to the editor; the text stays on screen either way.
func (m *Model) save(text string) {
	if m.journal.Today() != m.day {
		// The edit belongs to a day that has ended. Start the new one.
		m.refresh()
		return
	}
	err := m.journal.UpsertToday(text)
	m.editor.SetSaved(m.now(), err)
}

// layout sizes the panes for the current window.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	helpHeight := 1
	if m.help.ShowAll {
		helpHeight = 4
	}
	body := max(m.height-helpHeight-titleHeight, 6)

	gridWidth := constants.GridColumns + 4
	leftWidth := max(m.width-gridWidth-8, 24)

	m.countdown.SetWidth(leftWidth)
	m.habits.SetWidth(leftWidth)

	habitsHeight := len(m.tracker.Habits()) + 3
	// three bordered panes on the left, plus the editor's title and status
	m.editor.SetSize(leftWidth, max(body-countdownHeight-habitsHeight-6-2, 3))
	// one bordered pane on the right, plus the grid header
	m.grid.SetSize(gridWidth, max(body-2-2, 3))
}
