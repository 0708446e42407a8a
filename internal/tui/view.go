package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mori/internal/constants"
)

const (
	titleHeight     = 1
	countdownHeight = 4
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		paneStyle.Render(m.countdown.View()),
		m.pane(constants.StateHabits).Render(m.habits.View()),
		m.pane(constants.StateJournal).Render(m.editor.View()),
	)
	right := m.pane(constants.StateGrid).Render(m.grid.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewTitle(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.help.View(m),
	)
}

func (m Model) pane(state constants.SessionState) lipgloss.Style {
	if m.state == state {
		return focusedPaneStyle
	}
	return paneStyle
}

func (m Model) viewTitle() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		appTitleStyle.Render(constants.AppName),
		dateStyle.Render(m.day),
	)
}
