package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mori/internal/constants"
	"github.com/julianstephens/mori/internal/habits"
	"github.com/julianstephens/mori/internal/journal"
	"github.com/julianstephens/mori/internal/lifespan"
	"github.com/julianstephens/mori/internal/tui/components/countdown"
	habitlist "github.com/julianstephens/mori/internal/tui/components/habits"
	editor "github.com/julianstephens/mori/internal/tui/components/journal"
	"github.com/julianstephens/mori/internal/tui/components/lifegrid"
)

// Options carries the profile the screen is computed from.
type Options struct {
	Birth      time.Time
	Expectancy int
	Method     lifespan.Method
	// Now defaults to time.Now. It must agree with the journal's clock.
	Now func() time.Time
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(constants.RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type Model struct {
	journal    *journal.Service
	tracker    *habits.Tracker
	birth      time.Time
	expectancy int
	now        func() time.Time

	state     constants.SessionState
	keys      KeyMap
	help      help.Model
	countdown countdown.Model
	grid      lifegrid.Model
	habits    habitlist.Model
	editor    editor.Model

	day       string
	gridReady bool
	quitting  bool
	width     int
	height    int
}

// NewModel builds the screen. The journal must already be loaded.
func NewModel(j *journal.Service, tracker *habits.Tracker, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Expectancy <= 0 {
		opts.Expectancy = constants.DefaultLifeExpectancyYears
	}
	if opts.Method == "" {
		opts.Method = constants.DefaultCountdown
	}

	m := Model{
		journal:    j,
		tracker:    tracker,
		birth:      opts.Birth,
		expectancy: opts.Expectancy,
		now:        opts.Now,
		state:      constants.StateHabits,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		countdown:  countdown.New(opts.Birth, opts.Expectancy, opts.Method),
		grid:       lifegrid.New(0, 0),
		habits:     habitlist.New(tracker),
		editor:     editor.New(0, 0),
	}
	m.editor.SetLocation(j.Location())
	m.habits.Focus()
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab}
	switch m.state {
	case constants.StateHabits:
		hk := m.habits.Keys()
		keys = append(keys, hk.Increment, hk.Decrement, m.keys.Quit, m.keys.Help)
	case constants.StateJournal:
		keys = append(keys, m.keys.ForceQuit)
	default:
		keys = append(keys, m.keys.Quit, m.keys.Help)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	hk := m.habits.Keys()
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab},
		{hk.Up, hk.Down, hk.Increment, hk.Decrement},
		{m.keys.Quit, m.keys.ForceQuit, m.keys.Help},
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Focused reports which pane receives keys.
func (m Model) Focused() constants.SessionState { return m.state }

// refresh re-evaluates everything that depends on the current time.
func (m *Model) refresh() {
	now := m.now()
	m.countdown.Refresh(now)

	g := lifespan.BuildGrid(m.birth, now)
	if !m.gridReady || g.CurrentWeek() != m.grid.Grid().CurrentWeek() {
		m.grid.SetGrid(g)
		m.gridReady = true
	}

	if day := m.journal.Today(); day != m.day {
		if m.day != "" {
			// A new day starts with an empty bonus.
			m.tracker.Reset()
		}
		m.day = day
		m.editor.SetText(day, m.journal.GetToday())
		if at, ok := m.journal.LastSaved(); ok && m.journal.Saved(day) {
			m.editor.SetLastSaved(at)
		} else {
			m.editor.SetLastSaved(time.Time{})
		}
	}
}

func (m *Model) setFocus(state constants.SessionState) tea.Cmd {
	m.state = state
	m.habits.Blur()
	m.grid.Blur()
	m.editor.Blur()

	switch state {
	case constants.StateJournal:
		return m.editor.Focus()
	case constants.StateGrid:
		m.grid.Focus()
	default:
		m.habits.Focus()
	}
	return nil
}
