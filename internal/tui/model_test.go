package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mori/internal/constants"
	"github.com/julianstephens/mori/internal/habits"
	"github.com/julianstephens/mori/internal/journal"
	"github.com/julianstephens/mori/internal/models"
	habitlist "github.com/julianstephens/mori/internal/tui/components/habits"
	editor "github.com/julianstephens/mori/internal/tui/components/journal"
)

type memStore struct {
	entries []models.GratitudeEntry
	fail    error
}

func (s *memStore) AddEntry(e models.GratitudeEntry) error {
	if s.fail != nil {
		return s.fail
	}
	s.entries = append(s.entries, e)
	return nil
}

func (s *memStore) UpdateEntry(e models.GratitudeEntry) error {
	if s.fail != nil {
		return s.fail
	}
	for i := range s.entries {
		if s.entries[i].ID == e.ID {
			s.entries[i] = e
			return nil
		}
	}
	return errors.New("missing")
}

func (s *memStore) GetEntryByDay(day string) (models.GratitudeEntry, error) {
	for _, e := range s.entries {
		if e.Day == day {
			return e, nil
		}
	}
	return models.GratitudeEntry{}, errors.New("missing")
}

func (s *memStore) GetAllEntries() ([]models.GratitudeEntry, error) {
	return append([]models.GratitudeEntry(nil), s.entries...), nil
}

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newTestModel(t *testing.T, store *memStore, clk *testClock) (Model, *journal.Service) {
	t.Helper()
	j := journal.New(store, journal.WithClock(clk.now), journal.WithLocation(time.UTC))
	require.NoError(t, j.Load())

	m := NewModel(j, habits.New(nil), Options{
		Birth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:   clk.now,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), j
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// typeText feeds runes to the model and delivers every ChangedMsg it produces.
func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		var cmd tea.Cmd
		m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		for _, msg := range changes(cmd) {
			m, _ = send(t, m, msg)
		}
	}
	return m
}

func changes(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, changes(c)...)
		}
		return out
	case editor.ChangedMsg:
		return []tea.Msg{msg}
	}
	return nil
}

func TestTabCyclesFocus(t *testing.T) {
	clk := &testClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	m, _ := newTestModel(t, &memStore{}, clk)
	assert.Equal(t, constants.StateHabits, m.Focused())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, constants.StateJournal, m.Focused())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, constants.StateGrid, m.Focused())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, constants.StateHabits, m.Focused())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, constants.StateGrid, m.Focused())
}

func TestTypingSavesToday(t *testing.T) {
	store := &memStore{}
	clk := &testClock{t: time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)}
	m, j := newTestModel(t, store, clk)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "sun")

	assert.Equal(t, "sun", j.GetToday())
	require.Len(t, store.entries, 1)
	assert.Equal(t, "2024-06-01", store.entries[0].Day)
	assert.Equal(t, "sun", store.entries[0].Text)
	assert.Contains(t, m.View(), "Last saved: ")
}

func TestQuitKeyIsTextInJournal(t *testing.T) {
	clk := &testClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	m, j := newTestModel(t, &memStore{}, clk)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "q")
	assert.Equal(t, "q", j.GetToday())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestFailedSaveKeepsText(t *testing.T) {
	store := &memStore{fail: errors.New("disk full")}
	clk := &testClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	m, j := newTestModel(t, store, clk)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.NotPanics(t, func() { m = typeText(t, m, "hi") })

	assert.Equal(t, "hi", j.GetToday())
	assert.Empty(t, store.entries)
	assert.Contains(t, m.View(), "Not saved")

	store.fail = nil
	m = typeText(t, m, "!")
	require.Len(t, store.entries, 1)
	assert.Equal(t, "hi!", store.entries[0].Text)
	assert.NotContains(t, m.View(), "Not saved")
}

func TestHabitMessagesAdjustBonus(t *testing.T) {
	clk := &testClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	m, _ := newTestModel(t, &memStore{}, clk)

	m, _ = send(t, m, habitlist.IncrementMsg{Name: "Read"})
	m, _ = send(t, m, habitlist.IncrementMsg{Name: "Read"})
	m, _ = send(t, m, habitlist.DecrementMsg{Name: "Exercise"})
	assert.Equal(t, 10, m.tracker.Bonus())
	assert.Contains(t, m.View(), "Today's Bonus: ")

	for range 3 {
		m, _ = send(t, m, habitlist.DecrementMsg{Name: "Meditate"})
	}
	assert.Equal(t, -20, m.tracker.Bonus())
}

func TestTickRollsOverDay(t *testing.T) {
	store := &memStore{}
	clk := &testClock{t: time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)}
	m, j := newTestModel(t, store, clk)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "late")
	m, _ = send(t, m, habitlist.IncrementMsg{Name: "Read"})

	clk.t = clk.t.Add(2 * time.Minute)
	m, cmd := send(t, m, tickMsg(clk.t))
	assert.NotNil(t, cmd)

	assert.Equal(t, "", m.editor.Value())
	assert.Equal(t, "2024-06-02", m.editor.Day())
	assert.Equal(t, 0, m.tracker.Bonus())

	m = typeText(t, m, "early")
	assert.Equal(t, "early", j.GetToday())
	assert.Len(t, store.entries, 2)
}

func TestViewSections(t *testing.T) {
	clk := &testClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	m, _ := newTestModel(t, &memStore{}, clk)

	view := m.View()
	for _, want := range []string{"Time Remaining", "Life in Squares", "Habit Tracking", "Today's Gratitude", "2024-06-01"} {
		assert.Contains(t, view, want)
	}
}

func TestBonusKeptWithinDayAndClearedAtMidnight(t *testing.T) {
	clk := &testClock{t: time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC)}
	m, _ := newTestModel(t, &memStore{}, clk)

	m, _ = send(t, m, habitlist.IncrementMsg{Name: "Read"})
	m, _ = send(t, m, habitlist.IncrementMsg{Name: "Exercise"})

	clk.t = time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)
	m, _ = send(t, m, tickMsg(clk.t))
	assert.Equal(t, 20, m.tracker.Bonus())

	clk.t = time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	m, _ = send(t, m, tickMsg(clk.t))
	assert.Equal(t, 0, m.tracker.Bonus())
	assert.Equal(t, 0, m.tracker.Tally("Read"))
}

func TestLastSavedUsesJournalTimezone(t *testing.T) {
	clk := &testClock{t: time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC)}
	j := journal.New(&memStore{}, journal.WithClock(clk.now), journal.WithLocation(time.FixedZone("JST", 9*60*60)))
	require.NoError(t, j.Load())

	m := NewModel(j, habits.New(nil), Options{
		Birth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:   clk.now,
	})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, constants.StateJournal, m.Focused())

	m = typeText(t, m, "tea")
	assert.Contains(t, m.View(), "Last saved: 14:00")
}
