// Package habits keeps the per-session habit bonus. Nothing here is persisted:
// the tally starts at zero on every launch.
package habits

import (
	"github.com/samber/lo"

	"github.com/julianstephens/mori/internal/constants"
)

// Tracker counts bonus minutes earned (or lost) per habit during one session.
type Tracker struct {
	names   []string
	tallies map[string]int
}

// New creates a tracker for the given habit names. Blank and duplicate names
// are dropped; an empty list falls back to the default habits.
func New(names []string) *Tracker {
	names = lo.Uniq(lo.Compact(names))
	if len(names) == 0 {
		names = append([]string(nil), constants.DefaultHabits...)
	}
	return &Tracker{
		names:   names,
		tallies: make(map[string]int, len(names)),
	}
}

// Habits returns the tracked habit names in display order.
func (t *Tracker) Habits() []string {
	return append([]string(nil), t.names...)
}

// Increment adds one bonus step to the habit. Unknown habits are ignored.
func (t *Tracker) Increment(name string) int {
	return t.adjust(name, constants.HabitBonusStep)
}

// Decrement removes one bonus step from the habit. The total may go negative.
func (t *Tracker) Decrement(name string) int {
	return t.adjust(name, -constants.HabitBonusStep)
}

func (t *Tracker) adjust(name string, delta int) int {
	if !lo.Contains(t.names, name) {
		return t.Bonus()
	}
	t.tallies[name] += delta
	return t.Bonus()
}

// Tally returns the bonus minutes attributed to one habit.
func (t *Tracker) Tally(name string) int {
	return t.tallies[name]
}

// Bonus returns today's total bonus in minutes.
func (t *Tracker) Bonus() int {
	return lo.Sum(lo.Values(t.tallies))
}

// Reset clears every tally, e.g. when the day rolls over.
func (t *Tracker) Reset() {
	clear(t.tallies)
}
