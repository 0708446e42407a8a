// Package journal keeps the one-entry-per-day gratitude journal. Entries are
// indexed in memory by day-key and every edit is written through to the store.
package journal

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/julianstephens/mori/internal/logger"
	"github.com/julianstephens/mori/internal/models"
	"github.com/julianstephens/mori/internal/storage"
	"github.com/julianstephens/mori/internal/utils"
)

// ErrNotLoaded is returned when the journal is written to before Load.
var ErrNotLoaded = errors.New("journal not loaded")

// Store is the persistence the journal needs.
type Store interface {
	AddEntry(models.GratitudeEntry) error
	UpdateEntry(models.GratitudeEntry) error
	GetEntryByDay(day string) (models.GratitudeEntry, error)
	GetAllEntries() ([]models.GratitudeEntry, error)
}

type Service struct {
	store Store
	loc   *time.Location
	now   func() time.Time

	entries map[string]*models.GratitudeEntry
	// unsaved holds day-keys whose entry has not reached the store yet.
	unsaved map[string]bool
	loaded  bool
}

type Option func(*Service)

// WithClock replaces time.Now, letting callers simulate other days.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the timezone that decides where one day ends.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		loc:     time.Local,
		now:     time.Now,
		entries: make(map[string]*models.GratitudeEntry),
		unsaved: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads every stored entry once and builds the day index.
func (s *Service) Load() error {
	all, err := s.store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}

	entries := make(map[string]*models.GratitudeEntry, len(all))
	for i := range all {
		e := all[i]
		if _, dup := entries[e.Day]; dup {
			// Newest first, so the first one seen wins.
			logger.Warn("Ignoring duplicate journal entry", "day", e.Day, "id", e.ID)
			continue
		}
		entries[e.Day] = &e
	}

	s.entries = entries
	s.unsaved = make(map[string]bool)
	s.loaded = true
	logger.Debug("Journal loaded", "entries", len(entries))
	return nil
}

// Today returns the current day-key.
func (s *Service) Today() string {
	return utils.DayKey(s.now(), s.loc)
}

// Location returns the timezone used for day-keys.
func (s *Service) Location() *time.Location {
	return s.loc
}

// GetToday returns today's entry text, or "" if nothing was written today.
func (s *Service) GetToday() string {
	if e, ok := s.entries[s.Today()]; ok {
		return e.Text
	}
	return ""
}

// UpsertToday replaces today's text, creating the entry on first write.
// The in-memory entry always holds text afterwards; a returned error only
// means the store did not accept it.
func (s *Service) UpsertToday(text string) error {
	if !s.loaded {
		return ErrNotLoaded
	}

	now := s.now()
	day := utils.DayKey(now, s.loc)

	e, ok := s.entries[day]
	if !ok {
		e = &models.GratitudeEntry{
			ID:   uuid.New().String(),
			Day:  day,
			Date: now,
		}
		s.entries[day] = e
		s.unsaved[day] = true
	}
	e.Text = text
	e.UpdatedAt = now

	if err := s.persist(e); err != nil {
		logger.Warn("Failed to save journal entry", "day", day, "error", err)
		return fmt.Errorf("failed to save entry for %s: %w", day, err)
	}
	return nil
}

func (s *Service) persist(e *models.GratitudeEntry) error {
	if s.unsaved[e.Day] {
		if err := s.insert(e); err != nil {
			return err
		}
		delete(s.unsaved, e.Day)
		return nil
	}

	err := s.store.UpdateEntry(*e)
	if errors.Is(err, storage.ErrNotFound) {
		// Row vanished under us; write it again.
		err = s.insert(e)
	}
	return err
}

// insert adds e, or takes over the day's row when another writer
// created it after Load.
func (s *Service) insert(e *models.GratitudeEntry) error {
	addErr := s.store.AddEntry(*e)
	if addErr == nil {
		return nil
	}

	existing, err := s.store.GetEntryByDay(e.Day)
	if err != nil || existing.ID == e.ID {
		return addErr
	}

	logger.Warn("Journal entry was created elsewhere, taking it over", "day", e.Day, "id", existing.ID)
	e.ID = existing.ID
	e.Date = existing.Date
	return s.store.UpdateEntry(*e)
}

// Saved reports whether day's entry has reached the store.
func (s *Service) Saved(day string) bool {
	_, ok := s.entries[day]
	return ok && !s.unsaved[day]
}

// LastSaved returns when today's entry was last written.
func (s *Service) LastSaved() (time.Time, bool) {
	e, ok := s.entries[s.Today()]
	if !ok {
		return time.Time{}, false
	}
	return e.UpdatedAt, true
}

// GetDay returns the entry for a day-key.
func (s *Service) GetDay(day string) (models.GratitudeEntry, bool) {
	e, ok := s.entries[day]
	if !ok {
		return models.GratitudeEntry{}, false
	}
	return *e, true
}

// Recent returns up to limit entries, newest first. A limit <= 0 returns all.
func (s *Service) Recent(limit int) []models.GratitudeEntry {
	all := lo.MapToSlice(s.entries, func(_ string, e *models.GratitudeEntry) models.GratitudeEntry {
		return *e
	})
	sort.Slice(all, func(i, j int) bool {
		return all[i].Date.After(all[j].Date)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// Count returns how many days have an entry.
func (s *Service) Count() int {
	return len(s.entries)
}
