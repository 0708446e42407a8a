package storage

import (
	"errors"

	"github.com/julianstephens/mori/internal/models"
)

// ErrNotFound is returned when no journal entry matches a lookup.
var ErrNotFound = errors.New("entry not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Journal entries
	AddEntry(models.GratitudeEntry) error
	UpdateEntry(models.GratitudeEntry) error
	GetEntryByDay(day string) (models.GratitudeEntry, error)
	// GetAllEntries returns every entry, newest first.
	GetAllEntries() ([]models.GratitudeEntry, error)
	// GetEntries returns entries whose day-key lies in [startDay, endDay], newest first.
	GetEntries(startDay, endDay string) ([]models.GratitudeEntry, error)

	// Utils
	GetConfigPath() string
}
