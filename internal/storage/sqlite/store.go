package sqlite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/mori/internal/constants"
	"github.com/julianstephens/mori/internal/logger"
	"github.com/julianstephens/mori/internal/migration"
	"github.com/julianstephens/mori/internal/models"
	"github.com/julianstephens/mori/internal/storage/sqlstore"
	"github.com/julianstephens/mori/migrations"
)

var errNotLoaded = errors.New("database not loaded")

type Store struct {
	path    string
	db      *sqlx.DB
	journal *sqlstore.JournalTable
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.Migrate(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	if err := s.open(); err != nil {
		return err
	}

	// Validate schema version using embedded migrations
	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *Store) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sqlx.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serializes writes from the UI loop.
	db.SetMaxOpenConns(1)
	s.db = db
	s.journal = sqlstore.NewJournalTable(db, sq.Question)
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		s.journal = nil
		return err
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	// Get the embedded SQLite migrations sub-filesystem
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

// Migrate applies pending schema migrations and returns how many ran.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	if err := s.open(); err != nil {
		return 0, err
	}
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.ApplyMigrations(logFn)
}

// MigrationStatus reports the schema version against the embedded migrations.
func (s *Store) MigrationStatus() (migration.Status, error) {
	if s.db == nil {
		return migration.Status{}, errNotLoaded
	}
	runner, err := s.runner()
	if err != nil {
		return migration.Status{}, err
	}
	return runner.Status()
}

func (s *Store) AddEntry(e models.GratitudeEntry) error {
	if s.journal == nil {
		return errNotLoaded
	}
	return s.journal.Insert(e)
}

func (s *Store) UpdateEntry(e models.GratitudeEntry) error {
	if s.journal == nil {
		return errNotLoaded
	}
	return s.journal.Update(e)
}

func (s *Store) GetEntryByDay(day string) (models.GratitudeEntry, error) {
	if s.journal == nil {
		return models.GratitudeEntry{}, errNotLoaded
	}
	return s.journal.GetByDay(day)
}

func (s *Store) GetAllEntries() ([]models.GratitudeEntry, error) {
	if s.journal == nil {
		return nil, errNotLoaded
	}
	return s.journal.List()
}

func (s *Store) GetEntries(startDay, endDay string) ([]models.GratitudeEntry, error) {
	if s.journal == nil {
		return nil, errNotLoaded
	}
	return s.journal.Range(startDay, endDay)
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}
