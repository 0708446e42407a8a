package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/mori/internal/backup"
	"github.com/julianstephens/mori/internal/config"
	"github.com/julianstephens/mori/internal/constants"
	"github.com/julianstephens/mori/internal/journal"
	"github.com/julianstephens/mori/internal/keyring"
	"github.com/julianstephens/mori/internal/lifespan"
	"github.com/julianstephens/mori/internal/logger"
	"github.com/julianstephens/mori/internal/migration"
	"github.com/julianstephens/mori/internal/storage"
	"github.com/julianstephens/mori/internal/storage/postgres"
	"github.com/julianstephens/mori/internal/storage/sqlite"
)

type Context struct {
	Store      storage.Provider
	Config     config.Config
	ConfigPath string
	Out        io.Writer
	In         io.Reader
	Now        func() time.Time
}

// Migrator is implemented by stores with a versioned schema.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	MigrationStatus() (migration.Status, error)
}

// Profile is the lifespan input derived from config.
type Profile struct {
	Birth      time.Time
	Expectancy int
	Method     lifespan.Method
	Location   *time.Location
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Reader() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Writer(), args...)
}

// Clock returns the current time, honouring an injected clock.
func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// ConfigDir is the directory that holds the config file, logs and lockfile.
func (c *Context) ConfigDir() string {
	if c.ConfigPath == "" {
		return config.Dir()
	}
	return filepath.Dir(c.ConfigPath)
}

func (c *Context) Profile() (Profile, error) {
	if err := c.Config.Validate(); err != nil {
		return Profile{}, fmt.Errorf("invalid configuration: %w", err)
	}
	// Validate already resolved these, so the errors below cannot fire.
	birth, _ := c.Config.Birth()
	method, _ := c.Config.Method()
	loc, _ := c.Config.Location()
	return Profile{
		Birth:      birth,
		Expectancy: c.Config.LifeExpectancy,
		Method:     method,
		Location:   loc,
	}, nil
}

// Journal builds and loads the journal service over the open store.
func (c *Context) Journal() (*journal.Service, error) {
	loc, err := c.Config.Location()
	if err != nil {
		return nil, err
	}
	opts := []journal.Option{journal.WithLocation(loc)}
	if c.Now != nil {
		opts = append(opts, journal.WithClock(c.Now))
	}
	j := journal.New(c.Store, opts...)
	if err := j.Load(); err != nil {
		return nil, err
	}
	return j, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// BackupManager returns the backup manager for a SQLite store.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, errors.New("backups are only supported for SQLite storage")
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// OpenStore picks the storage backend named by cfg.Database. The value
// "keyring" reads a PostgreSQL connection string from the OS keyring; other
// PostgreSQL strings must not embed a password.
func OpenStore(cfg config.Config) (storage.Provider, error) {
	db := cfg.Database
	if db == constants.KeyringDatabase {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no connection string in keyring, run 'mori keyring set' first: %w", err)
			}
			return nil, err
		}
		// The keyring is trusted to hold credentials.
		return postgres.New(connStr), nil
	}

	if postgres.IsConnString(db) {
		if _, err := postgres.ValidateConnString(db); err != nil {
			return nil, err
		}
		return postgres.New(db), nil
	}
	return sqlite.NewStore(cfg.DatabasePath()), nil
}
