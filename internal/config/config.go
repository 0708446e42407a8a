// Package config loads mori settings. Values come from built-in defaults, then
// the TOML file, then MORI_* environment variables; command-line flags are
// applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/samber/lo"

	"github.com/julianstephens/mori/internal/constants"
	"github.com/julianstephens/mori/internal/lifespan"
	"github.com/julianstephens/mori/internal/utils"
)

type Config struct {
	// Database is a SQLite file path or a PostgreSQL connection string.
	Database        string   `toml:"database" env:"DATABASE"`
	BirthDate       string   `toml:"birth_date" env:"BIRTH_DATE"`
	LifeExpectancy  int      `toml:"life_expectancy" env:"LIFE_EXPECTANCY"`
	CountdownMethod string   `toml:"countdown_method" env:"COUNTDOWN_METHOD"`
	Timezone        string   `toml:"timezone" env:"TIMEZONE"`
	Habits          []string `toml:"habits" env:"HABITS" envSeparator:","`
	Debug           bool     `toml:"debug" env:"DEBUG"`
}

// Keys lists the settable keys in file order.
var Keys = []string{"database", "birth_date", "life_expectancy", "countdown_method", "timezone", "habits", "debug"}

var ErrUnknownKey = errors.New("unknown config key")

func Default() Config {
	return Config{
		Database:        constants.DefaultDBPath,
		BirthDate:       constants.DefaultBirthDate.Format(constants.DateFormat),
		LifeExpectancy:  constants.DefaultLifeExpectancyYears,
		CountdownMethod: string(constants.DefaultCountdown),
		Timezone:        constants.DefaultTimezone,
		Habits:          slices.Clone(constants.DefaultHabits),
	}
}

// DefaultPath returns the config file location.
func DefaultPath() string {
	return ExpandPath(filepath.Join(constants.DefaultConfigDir, constants.ConfigFileName))
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile reads path over the defaults without looking at the environment.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return cfg, nil
}

// ParseEnv applies MORI_* environment variables to target.
func ParseEnv(target *Config) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: constants.EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Save writes cfg to path as TOML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks every field that has a restricted value set.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database) == "" {
		return fmt.Errorf("database must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Birth(); err != nil {
		return err
	}
	if c.LifeExpectancy < 1 {
		return fmt.Errorf("life_expectancy must be at least 1, got %d", c.LifeExpectancy)
	}
	if _, err := c.Method(); err != nil {
		return err
	}
	return nil
}

// Location resolves the timezone setting.
func (c Config) Location() (*time.Location, error) {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Birth returns the birth date at midnight in the configured timezone.
func (c Config) Birth() (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	t, err := utils.ParseDateInLocation(c.BirthDate, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid birth_date %q (expected YYYY-MM-DD): %w", c.BirthDate, err)
	}
	return t, nil
}

func (c Config) Method() (lifespan.Method, error) {
	return lifespan.ParseMethod(c.CountdownMethod)
}

// DatabasePath returns Database with ~ expanded.
func (c Config) DatabasePath() string {
	return ExpandPath(c.Database)
}

// Dir returns the directory holding the config file, logs and lockfile.
func Dir() string {
	return ExpandPath(constants.DefaultConfigDir)
}

// Get returns the string form of a key.
func (c Config) Get(key string) (string, error) {
	switch key {
	case "database":
		return c.Database, nil
	case "birth_date":
		return c.BirthDate, nil
	case "life_expectancy":
		return strconv.Itoa(c.LifeExpectancy), nil
	case "countdown_method":
		return c.CountdownMethod, nil
	case "timezone":
		return c.Timezone, nil
	case "habits":
		return strings.Join(c.Habits, ","), nil
	case "debug":
		return strconv.FormatBool(c.Debug), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set parses value into key and validates the result. c is left unchanged on error.
func (c *Config) Set(key, value string) error {
	next := *c
	switch key {
	case "database":
		next.Database = value
	case "birth_date":
		next.BirthDate = value
	case "life_expectancy":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("life_expectancy must be a number: %w", err)
		}
		next.LifeExpectancy = n
	case "countdown_method":
		next.CountdownMethod = value
	case "timezone":
		next.Timezone = value
	case "habits":
		next.Habits = lo.Uniq(lo.Compact(lo.Map(strings.Split(value, ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		})))
	case "debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("debug must be true or false: %w", err)
		}
		next.Debug = b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}
