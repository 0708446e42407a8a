package constants

import "time"

// SessionState represents the focused section of the TUI
type SessionState int

// CountdownMethod selects how the remaining-days countdown is derived
type CountdownMethod string

const (
	AppName            = "mori"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/mori"
	DefaultDBPath      = "~/.config/mori/mori.db"
	KeyringDatabase    = "keyring" // database setting that reads the connection string from the OS keyring
	ConfigFileName     = "config.toml"
	LockfileName       = "mori.lock"
	EnvPrefix          = "MORI_"
	Version            = "v0.3.0"

	// DateFormat is the day-key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the clock format used for "last saved" labels (HH:MM)
	TimeFormat = "15:04"

	// Lifespan constants
	DefaultLifeExpectancyYears = 85
	GridRows                   = 80 // years of life
	GridColumns                = 52 // weeks in a year
	GridCells                  = GridRows * GridColumns
	DaysPerWeek                = 7

	// Habit constants
	HabitBonusStep = 10 // minutes per tap

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "mori-"
	BackupFileSuffix = ".db"

	// RefreshInterval is how often the TUI re-evaluates "now"
	RefreshInterval = time.Minute

	DefaultTimezone = "Local"

	CountdownExtrapolate CountdownMethod = "extrapolate"
	CountdownDirect      CountdownMethod = "direct"
	DefaultCountdown                     = CountdownExtrapolate
)

// Focus states
const (
	StateHabits SessionState = iota
	StateJournal
	StateGrid
)

// DefaultBirthDate mirrors the placeholder used before a profile is configured.
var DefaultBirthDate = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.Local)

// DefaultHabits is the habit list shown when none is configured.
var DefaultHabits = []string{"Exercise", "Read", "Meditate"}
