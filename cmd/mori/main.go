package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/mori/internal/cli"
	"github.com/julianstephens/mori/internal/cli/backups"
	"github.com/julianstephens/mori/internal/cli/entries"
	"github.com/julianstephens/mori/internal/cli/life"
	"github.com/julianstephens/mori/internal/cli/settings"
	"github.com/julianstephens/mori/internal/cli/system"
	"github.com/julianstephens/mori/internal/config"
	"github.com/julianstephens/mori/internal/constants"
	"github.com/julianstephens/mori/internal/errors"
	"github.com/julianstephens/mori/internal/logger"
)

var CLI struct {
	Version    kong.VersionFlag
	ConfigFile string `name:"config" help:"Config file path." type:"path" default:"~/.config/mori/config.toml"`
	Database   string `help:"SQLite file path, PostgreSQL connection string, or \"keyring\". PostgreSQL credentials must NOT be embedded in the connection string; use .pgpass, PGPASSWORD, or the OS keyring instead."`
	Verbose    bool   `name:"debug" help:"Log at debug level and mirror logs to stderr."`

	Init      system.InitCmd     `cmd:"" help:"Write the config file and initialize storage."`
	Tui       system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Countdown life.CountdownCmd  `cmd:"" help:"Print the days remaining."`
	Grid      life.GridCmd       `cmd:"" help:"Print the life-in-weeks grid."`
	Journal   entries.JournalCmd `cmd:"" help:"Read and write the gratitude journal."`
	Settings  settings.ConfigCmd `cmd:"" name:"config" help:"Show or change settings."`
	Backup    struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Debug   system.DebugCmd   `cmd:"" hidden:"" help:"Debug commands for troubleshooting."`
}

// Commands that never touch the database, or open it themselves.
var (
	storeOptional = map[string]bool{"config": true, "keyring": true, "countdown": true, "grid": true, "doctor": true}
	skipLoad      = map[string]bool{"init": true, "tui": true, "config": true, "keyring": true, "countdown": true, "grid": true, "doctor": true}
)

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A memento mori companion: countdown, life in weeks, habits and a gratitude journal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)
	command := strings.Fields(ctx.Command())[0]

	cfg, err := config.Load(CLI.ConfigFile)
	if err != nil && command != "config" {
		errors.FatalWithHint(err, fmt.Sprintf("Fix or remove %s, or run '%s config set' to rewrite it.", CLI.ConfigFile, constants.AppName))
	}
	if CLI.Database != "" {
		cfg.Database = CLI.Database
	}
	if CLI.Verbose {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: filepath.Dir(CLI.ConfigFile)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	appCtx := &cli.Context{
		Config:     cfg,
		ConfigPath: CLI.ConfigFile,
	}

	store, err := cli.OpenStore(cfg)
	switch {
	case err == nil:
		appCtx.Store = store
	case storeOptional[command]:
		logger.Debug("Storage unavailable", "error", err)
	default:
		errors.FatalWithHint(err, fmt.Sprintf("Check the database setting with '%s config show'.", constants.AppName))
	}

	// Load the store before running the command (init and the TUI handle their own loading)
	if appCtx.Store != nil && !skipLoad[command] {
		if err := appCtx.Store.Load(); err != nil {
			errors.FatalWithHint(err, fmt.Sprintf("Run '%s doctor' for diagnostics.", constants.AppName))
		}
	}

	err = ctx.Run(appCtx)

	if appCtx.Store != nil {
		if closeErr := appCtx.Store.Close(); closeErr != nil {
			logger.Warn("Failed to close storage", "error", closeErr)
		}
	}
	errors.Fatal(err)

	if closeErr := logger.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close logger: %v\n", closeErr)
	}
}
