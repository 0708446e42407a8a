package system

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"

	"github.com/julianstephens/mori/internal/cli"
	"github.com/julianstephens/mori/internal/constants"
	"github.com/julianstephens/mori/internal/keyring"
	"github.com/julianstephens/mori/internal/lock"
	"github.com/julianstephens/mori/internal/models"
	"github.com/julianstephens/mori/internal/storage/sqlite"
	"github.com/julianstephens/mori/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database could not be loaded.
	needsDB bool
	// warnOnly failures are reported but do not fail the run.
	warnOnly bool
	run      func(*cli.Context) error
}

var checks = []check{
	{name: "Configuration", run: checkConfig},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Keyring", run: checkKeyring},
	{name: "Database reachable", run: checkDBReachable},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Journal integrity", needsDB: true, run: checkJournalIntegrity},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Session lock", warnOnly: true, run: checkLock},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Database reachable" {
				dbReachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkConfig(ctx *cli.Context) error {
	return ctx.Config.Validate()
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("unknown timezone %q", ctx.Config.Timezone)
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if ctx.Config.Database != constants.KeyringDatabase {
		return nil
	}
	st := keyring.GetStatus()
	switch {
	case !st.Available:
		return keyring.ErrKeyringUnavailable
	case !st.Stored:
		return fmt.Errorf("database is set to %q but no connection string is stored", constants.KeyringDatabase)
	}
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if ctx.Store == nil {
		return errors.New("no storage configured")
	}
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if s, ok := ctx.Store.(*sqlite.Store); ok {
		var result int
		if err := s.GetDB().Get(&result, "SELECT 1"); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return nil
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if !st.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s migrate')", st.Current, st.Latest, constants.AppName)
	}
	return nil
}

func checkJournalIntegrity(ctx *cli.Context) error {
	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	bad := lo.Filter(entries, func(e models.GratitudeEntry, _ int) bool {
		return utils.ValidateDayKey(e.Day) != nil
	})
	if len(bad) > 0 {
		return fmt.Errorf("found %d entries with a malformed day (first: %q)", len(bad), bad[0].Day)
	}

	dups := lo.FindDuplicatesBy(entries, func(e models.GratitudeEntry) string { return e.Day })
	if len(dups) > 0 {
		return fmt.Errorf("found %d days with more than one entry (first: %s)", len(dups), dups[0].Day)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Store == nil {
		return errors.New("no storage configured")
	}
	mgr, err := ctx.BackupManager()
	if err != nil {
		// Nothing to check for PostgreSQL.
		return nil
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkLock(ctx *cli.Context) error {
	holder, err := lock.ReadHolder(lock.Path(ctx.ConfigDir()))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("unreadable lockfile: %w", err)
	}
	return fmt.Errorf("a session (pid %d) has held the lock since %s", holder.PID, holder.StartedAt.Format(time.RFC3339))
}
