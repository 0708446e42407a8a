package system

import (
	"fmt"

	"github.com/julianstephens/mori/internal/cli"
)

type MigrateCmd struct {
	Status bool `help:"Show the schema version without applying anything."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}

	if c.Status {
		st, err := m.MigrationStatus()
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		ctx.Printf("Schema version: %d (latest %d)\n", st.Current, st.Latest)
		for _, p := range st.Pending {
			ctx.Printf("  pending: %s\n", p.Name)
		}
		return nil
	}

	count, err := m.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
