package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/mori/internal/cli"
	"github.com/julianstephens/mori/internal/storage"
	"github.com/julianstephens/mori/internal/utils"
)

type DebugCmd struct {
	DBPath    DebugDBPathCmd    `cmd:"" name:"db-path" help:"Show database path."`
	DumpEntry DebugDumpEntryCmd `cmd:"" help:"Dump a journal entry as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	return printJSON(ctx, map[string]string{
		"path":   ctx.Store.GetConfigPath(),
		"config": ctx.ConfigPath,
	})
}

type DebugDumpEntryCmd struct {
	Day string `arg:"" help:"Day of the entry to dump (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpEntryCmd) Run(ctx *cli.Context) error {
	day := cmd.Day
	if day == "today" {
		loc, err := ctx.Config.Location()
		if err != nil {
			return err
		}
		day = utils.DayKey(ctx.Clock(), loc)
	}
	if err := utils.ValidateDayKey(day); err != nil {
		return err
	}

	entry, err := ctx.Store.GetEntryByDay(day)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no entry found for day: %s", day)
	}
	if err != nil {
		return fmt.Errorf("failed to get entry: %w", err)
	}
	return printJSON(ctx, entry)
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
