package settings

import (
	"fmt"

	"github.com/julianstephens/mori/internal/cli"
	"github.com/julianstephens/mori/internal/config"
)

type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" help:"Show the effective configuration." default:"1"`
	Set  ConfigSetCmd  `cmd:"" help:"Change one setting and save the config file."`
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *cli.Context) error {
	ctx.Printf("Config file: %s\n\n", ctx.ConfigPath)
	for _, key := range config.Keys {
		value, err := ctx.Config.Get(key)
		if err != nil {
			return err
		}
		ctx.Printf("  %-17s %s\n", key, value)
	}
	return nil
}

type ConfigSetCmd struct {
	Key   string `arg:"" help:"Setting name (database, birth_date, life_expectancy, countdown_method, timezone, habits, debug)."`
	Value string `arg:"" help:"New value. Habits are comma-separated."`
}

func (c *ConfigSetCmd) Run(ctx *cli.Context) error {
	// Start from the file, not the effective config, so env and flag
	// overrides are not written back.
	cfg, err := config.LoadFile(ctx.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Set(c.Key, c.Value); err != nil {
		return fmt.Errorf("failed to set %s: %w", c.Key, err)
	}
	if err := config.Save(ctx.ConfigPath, cfg); err != nil {
		return err
	}
	ctx.Config = cfg

	value, _ := cfg.Get(c.Key)
	ctx.Printf("Set %s = %s\n", c.Key, value)
	return nil
}
