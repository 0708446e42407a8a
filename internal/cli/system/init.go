package system

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mori/internal/cli"
	"github.com/julianstephens/mori/internal/config"
	"github.com/julianstephens/mori/internal/storage/sqlite"
	"github.com/julianstephens/mori/internal/utils"
)

type InitCmd struct {
	BirthDate      string `help:"Birth date (YYYY-MM-DD). Prompted for when omitted on first run." name:"birth-date"`
	LifeExpectancy int    `help:"Life expectancy in years." name:"life-expectancy"`
	Force          bool   `help:"Force reset by deleting the existing SQLite database before initialization."`
}

// profileForm holds the answers collected by the first-run prompt.
type profileForm struct {
	BirthDate      string
	LifeExpectancy string
}

// promptProfile asks for the birth date and life expectancy. Replaced in tests.
var promptProfile = func(p *profileForm) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Birth date").
				Description("YYYY-MM-DD").
				Placeholder(p.BirthDate).
				Value(&p.BirthDate).
				Validate(utils.ValidateDayKey),
			huh.NewInput().
				Title("Life expectancy (years)").
				Value(&p.LifeExpectancy).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if n < 1 {
						return fmt.Errorf("life expectancy must be at least 1 year")
					}
					return nil
				}),
		),
	).Run()
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config

	_, statErr := os.Stat(ctx.ConfigPath)
	firstRun := errors.Is(statErr, os.ErrNotExist)

	if c.BirthDate == "" && firstRun {
		form := &profileForm{
			BirthDate:      cfg.BirthDate,
			LifeExpectancy: strconv.Itoa(cfg.LifeExpectancy),
		}
		if err := promptProfile(form); err != nil {
			return fmt.Errorf("setup cancelled: %w", err)
		}
		c.BirthDate = form.BirthDate
		if n, err := strconv.Atoi(form.LifeExpectancy); err == nil && c.LifeExpectancy == 0 {
			c.LifeExpectancy = n
		}
	}

	if c.BirthDate != "" {
		if err := cfg.Set("birth_date", c.BirthDate); err != nil {
			return err
		}
	}
	if c.LifeExpectancy != 0 {
		if err := cfg.Set("life_expectancy", strconv.Itoa(c.LifeExpectancy)); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := config.Save(ctx.ConfigPath, cfg); err != nil {
		return err
	}
	ctx.Config = cfg
	ctx.Printf("Wrote config to: %s\n", ctx.ConfigPath)

	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized mori storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

// reset deletes an existing SQLite database. PostgreSQL schemas are left alone.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("--force is only supported for SQLite storage")
	}

	dbPath := ctx.Store.GetConfigPath()
	if _, err := os.Stat(dbPath); err == nil {
		// Database exists, close it first to prevent file locking issues
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}
