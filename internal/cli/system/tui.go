package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mori/internal/cli"
	"github.com/julianstephens/mori/internal/habits"
	"github.com/julianstephens/mori/internal/lock"
	"github.com/julianstephens/mori/internal/logger"
	"github.com/julianstephens/mori/internal/tui"
)

type TuiCmd struct{}

// runProgram is replaced in tests.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Profile()
	if err != nil {
		return err
	}

	l, err := lock.Acquire(ctx.ConfigDir())
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()

	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	j, err := ctx.Journal()
	if err != nil {
		return err
	}

	model := tui.NewModel(j, habits.New(ctx.Config.Habits), tui.Options{
		Birth:      profile.Birth,
		Expectancy: profile.Expectancy,
		Method:     profile.Method,
		Now:        ctx.Now,
	})
	if err := runProgram(model); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
