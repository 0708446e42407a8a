package entries

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/mori/internal/cli"
	"github.com/julianstephens/mori/internal/lock"
	"github.com/julianstephens/mori/internal/logger"
	"github.com/julianstephens/mori/internal/utils"
)

type JournalCmd struct {
	Today JournalTodayCmd `cmd:"" help:"Print today's gratitude entry." default:"1"`
	Write JournalWriteCmd `cmd:"" help:"Replace today's entry."`
	Show  JournalShowCmd  `cmd:"" help:"Print the entry for one day."`
	List  JournalListCmd  `cmd:"" help:"List recent entries."`
}

type JournalTodayCmd struct{}

func (c *JournalTodayCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Journal()
	if err != nil {
		return err
	}
	text := j.GetToday()
	if text == "" {
		ctx.Printf("No entry for %s yet.\n", j.Today())
		return nil
	}
	ctx.Println(text)
	return nil
}

type JournalWriteCmd struct {
	Text []string `arg:"" optional:"" help:"Entry text. Read from stdin when omitted."`
}

func (c *JournalWriteCmd) Run(ctx *cli.Context) error {
	text := strings.Join(c.Text, " ")
	if len(c.Text) == 0 {
		raw, err := io.ReadAll(ctx.Reader())
		if err != nil {
			return fmt.Errorf("failed to read entry from stdin: %w", err)
		}
		text = strings.TrimRight(string(raw), "\n")
	}

	l, err := lock.Acquire(ctx.ConfigDir())
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return fmt.Errorf("%w; edit today's entry in the open session instead", err)
		}
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()

	j, err := ctx.Journal()
	if err != nil {
		return err
	}
	if err := j.UpsertToday(text); err != nil {
		return err
	}
	ctx.Printf("✓ Saved entry for %s\n", j.Today())
	return nil
}

type JournalShowCmd struct {
	Day string `help:"Day to show (YYYY-MM-DD). Defaults to today."`
}

func (c *JournalShowCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Journal()
	if err != nil {
		return err
	}

	day := c.Day
	if day == "" {
		day = j.Today()
	}
	if err := utils.ValidateDayKey(day); err != nil {
		return err
	}

	e, ok := j.GetDay(day)
	if !ok {
		return fmt.Errorf("no entry for %s", day)
	}
	ctx.Printf("%s (last saved %s)\n\n", e.Day, e.UpdatedAt.In(j.Location()).Format("2006-01-02 15:04"))
	ctx.Println(e.Text)
	return nil
}

type JournalListCmd struct {
	Limit int `help:"Maximum number of entries to show (0 for all)." default:"10"`
}

func (c *JournalListCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Journal()
	if err != nil {
		return err
	}

	recent := j.Recent(c.Limit)
	if len(recent) == 0 {
		ctx.Println("No journal entries yet.")
		return nil
	}

	for _, e := range recent {
		ctx.Printf("  %s  %s\n", e.Day, preview(e.Text, 60))
	}
	if c.Limit > 0 && j.Count() > len(recent) {
		ctx.Printf("\n%d of %d entries shown.\n", len(recent), j.Count())
	}
	return nil
}

// preview returns the first line of text cut to width runes.
func preview(text string, width int) string {
	line, _, more := strings.Cut(text, "\n")
	runes := []rune(line)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	if more {
		return line + " …"
	}
	if line == "" {
		return "(empty)"
	}
	return line
}
