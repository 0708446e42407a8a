package life

import (
	"fmt"
	"time"

	"github.com/julianstephens/mori/internal/cli"
	"github.com/julianstephens/mori/internal/lifespan"
	"github.com/julianstephens/mori/internal/tui/components/countdown"
	"github.com/julianstephens/mori/internal/tui/components/lifegrid"
	"github.com/julianstephens/mori/internal/utils"
)

// resolveAt returns the moment to evaluate: now, or midnight of at.
func resolveAt(ctx *cli.Context, at string, loc *time.Location) (time.Time, error) {
	if at == "" {
		return ctx.Clock().In(loc), nil
	}
	t, err := utils.ParseDateInLocation(at, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at: %w", err)
	}
	return t, nil
}

type CountdownCmd struct {
	At string `help:"Evaluate on this day (YYYY-MM-DD) instead of now."`
}

func (c *CountdownCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Profile()
	if err != nil {
		return err
	}
	now, err := resolveAt(ctx, c.At, p.Location)
	if err != nil {
		return err
	}

	days := lifespan.Remaining(p.Method, p.Birth, now, p.Expectancy)
	ctx.Printf("Time Remaining: %s days\n", countdown.FormatDays(days))
	ctx.Printf("Age %d of %d (%s)\n", lifespan.Age(p.Birth, now), p.Expectancy, p.Method)
	return nil
}

type GridCmd struct {
	At string `help:"Evaluate on this day (YYYY-MM-DD) instead of now."`
}

func (c *GridCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Profile()
	if err != nil {
		return err
	}
	now, err := resolveAt(ctx, c.At, p.Location)
	if err != nil {
		return err
	}

	g := lifespan.BuildGrid(p.Birth, now)
	ctx.Println(lifegrid.Header(g))
	ctx.Println(lifegrid.Render(g))
	return nil
}
