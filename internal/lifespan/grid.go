package lifespan

import (
	"time"

	"github.com/julianstephens/mori/internal/constants"
)

// Grid is the fixed 80x52 life-in-weeks matrix, stored row-major: cell i is
// week i of life, row i/52 is the year and column i%52 the week within it.
// Cells past a real lifespan are simply not lived.
type Grid struct {
	cells [constants.GridCells]bool
}

// IsWeekLived reports whether week index week has started by now, i.e.
// birth + week*7 days <= now.
func IsWeekLived(birth, now time.Time, week int) bool {
	if week < 0 {
		return false
	}
	return !birth.AddDate(0, 0, week*constants.DaysPerWeek).After(now)
}

// BuildGrid evaluates every cell for the given birth date and moment.
func BuildGrid(birth, now time.Time) Grid {
	var g Grid
	for i := range g.cells {
		g.cells[i] = IsWeekLived(birth, now, i)
	}
	return g
}

func (g Grid) Len() int     { return len(g.cells) }
func (g Grid) Rows() int    { return constants.GridRows }
func (g Grid) Columns() int { return constants.GridColumns }

// Lived reports cell i; out-of-range indices are never lived.
func (g Grid) Lived(i int) bool {
	if i < 0 || i >= len(g.cells) {
		return false
	}
	return g.cells[i]
}

// At reports the cell at (row, col).
func (g Grid) At(row, col int) bool {
	if col < 0 || col >= constants.GridColumns {
		return false
	}
	return g.Lived(row*constants.GridColumns + col)
}

// Row returns a copy of one year's 52 cells.
func (g Grid) Row(row int) []bool {
	out := make([]bool, constants.GridColumns)
	for col := range out {
		out[col] = g.At(row, col)
	}
	return out
}

// LivedCount returns the number of lived cells.
func (g Grid) LivedCount() int {
	n := 0
	for _, lived := range g.cells {
		if lived {
			n++
		}
	}
	return n
}

// CurrentWeek returns the index of the most recent lived week, or -1 before birth.
func (g Grid) CurrentWeek() int {
	return g.LivedCount() - 1
}
