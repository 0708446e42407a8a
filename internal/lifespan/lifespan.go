// Package lifespan holds the calendar arithmetic behind the countdown and the
// life-in-weeks grid. Everything here is pure: results depend only on the
// arguments, so callers recompute on every render instead of caching.
package lifespan

import (
	"fmt"
	"time"

	"github.com/julianstephens/mori/internal/constants"
)

// Method selects how RemainingDays derives the expected end date.
type Method = constants.CountdownMethod

// ParseMethod validates a countdown method name. Empty means the default.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "":
		return constants.DefaultCountdown, nil
	case constants.CountdownExtrapolate, constants.CountdownDirect:
		return Method(s), nil
	default:
		return "", fmt.Errorf("unknown countdown method %q (want %q or %q)", s, constants.CountdownExtrapolate, constants.CountdownDirect)
	}
}

// Age returns the number of full years between birth and now. The result is
// truncated toward zero, so a birth date in the future yields 0 until a full
// year separates the two.
func Age(birth, now time.Time) int {
	birth = birth.In(now.Location())
	years := now.Year() - birth.Year()
	anniversary := addYears(birth, years)
	switch {
	case years > 0 && anniversary.After(now):
		years--
	case years < 0 && anniversary.Before(now):
		years++
	}
	return years
}

// RemainingDays estimates the days left using the two-step derivation: the
// current age is taken first, the remaining years are then added to now.
// Near birthdays this differs from RemainingDaysDirect because the fraction
// of the current year already lived is ignored. Never negative.
func RemainingDays(birth, now time.Time, expectancyYears int) int {
	remainingYears := expectancyYears - Age(birth, now)
	end := addYears(now, remainingYears)
	return max(0, daysBetween(now, end))
}

// RemainingDaysDirect counts the days from now until birth + expectancyYears.
// Never negative.
func RemainingDaysDirect(birth, now time.Time, expectancyYears int) int {
	end := addYears(birth, expectancyYears)
	return max(0, daysBetween(now, end))
}

// Remaining dispatches to the countdown formula selected by m.
func Remaining(m Method, birth, now time.Time, expectancyYears int) int {
	if m == constants.CountdownDirect {
		return RemainingDaysDirect(birth, now, expectancyYears)
	}
	return RemainingDays(birth, now, expectancyYears)
}

// addYears shifts t by n calendar years keeping the wall clock. Feb 29 lands on
// Feb 28 in non-leap years instead of rolling into March.
func addYears(t time.Time, n int) time.Time {
	year := t.Year() + n
	day := t.Day()
	if t.Month() == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, t.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysBetween counts whole calendar days from "from" to "to", measured in
// from's location. A partial day is not counted.
func daysBetween(from, to time.Time) int {
	to = to.In(from.Location())
	days := civilDay(to) - civilDay(from)
	fromClock, toClock := clock(from), clock(to)
	switch {
	case days > 0 && toClock < fromClock:
		days--
	case days < 0 && toClock > fromClock:
		days++
	}
	return days
}

// civilDay numbers calendar days independent of DST shifts.
func civilDay(t time.Time) int {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Unix() / 86400)
}

func clock(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}
