package clock

import (
	"fmt"
	"time"
)

// Clock supplies the current time and the organization timezone. Engines take
// a Clock instead of calling time.Now so tests can pin the wall clock.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

// NewSystemClock builds a Clock for the given IANA timezone name.
func NewSystemClock(timezone string) (Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &systemClock{loc: loc}, nil
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *systemClock) Location() *time.Location {
	return c.loc
}

// WorkDateOf maps a timestamp to the organization-timezone calendar date it
// belongs to. Every caller that needs a work date goes through this function;
// check-out callers pass the work date captured at check-in rather than
// recomputing it, so a post-midnight check-out still closes the prior day.
func WorkDateOf(ts time.Time, loc *time.Location) time.Time {
	local := ts.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// CutoffOn places an HH:MM wall-clock cutoff on the given work date.
// The cutoff string must already be validated by config.
func CutoffOn(workDate time.Time, cutoff string, loc *time.Location) time.Time {
	t, _ := time.Parse("15:04", cutoff)
	return time.Date(workDate.Year(), workDate.Month(), workDate.Day(),
		t.Hour(), t.Minute(), 0, 0, loc)
}

// FixedClock is a Clock pinned to a single instant, for tests.
type FixedClock struct {
	Time time.Time
	Loc  *time.Location
}

func (c FixedClock) Now() time.Time {
	return c.Time.In(c.Loc)
}

func (c FixedClock) Location() *time.Location {
	return c.Loc
}
