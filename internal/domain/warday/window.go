// Package warday holds the pure time arithmetic behind war conflict
// detection: occupancy windows, zone-local war-day tokens and bounds,
// and severity summarization. Everything here is deterministic and
// side-effect free.
package warday

import (
	"time"

	"github.com/VenEttore/nw-planner/internal/app"
)

// Occupancy window offsets around a war's nominal start time. A war
// occupies a player's attention from shortly before the nominal time
// until well after it; conflicts are judged on occupancy, not on the
// nominal instants coinciding.
const (
	WindowBefore = 15 * time.Minute
	WindowAfter  = 30 * time.Minute
)

// Neighborhood is the scan radius around a candidate's timestamp when
// looking for conflicting events. Wide enough to cover any pair of
// occupancy windows that can overlap, narrow enough to avoid scanning
// the whole event table.
const Neighborhood = 4 * time.Hour

// Window is the occupancy interval of a single war event.
type Window struct {
	From time.Time
	To   time.Time
}

// ActiveWindow returns the occupancy window for a war at instant t.
func ActiveWindow(t time.Time) Window {
	return Window{
		From: t.Add(-WindowBefore),
		To:   t.Add(WindowAfter),
	}
}

// Overlaps reports whether two windows intersect. Boundaries are
// closed: touching endpoints count as overlapping.
func (w Window) Overlaps(o Window) bool {
	return !(w.To.Before(o.From) || w.From.After(o.To))
}

// DayToken returns the calendar date of t in the given zone, formatted
// YYYY-MM-DD. Events sharing a token fall on the same war day for that
// zone. An empty or unknown zone falls back to UTC.
func DayToken(t time.Time, tz string) string {
	return t.In(loadLocation(tz)).Format("2006-01-02")
}

// LocalDayBounds returns the UTC instants bounding the local calendar
// day containing t in the given zone. The upper bound is inclusive,
// one millisecond before the next local midnight.
func LocalDayBounds(t time.Time, tz string) (time.Time, time.Time) {
	loc := loadLocation(tz)
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start.UTC(), end.UTC()
}

// NormalizeWarType collapses a possibly empty role to Unspecified.
func NormalizeWarType(warType string) string {
	if warType == "" {
		return app.WarTypeUnspecified
	}
	return warType
}

// ConcreteWarType reports whether a role counts against per-day caps
// and duplicate slots. Unspecified placeholders do not.
func ConcreteWarType(warType string) bool {
	return warType == app.WarTypeAttack || warType == app.WarTypeDefense
}

func loadLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
