package warday

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genInstant() gopter.Gen {
	// Unix seconds spanning 2020..2030, enough to cross DST boundaries
	return gen.Int64Range(1577836800, 1893456000).Map(func(sec int64) time.Time {
		return time.Unix(sec, 0).UTC()
	})
}

// TestWindowProperties verifies the interval-arithmetic invariants that
// the conflict matchers rely on.
func TestWindowProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("window always spans 45 minutes", prop.ForAll(
		func(instant time.Time) bool {
			window := ActiveWindow(instant)
			return window.To.Sub(window.From) == 45*time.Minute
		},
		genInstant(),
	))

	properties.Property("overlap is reflexive", prop.ForAll(
		func(instant time.Time) bool {
			window := ActiveWindow(instant)
			return window.Overlaps(window)
		},
		genInstant(),
	))

	properties.Property("overlap is symmetric", prop.ForAll(
		func(a, b time.Time) bool {
			wa := ActiveWindow(a)
			wb := ActiveWindow(b)
			return wa.Overlaps(wb) == wb.Overlaps(wa)
		},
		genInstant(),
		genInstant(),
	))

	properties.Property("events within 45 minutes always overlap", prop.ForAll(
		func(instant time.Time, offsetMin int64) bool {
			other := instant.Add(time.Duration(offsetMin) * time.Minute)
			return ActiveWindow(instant).Overlaps(ActiveWindow(other))
		},
		genInstant(),
		gen.Int64Range(-45, 45),
	))

	properties.Property("events more than 45 minutes apart never overlap", prop.ForAll(
		func(instant time.Time, offsetMin int64) bool {
			other := instant.Add(time.Duration(offsetMin) * time.Minute)
			return !ActiveWindow(instant).Overlaps(ActiveWindow(other))
		},
		genInstant(),
		gen.Int64Range(46, 600),
	))

	properties.Property("day token is stable under UTC round trip", prop.ForAll(
		func(instant time.Time) bool {
			return DayToken(instant, "UTC") == DayToken(instant.In(time.FixedZone("x", 3600)), "UTC")
		},
		genInstant(),
	))

	properties.Property("local day bounds contain the instant", prop.ForAll(
		func(instant time.Time) bool {
			start, end := LocalDayBounds(instant, "America/New_York")
			return !instant.Before(start) && !instant.After(end)
		},
		genInstant(),
	))

	properties.TestingRun(t)
}
