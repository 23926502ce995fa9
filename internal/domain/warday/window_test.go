package warday

import (
	"testing"
	"time"

	"github.com/VenEttore/nw-planner/internal/app"
)

func TestActiveWindow(t *testing.T) {
	nominal := time.Date(2025, 3, 8, 20, 0, 0, 0, time.UTC)
	window := ActiveWindow(nominal)

	if !window.From.Equal(nominal.Add(-15 * time.Minute)) {
		t.Errorf("expected window to open 15m before nominal, got %v", window.From)
	}
	if !window.To.Equal(nominal.Add(30 * time.Minute)) {
		t.Errorf("expected window to close 30m after nominal, got %v", window.To)
	}
	if span := window.To.Sub(window.From); span != 45*time.Minute {
		t.Errorf("expected 45m span, got %v", span)
	}
}

func TestWindowOverlaps(t *testing.T) {
	base := time.Date(2025, 3, 8, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		offsetB  time.Duration
		expected bool
	}{
		{"SameTime", 0, true},
		{"TenMinutesApart", 10 * time.Minute, true},
		{"FortyFiveMinutesApart_TouchingEndpoints", 45 * time.Minute, true},
		{"FortySixMinutesApart", 46 * time.Minute, false},
		{"TwoHoursApart", 2 * time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ActiveWindow(base)
			b := ActiveWindow(base.Add(tt.offsetB))

			if got := a.Overlaps(b); got != tt.expected {
				t.Errorf("Overlaps(a, b) = %v, expected %v", got, tt.expected)
			}
			if got := b.Overlaps(a); got != tt.expected {
				t.Errorf("Overlaps(b, a) = %v, expected %v (symmetry)", got, tt.expected)
			}
		})
	}
}

func TestDayToken(t *testing.T) {
	// 2025-03-09 03:00 UTC is still 2025-03-08 in Los Angeles.
	instant := time.Date(2025, 3, 9, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		tz       string
		expected string
	}{
		{"UTC", "UTC", "2025-03-09"},
		{"EmptyZoneFallsBackToUTC", "", "2025-03-09"},
		{"LosAngeles", "America/Los_Angeles", "2025-03-08"},
		{"Sydney", "Australia/Sydney", "2025-03-09"},
		{"UnknownZoneFallsBackToUTC", "Mars/Olympus_Mons", "2025-03-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayToken(instant, tt.tz); got != tt.expected {
				t.Errorf("DayToken(%v, %q) = %q, expected %q", instant, tt.tz, got, tt.expected)
			}
		})
	}
}

func TestLocalDayBounds(t *testing.T) {
	// 2025-06-15 18:30 UTC is 14:30 in New York (UTC-4 in June).
	instant := time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)

	start, end := LocalDayBounds(instant, "America/New_York")

	expectedStart := time.Date(2025, 6, 15, 4, 0, 0, 0, time.UTC)
	if !start.Equal(expectedStart) {
		t.Errorf("expected day start %v, got %v", expectedStart, start)
	}

	expectedEnd := time.Date(2025, 6, 16, 3, 59, 59, 999000000, time.UTC)
	if !end.Equal(expectedEnd) {
		t.Errorf("expected day end %v, got %v", expectedEnd, end)
	}

	if !start.Before(instant) || !end.After(instant) {
		t.Errorf("bounds [%v, %v] do not contain %v", start, end, instant)
	}
}

func TestLocalDayBoundsUTC(t *testing.T) {
	instant := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	start, end := LocalDayBounds(instant, "UTC")

	if !start.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected day start %v", start)
	}
	if !end.Equal(time.Date(2025, 1, 1, 23, 59, 59, 999000000, time.UTC)) {
		t.Errorf("unexpected day end %v", end)
	}
}

func TestNormalizeWarType(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", app.WarTypeUnspecified},
		{app.WarTypeAttack, app.WarTypeAttack},
		{app.WarTypeDefense, app.WarTypeDefense},
		{app.WarTypeUnspecified, app.WarTypeUnspecified},
	}

	for _, tt := range tests {
		if got := NormalizeWarType(tt.input); got != tt.expected {
			t.Errorf("NormalizeWarType(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestConcreteWarType(t *testing.T) {
	if !ConcreteWarType(app.WarTypeAttack) {
		t.Error("Attack should be a concrete war type")
	}
	if !ConcreteWarType(app.WarTypeDefense) {
		t.Error("Defense should be a concrete war type")
	}
	if ConcreteWarType(app.WarTypeUnspecified) {
		t.Error("Unspecified should not be a concrete war type")
	}
	if ConcreteWarType("") {
		t.Error("empty role should not be a concrete war type")
	}
}
