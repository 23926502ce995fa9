package processing

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/VenEttore/nw-planner/internal/app"
	"github.com/VenEttore/nw-planner/internal/processing/mocks"
)

func newScanner(store *mocks.MockWarStore) *RangeScanner {
	rules := NewWarRulesService(store)
	return NewRangeScanner(rules, store)
}

func TestScanRangeEmpty(t *testing.T) {
	store := mocks.NewMockWarStore()
	scanner := newScanner(store)

	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	summaries, err := scanner.ScanRange(context.Background(), from, to)
	if err != nil {
		t.Fatalf("ScanRange returned error: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("expected empty result for empty range, got %d summaries", len(summaries))
	}
}

func TestScanRangeCountsAndOrder(t *testing.T) {
	store := mocks.NewMockWarStore()
	base := time.Date(2025, 5, 10, 20, 0, 0, 0, time.UTC)

	store.Characters[1] = &app.Character{ID: 1, Name: "Aldric", SteamAccountID: ptr(100), ServerName: "Valhalla"}
	store.Characters[2] = &app.Character{ID: 2, Name: "Brynn", SteamAccountID: ptr(100), ServerName: "Valhalla"}

	first := warEvent(1, ptr(1), app.WarTypeAttack, "Valhalla", base, app.StatusConfirmed)
	first.SteamAccountID = ptr(100)
	second := warEvent(2, ptr(2), app.WarTypeAttack, "Valhalla", base.Add(10*time.Minute), app.StatusConfirmed)
	second.SteamAccountID = ptr(100)
	store.Events = []app.Event{second, first} // intentionally unsorted

	scanner := newScanner(store)
	summaries, err := scanner.ScanRange(context.Background(), base.Add(-time.Hour), base.Add(time.Hour))
	if err != nil {
		t.Fatalf("ScanRange returned error: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].EventID != 1 || summaries[1].EventID != 2 {
		t.Errorf("expected summaries ordered by event time, got %d then %d",
			summaries[0].EventID, summaries[1].EventID)
	}

	for _, summary := range summaries {
		if summary.Summaries.SteamDupes != app.SeveritySoft {
			t.Errorf("event %d: expected soft duplicate, got %s", summary.EventID, summary.Summaries.SteamDupes)
		}
		if summary.Summaries.Overlaps != app.SeverityHard {
			t.Errorf("event %d: expected hard overlap, got %s", summary.EventID, summary.Summaries.Overlaps)
		}
		if summary.Summaries.Caps != app.SeverityNone {
			t.Errorf("event %d: expected no cap, got %s", summary.EventID, summary.Summaries.Caps)
		}
		expected := app.ConflictCounts{Hard: 1, Soft: 1}
		if summary.Counts != expected {
			t.Errorf("event %d: counts = %+v, expected %+v", summary.EventID, summary.Counts, expected)
		}
	}

	// Each event reports the other as its match; neither result
	// re-scores the other.
	if !reflect.DeepEqual(summaries[0].Overlaps, []int64{2}) {
		t.Errorf("event 1 overlaps = %v, expected [2]", summaries[0].Overlaps)
	}
	if !reflect.DeepEqual(summaries[1].Overlaps, []int64{1}) {
		t.Errorf("event 2 overlaps = %v, expected [1]", summaries[1].Overlaps)
	}
}

func TestScanRangeHardCapCounts(t *testing.T) {
	store := mocks.NewMockWarStore()
	base := time.Date(2025, 5, 10, 18, 0, 0, 0, time.UTC)

	store.Events = []app.Event{
		warEvent(1, ptr(1), app.WarTypeAttack, "Valhalla", base, app.StatusSignedUp),
		warEvent(2, ptr(1), app.WarTypeAttack, "Valhalla", base.Add(-10*time.Hour), app.StatusSignedUp),
	}

	scanner := newScanner(store)
	summaries, err := scanner.ScanRange(context.Background(), base.Add(-24*time.Hour), base.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("ScanRange returned error: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	for _, summary := range summaries {
		if summary.Summaries.Caps != app.SeverityHard {
			t.Errorf("event %d: expected hard cap, got %s", summary.EventID, summary.Summaries.Caps)
		}
		expected := app.ConflictCounts{Hard: 1, Soft: 0}
		if summary.Counts != expected {
			t.Errorf("event %d: counts = %+v, expected %+v", summary.EventID, summary.Counts, expected)
		}
	}
}

func TestScanRangeIdempotent(t *testing.T) {
	store := mocks.NewMockWarStore()
	base := time.Date(2025, 5, 10, 20, 0, 0, 0, time.UTC)

	store.Characters[1] = &app.Character{ID: 1, Name: "Aldric", SteamAccountID: ptr(100), ServerName: "Valhalla"}
	store.Characters[2] = &app.Character{ID: 2, Name: "Brynn", SteamAccountID: ptr(100), ServerName: "Valhalla"}

	first := warEvent(1, ptr(1), app.WarTypeAttack, "Valhalla", base, app.StatusConfirmed)
	first.SteamAccountID = ptr(100)
	second := warEvent(2, ptr(2), app.WarTypeAttack, "Valhalla", base.Add(10*time.Minute), app.StatusConfirmed)
	second.SteamAccountID = ptr(100)
	third := warEvent(3, ptr(1), app.WarTypeAttack, "Valhalla", base.Add(-11*time.Hour), app.StatusSignedUp)
	third.SteamAccountID = ptr(100)
	store.Events = []app.Event{first, second, third}

	scanner := newScanner(store)
	from := base.Add(-24 * time.Hour)
	to := base.Add(24 * time.Hour)

	firstRun, err := scanner.ScanRange(context.Background(), from, to)
	if err != nil {
		t.Fatalf("first ScanRange returned error: %v", err)
	}
	secondRun, err := scanner.ScanRange(context.Background(), from, to)
	if err != nil {
		t.Fatalf("second ScanRange returned error: %v", err)
	}

	if !reflect.DeepEqual(firstRun, secondRun) {
		t.Error("ScanRange over immutable data should be idempotent")
	}
}
