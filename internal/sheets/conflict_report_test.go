package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/VenEttore/nw-planner/internal/app"
)

type fakeSheetsAPI struct {
	sheets        map[string]bool
	updatedRange  string
	updatedValues [][]interface{}
	clearedRange  string
	createdSheets []string
}

func newFakeSheetsAPI() *fakeSheetsAPI {
	return &fakeSheetsAPI{sheets: make(map[string]bool)}
}

func (f *fakeSheetsAPI) UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	f.updatedRange = range_
	f.updatedValues = values
	return nil
}

func (f *fakeSheetsAPI) ClearRange(ctx context.Context, spreadsheetID, range_ string) error {
	f.clearedRange = range_
	return nil
}

func (f *fakeSheetsAPI) CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	f.sheets[sheetName] = true
	f.createdSheets = append(f.createdSheets, sheetName)
	return nil
}

func (f *fakeSheetsAPI) SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error) {
	return f.sheets[sheetName], nil
}

func sampleSummaries() []app.ConflictSummary {
	return []app.ConflictSummary{
		{
			EventID:    1,
			Caps:       []int64{},
			SteamDupes: []int64{2},
			Overlaps:   []int64{2, 3},
			Summaries: app.ConflictSeverities{
				Caps:       app.SeverityNone,
				SteamDupes: app.SeveritySoft,
				Overlaps:   app.SeverityHard,
			},
			Counts: app.ConflictCounts{Hard: 1, Soft: 1},
		},
	}
}

func TestWriteConflictReportCreatesSheetOnFirstUse(t *testing.T) {
	api := newFakeSheetsAPI()
	writer := NewReportWriter(api, "sheet-123")

	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	if err := writer.WriteConflictReport(context.Background(), from, to, sampleSummaries()); err != nil {
		t.Fatalf("WriteConflictReport returned error: %v", err)
	}

	if len(api.createdSheets) != 1 || api.createdSheets[0] != conflictSheetName {
		t.Errorf("expected conflict sheet to be created, got %v", api.createdSheets)
	}
	if api.clearedRange == "" {
		t.Error("expected previous contents to be cleared")
	}

	// Second write reuses the existing sheet
	if err := writer.WriteConflictReport(context.Background(), from, to, sampleSummaries()); err != nil {
		t.Fatalf("second WriteConflictReport returned error: %v", err)
	}
	if len(api.createdSheets) != 1 {
		t.Errorf("sheet should be created once, got %v", api.createdSheets)
	}
}

func TestBuildConflictRows(t *testing.T) {
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	rows := buildConflictRows(from, to, sampleSummaries())

	// Header block is 5 rows, then one row per event.
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}

	eventRow := rows[5]
	if eventRow[0] != int64(1) {
		t.Errorf("expected event id 1, got %v", eventRow[0])
	}
	if eventRow[2] != "soft" || eventRow[3] != "hard" {
		t.Errorf("unexpected severity cells: %v", eventRow)
	}
	if eventRow[6] != "2, 3" {
		t.Errorf("expected overlap matches '2, 3', got %v", eventRow[6])
	}
	if eventRow[7] != "1/1" {
		t.Errorf("expected counts '1/1', got %v", eventRow[7])
	}
}
