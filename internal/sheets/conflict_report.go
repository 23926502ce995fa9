package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/VenEttore/nw-planner/internal/app"

	"github.com/rs/zerolog/log"
)

const conflictSheetName = "War Conflicts"

// ReportWriter publishes range scan results to a spreadsheet tab.
type ReportWriter struct {
	api           SheetsAPI
	spreadsheetID string
}

// NewReportWriter creates a writer targeting one spreadsheet.
func NewReportWriter(api SheetsAPI, spreadsheetID string) *ReportWriter {
	return &ReportWriter{
		api:           api,
		spreadsheetID: spreadsheetID,
	}
}

// WriteConflictReport replaces the conflict tab's contents with one
// row per scanned event, creating the tab on first use.
func (w *ReportWriter) WriteConflictReport(ctx context.Context, from, to time.Time, summaries []app.ConflictSummary) error {
	exists, err := w.api.SheetExists(ctx, w.spreadsheetID, conflictSheetName)
	if err != nil {
		return fmt.Errorf("failed to check conflict sheet: %w", err)
	}
	if !exists {
		log.Info().Str("sheet_name", conflictSheetName).Msg("Creating conflict report sheet")
		if err := w.api.CreateSheet(ctx, w.spreadsheetID, conflictSheetName); err != nil {
			return fmt.Errorf("failed to create conflict sheet: %w", err)
		}
	}

	if err := w.api.ClearRange(ctx, w.spreadsheetID, conflictSheetName+"!A:H"); err != nil {
		return fmt.Errorf("failed to clear conflict sheet: %w", err)
	}

	rows := buildConflictRows(from, to, summaries)
	if err := w.api.UpdateRange(ctx, w.spreadsheetID, conflictSheetName+"!A1", rows); err != nil {
		return fmt.Errorf("failed to write conflict report: %w", err)
	}

	log.Info().
		Int("events", len(summaries)).
		Str("sheet_name", conflictSheetName).
		Msg("Wrote conflict report")

	return nil
}

// buildConflictRows converts summaries to sheet rows: a header block
// describing the scanned range, then one row per event.
func buildConflictRows(from, to time.Time, summaries []app.ConflictSummary) [][]interface{} {
	rows := [][]interface{}{
		{"War Conflict Report"},
		{"Range", from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339)},
		{"Generated", time.Now().UTC().Format(time.RFC3339)},
		{},
		{"Event ID", "Caps", "Steam Dupes", "Overlaps", "Cap Matches", "Dupe Matches", "Overlap Matches", "Hard/Soft"},
	}

	for _, summary := range summaries {
		rows = append(rows, []interface{}{
			summary.EventID,
			string(summary.Summaries.Caps),
			string(summary.Summaries.SteamDupes),
			string(summary.Summaries.Overlaps),
			joinIDs(summary.Caps),
			joinIDs(summary.SteamDupes),
			joinIDs(summary.Overlaps),
			fmt.Sprintf("%d/%d", summary.Counts.Hard, summary.Counts.Soft),
		})
	}

	return rows
}

func joinIDs(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}
