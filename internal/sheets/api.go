// Package sheets exports range conflict reports to a Google
// Spreadsheet so guild officers can review violations without running
// the planner themselves.
package sheets

import "context"

// SheetsAPI defines the spreadsheet operations used by the report
// writer. The Google Sheets API mandates [][]interface{} for cell
// values; keep that shape confined to this boundary.
type SheetsAPI interface {
	UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
	ClearRange(ctx context.Context, spreadsheetID, range_ string) error
	CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error
	SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error)
}
