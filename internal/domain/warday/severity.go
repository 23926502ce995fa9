package warday

import "github.com/VenEttore/nw-planner/internal/app"

// SeveritySummary is the result of grading one participant set.
type SeveritySummary struct {
	Severity       app.SeverityLevel
	ConfirmedCount int
	NonAbsentCount int
}

// SummarizeSeverity grades a set of participant statuses (candidate
// plus matched events). Two or more Confirmed participants are a hard
// conflict; a single Confirmed alongside at least one other non-absent
// sign-up is soft. The result is order-independent over its input.
func SummarizeSeverity(statuses []string, isAbsent func(string) bool) SeveritySummary {
	summary := SeveritySummary{Severity: app.SeverityNone}

	for _, status := range statuses {
		if status == app.StatusConfirmed {
			summary.ConfirmedCount++
		}
		if !isAbsent(status) {
			summary.NonAbsentCount++
		}
	}

	if summary.ConfirmedCount >= 2 {
		summary.Severity = app.SeverityHard
	} else if summary.ConfirmedCount == 1 && summary.NonAbsentCount >= 2 {
		summary.Severity = app.SeveritySoft
	}

	return summary
}
