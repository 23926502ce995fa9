package processing

import (
	"context"
	"fmt"
	"time"

	"github.com/VenEttore/nw-planner/internal/app"

	"github.com/rs/zerolog/log"
)

// RangeScanner applies the single-event conflict pipeline to every war
// event in a date range. Each event is scored independently; there is
// no fix-point iteration, so re-running a scan over unchanged data
// yields identical output.
type RangeScanner struct {
	rules *WarRulesService
	store WarStoreInterface
}

// NewRangeScanner creates a scanner sharing the rules service's store.
func NewRangeScanner(rules *WarRulesService, store WarStoreInterface) *RangeScanner {
	return &RangeScanner{
		rules: rules,
		store: store,
	}
}

// ScanRange evaluates every war event with a timestamp in [from, to],
// ascending, and returns one conflict summary per event.
func (rs *RangeScanner) ScanRange(ctx context.Context, from, to time.Time) ([]app.ConflictSummary, error) {
	events, err := rs.store.WarEventsBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load war events for range scan: %w", err)
	}

	summaries := make([]app.ConflictSummary, 0, len(events))
	for _, ev := range events {
		eventTime := ev.EventTime
		dto := app.EventDTO{
			ID:                  ev.ID,
			EventType:           ev.EventType,
			WarType:             ev.WarType,
			CharacterID:         ev.CharacterID,
			ServerName:          ev.ServerName,
			EventTime:           &eventTime,
			Timezone:            ev.Timezone,
			ParticipationStatus: ev.ParticipationStatus,
		}

		result, err := rs.rules.ConflictsForEvent(ctx, dto)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate conflicts for event %d: %w", ev.ID, err)
		}

		summaries = append(summaries, app.ConflictSummary{
			EventID:    ev.ID,
			Caps:       eventIDs(result.Caps),
			SteamDupes: eventIDs(result.SteamDupes),
			Overlaps:   eventIDs(result.Overlaps),
			Summaries:  result.Summaries,
			Counts:     countSeverities(result.Summaries),
		})
	}

	log.Debug().
		Time("from", from).
		Time("to", to).
		Int("events", len(events)).
		Msg("Completed range conflict scan")

	return summaries, nil
}

// countSeverities folds per-check severities into the report pair: a
// hard cap or hard overlap each add to Hard, a soft dupe or soft
// overlap to Soft.
func countSeverities(s app.ConflictSeverities) app.ConflictCounts {
	var counts app.ConflictCounts
	if s.Caps == app.SeverityHard {
		counts.Hard++
	}
	if s.Overlaps == app.SeverityHard {
		counts.Hard++
	}
	if s.SteamDupes == app.SeveritySoft {
		counts.Soft++
	}
	if s.Overlaps == app.SeveritySoft {
		counts.Soft++
	}
	return counts
}

func eventIDs(events []app.Event) []int64 {
	ids := make([]int64, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}
	return ids
}
