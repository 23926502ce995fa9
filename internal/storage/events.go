package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/VenEttore/nw-planner/internal/app"
)

// warEventColumns is the select list shared by the war-event queries.
// Each event row is enriched with the owning character's steam account,
// server timezone and home server via the join.
const warEventColumns = `
	e.id, e.event_type, COALESCE(e.war_type, ''), e.character_id,
	COALESCE(e.server_name, ''), e.event_time, COALESCE(e.timezone, ''),
	COALESCE(e.participation_status, ''),
	c.steam_account_id, COALESCE(c.server_timezone, ''), COALESCE(c.server_name, '')`

// WarEventsBetween returns all War events with an event time in
// [from, to], ascending by event time.
func (s *Store) WarEventsBetween(ctx context.Context, from, to time.Time) ([]app.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+warEventColumns+`
		FROM events e
		LEFT JOIN characters c ON c.id = e.character_id
		WHERE e.event_type = ?
		  AND e.event_time >= ? AND e.event_time <= ?
		ORDER BY e.event_time ASC`,
		app.EventTypeWar, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query war events: %w", err)
	}
	defer rows.Close()

	return scanWarEvents(rows)
}

// WarEventsForCharacterBetween returns one character's War events with
// an event time in [from, to], ascending by event time.
func (s *Store) WarEventsForCharacterBetween(ctx context.Context, characterID int64, from, to time.Time) ([]app.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+warEventColumns+`
		FROM events e
		LEFT JOIN characters c ON c.id = e.character_id
		WHERE e.event_type = ? AND e.character_id = ?
		  AND e.event_time >= ? AND e.event_time <= ?
		ORDER BY e.event_time ASC`,
		app.EventTypeWar, characterID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query war events for character %d: %w", characterID, err)
	}
	defer rows.Close()

	return scanWarEvents(rows)
}

func scanWarEvents(rows *sql.Rows) ([]app.Event, error) {
	var events []app.Event
	for rows.Next() {
		var (
			ev        app.Event
			charID    sql.NullInt64
			steamID   sql.NullInt64
			eventTime string
		)
		err := rows.Scan(
			&ev.ID, &ev.EventType, &ev.WarType, &charID,
			&ev.ServerName, &eventTime, &ev.Timezone,
			&ev.ParticipationStatus,
			&steamID, &ev.ServerTimezone, &ev.CharacterServerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan war event: %w", err)
		}

		ev.CharacterID = scanNullableID(charID)
		ev.SteamAccountID = scanNullableID(steamID)
		ev.EventTime, err = parseTime(eventTime)
		if err != nil {
			return nil, err
		}

		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate war events: %w", err)
	}
	return events, nil
}

// CreateEvent inserts an event and returns it with its assigned id.
func (s *Store) CreateEvent(ctx context.Context, ev app.Event) (*app.Event, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO events (event_type, war_type, character_id, server_name, event_time, timezone, participation_status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.EventType, ev.WarType, nullableID(ev.CharacterID), ev.ServerName,
		formatTime(ev.EventTime), ev.Timezone, ev.ParticipationStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted event id: %w", err)
	}

	ev.ID = id
	ev.EventTime = ev.EventTime.UTC()
	return &ev, nil
}

// UpdateEventStatus changes the participation status of one event.
func (s *Store) UpdateEventStatus(ctx context.Context, eventID int64, status string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE events SET participation_status = ? WHERE id = ?`, status, eventID)
	if err != nil {
		return fmt.Errorf("failed to update event %d: %w", eventID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check event update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("event %d not found", eventID)
	}
	return nil
}

// DeleteEvent removes an event. Deleting a missing event is not an error.
func (s *Store) DeleteEvent(ctx context.Context, eventID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, eventID); err != nil {
		return fmt.Errorf("failed to delete event %d: %w", eventID, err)
	}
	return nil
}
