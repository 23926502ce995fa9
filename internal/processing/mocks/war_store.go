package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/VenEttore/nw-planner/internal/app"
)

// MockWarStore is an in-memory test double for the planner store. Its
// Events slice holds rows already enriched the way the SQL join would
// enrich them (steam account id, server timezone, character server).
type MockWarStore struct {
	Events     []app.Event
	Characters map[int64]*app.Character
	Statuses   []app.ParticipationStatus

	// Errors to return
	WarEventsError error
	StatusesError  error
	CharacterError error

	// Call tracking
	WarEventsBetweenCalls             int
	WarEventsForCharacterBetweenCalls int
	ParticipationStatusesCalls        int
	CharacterByIDCalls                int
}

// NewMockWarStore creates a mock with the default status reference set.
func NewMockWarStore() *MockWarStore {
	return &MockWarStore{
		Characters: make(map[int64]*app.Character),
		Statuses: []app.ParticipationStatus{
			{ID: 1, Name: "Signed Up", Slug: "signed-up"},
			{ID: 2, Name: "Confirmed", Slug: "confirmed"},
			{ID: 3, Name: "Tentative", Slug: "tentative"},
			{ID: 4, Name: "Declined", Slug: "declined", IsAbsent: true},
			{ID: 5, Name: "Absent", Slug: "absent", IsAbsent: true},
		},
	}
}

func (m *MockWarStore) WarEventsBetween(ctx context.Context, from, to time.Time) ([]app.Event, error) {
	m.WarEventsBetweenCalls++
	if m.WarEventsError != nil {
		return nil, m.WarEventsError
	}
	return m.filterEvents(from, to, nil), nil
}

func (m *MockWarStore) WarEventsForCharacterBetween(ctx context.Context, characterID int64, from, to time.Time) ([]app.Event, error) {
	m.WarEventsForCharacterBetweenCalls++
	if m.WarEventsError != nil {
		return nil, m.WarEventsError
	}
	return m.filterEvents(from, to, &characterID), nil
}

func (m *MockWarStore) ParticipationStatuses(ctx context.Context) ([]app.ParticipationStatus, error) {
	m.ParticipationStatusesCalls++
	if m.StatusesError != nil {
		return nil, m.StatusesError
	}
	return m.Statuses, nil
}

func (m *MockWarStore) CharacterByID(ctx context.Context, id int64) (*app.Character, error) {
	m.CharacterByIDCalls++
	if m.CharacterError != nil {
		return nil, m.CharacterError
	}
	return m.Characters[id], nil
}

func (m *MockWarStore) filterEvents(from, to time.Time, characterID *int64) []app.Event {
	var matched []app.Event
	for _, ev := range m.Events {
		if ev.EventType != app.EventTypeWar {
			continue
		}
		if ev.EventTime.Before(from) || ev.EventTime.After(to) {
			continue
		}
		if characterID != nil && (ev.CharacterID == nil || *ev.CharacterID != *characterID) {
			continue
		}
		matched = append(matched, ev)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].EventTime.Before(matched[j].EventTime)
	})
	return matched
}
