package processing

import (
	"context"
	"fmt"
	"time"

	"github.com/VenEttore/nw-planner/internal/app"
	"github.com/VenEttore/nw-planner/internal/domain/warday"

	"github.com/rs/zerolog/log"
)

// WarRulesService detects scheduling rule violations for war events:
// per-character daily role caps, steam-account duplicate slots on the
// same server, and overlapping occupancy windows for the same player.
type WarRulesService struct {
	store    WarStoreInterface
	statuses *StatusCache
}

// NewWarRulesService creates a rules service over the given store.
func NewWarRulesService(store WarStoreInterface) *WarRulesService {
	return &WarRulesService{
		store:    store,
		statuses: NewStatusCache(store),
	}
}

// InvalidateStatusCache drops the cached absent-status set so the next
// evaluation reloads the reference table.
func (s *WarRulesService) InvalidateStatusCache() {
	s.statuses.Invalidate()
}

// candidate is the fully normalized form of an EventDTO: role and
// status defaults applied, venue and steam account resolved where
// possible. Fields left empty disable the checks that need them.
type candidate struct {
	id                  int64
	warType             string
	characterID         *int64
	serverName          string
	eventTime           time.Time
	timezone            string
	participationStatus string
	steamAccountID      *int64
}

// ConflictsForEvent evaluates one event descriptor, stored or draft,
// against the war scheduling rules. A candidate without a timestamp
// yields an empty result: no conflicts are computable for it. The
// three checks are independent; a skip condition in one never
// suppresses the others.
func (s *WarRulesService) ConflictsForEvent(ctx context.Context, dto app.EventDTO) (*app.ConflictResult, error) {
	result := &app.ConflictResult{
		Summaries: app.ConflictSeverities{
			Caps:       app.SeverityNone,
			SteamDupes: app.SeverityNone,
			Overlaps:   app.SeverityNone,
		},
	}

	if dto.EventTime == nil {
		log.Debug().Int64("event_id", dto.ID).Msg("Candidate has no event time, skipping conflict checks")
		return result, nil
	}

	isAbsent, err := s.statuses.AbsentFunc(ctx)
	if err != nil {
		return nil, err
	}

	cand := normalizeCandidate(dto)

	// Fetch the time-bounded neighborhood first; missing candidate
	// fields are resolved from it below.
	nearby, err := s.store.WarEventsBetween(ctx,
		cand.eventTime.Add(-warday.Neighborhood),
		cand.eventTime.Add(warday.Neighborhood))
	if err != nil {
		return nil, fmt.Errorf("failed to load event neighborhood: %w", err)
	}
	nearby = excludeEvent(nearby, cand.id)

	if cand.characterID != nil {
		if cand.serverName == "" {
			cand.serverName = s.serverForCharacter(ctx, *cand.characterID, nearby)
		}
		cand.steamAccountID = s.steamForCharacter(ctx, *cand.characterID, nearby)
	}

	window := warday.ActiveWindow(cand.eventTime)

	// Time-window overlaps: same character or same steam account.
	result.Overlaps = s.overlapMatches(ctx, cand, window, nearby)
	result.Summaries.Overlaps = warday.SummarizeSeverity(
		participantStatuses(cand, result.Overlaps), isAbsent).Severity

	// Steam duplicates: same steam account, same server, same role.
	result.SteamDupes = s.steamDuplicates(ctx, cand, window, nearby)
	if len(result.SteamDupes) > 0 {
		summary := warday.SummarizeSeverity(participantStatuses(cand, result.SteamDupes), isAbsent)
		// A duplicate slot held entirely by withdrawn participants is
		// not an active conflict.
		if summary.NonAbsentCount >= 2 {
			result.Summaries.SteamDupes = app.SeveritySoft
		}
	}

	// Daily caps: one Attack and one Defense per character per war day.
	caps, err := s.capViolations(ctx, cand)
	if err != nil {
		return nil, err
	}
	result.Caps = caps
	if len(caps) > 0 {
		result.Summaries.Caps = app.SeverityHard
	}

	log.Debug().
		Int64("event_id", cand.id).
		Str("war_type", cand.warType).
		Str("caps", string(result.Summaries.Caps)).
		Str("steam_dupes", string(result.Summaries.SteamDupes)).
		Str("overlaps", string(result.Summaries.Overlaps)).
		Msg("Evaluated war conflicts")

	return result, nil
}

// normalizeCandidate applies the defaulting rules in one place: the
// legacy WarRole alias collapses into WarType, missing roles become
// Unspecified, missing statuses become Signed Up, missing zones UTC.
func normalizeCandidate(dto app.EventDTO) candidate {
	warType := dto.WarType
	if warType == "" {
		warType = dto.WarRole
	}

	status := dto.ParticipationStatus
	if status == "" {
		status = app.StatusSignedUp
	}

	tz := dto.Timezone
	if tz == "" {
		tz = "UTC"
	}

	return candidate{
		id:                  dto.ID,
		warType:             warday.NormalizeWarType(warType),
		characterID:         dto.CharacterID,
		serverName:          dto.ServerName,
		eventTime:           dto.EventTime.UTC(),
		timezone:            tz,
		participationStatus: status,
	}
}

// overlapMatches returns neighborhood events whose occupancy window
// overlaps the candidate's and which share its character or steam
// account. Server-only candidates are never attributed to a player, so
// they cannot overlap.
func (s *WarRulesService) overlapMatches(ctx context.Context, cand candidate, window warday.Window, nearby []app.Event) []app.Event {
	if cand.characterID == nil {
		return nil
	}

	var matches []app.Event
	for _, ev := range nearby {
		if !window.Overlaps(warday.ActiveWindow(ev.EventTime)) {
			continue
		}

		sameCharacter := ev.CharacterID != nil && *ev.CharacterID == *cand.characterID
		sameSteam := false
		if !sameCharacter && cand.steamAccountID != nil {
			if steamID := s.steamForEvent(ctx, ev, nearby); steamID != nil && *steamID == *cand.steamAccountID {
				sameSteam = true
			}
		}

		if sameCharacter || sameSteam {
			matches = append(matches, ev)
		}
	}
	return matches
}

// steamDuplicates returns neighborhood events holding the same slot:
// same steam account, same server, same concrete role, overlapping
// occupancy window.
func (s *WarRulesService) steamDuplicates(ctx context.Context, cand candidate, window warday.Window, nearby []app.Event) []app.Event {
	if cand.characterID == nil || cand.serverName == "" || !warday.ConcreteWarType(cand.warType) {
		return nil
	}
	if cand.steamAccountID == nil {
		return nil
	}

	var dupes []app.Event
	for _, ev := range nearby {
		steamID := s.steamForEvent(ctx, ev, nearby)
		if steamID == nil || *steamID != *cand.steamAccountID {
			continue
		}
		if !window.Overlaps(warday.ActiveWindow(ev.EventTime)) {
			continue
		}
		server := eventServerName(ev)
		if server == "" || server != cand.serverName {
			continue
		}
		if warday.NormalizeWarType(ev.WarType) != cand.warType {
			continue
		}
		dupes = append(dupes, ev)
	}
	return dupes
}

// capViolations returns the candidate character's other events with
// the same role on the same local war day. The day is anchored in the
// candidate's declared zone and queried as absolute instants.
func (s *WarRulesService) capViolations(ctx context.Context, cand candidate) ([]app.Event, error) {
	if cand.characterID == nil || !warday.ConcreteWarType(cand.warType) {
		return nil, nil
	}

	dayToken := warday.DayToken(cand.eventTime, cand.timezone)
	dayStart, dayEnd := warday.LocalDayBounds(cand.eventTime, cand.timezone)

	sameCharacter, err := s.store.WarEventsForCharacterBetween(ctx, *cand.characterID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load same-day events for character %d: %w", *cand.characterID, err)
	}

	var violations []app.Event
	for _, ev := range sameCharacter {
		if ev.ID == cand.id {
			continue
		}
		if warday.DayToken(ev.EventTime, cand.timezone) != dayToken {
			continue
		}
		if warday.NormalizeWarType(ev.WarType) != cand.warType {
			continue
		}
		violations = append(violations, ev)
	}
	return violations, nil
}

// serverForCharacter resolves a character's venue from the joined
// neighborhood rows, falling back to a direct lookup. Resolution is
// best effort: normalization never fails, a missing venue just
// disables the checks that need one.
func (s *WarRulesService) serverForCharacter(ctx context.Context, characterID int64, nearby []app.Event) string {
	for _, ev := range nearby {
		if ev.CharacterID != nil && *ev.CharacterID == characterID {
			if name := eventServerName(ev); name != "" {
				return name
			}
		}
	}

	character, err := s.store.CharacterByID(ctx, characterID)
	if err != nil {
		log.Debug().Err(err).Int64("character_id", characterID).Msg("Venue fallback lookup failed")
		return ""
	}
	if character == nil {
		return ""
	}
	return character.ServerName
}

// steamForCharacter resolves a character's steam account id the same
// way: neighborhood join first, direct lookup second.
func (s *WarRulesService) steamForCharacter(ctx context.Context, characterID int64, nearby []app.Event) *int64 {
	for _, ev := range nearby {
		if ev.CharacterID != nil && *ev.CharacterID == characterID && ev.SteamAccountID != nil {
			return ev.SteamAccountID
		}
	}

	character, err := s.store.CharacterByID(ctx, characterID)
	if err != nil {
		log.Debug().Err(err).Int64("character_id", characterID).Msg("Steam account fallback lookup failed")
		return nil
	}
	if character == nil {
		return nil
	}
	return character.SteamAccountID
}

func (s *WarRulesService) steamForEvent(ctx context.Context, ev app.Event, nearby []app.Event) *int64 {
	if ev.SteamAccountID != nil {
		return ev.SteamAccountID
	}
	if ev.CharacterID == nil {
		return nil
	}
	return s.steamForCharacter(ctx, *ev.CharacterID, nearby)
}

// eventServerName prefers the event's own venue over the owning
// character's home server.
func eventServerName(ev app.Event) string {
	if ev.ServerName != "" {
		return ev.ServerName
	}
	return ev.CharacterServerName
}

func excludeEvent(events []app.Event, id int64) []app.Event {
	filtered := events[:0:0]
	for _, ev := range events {
		if ev.ID != id {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

func participantStatuses(cand candidate, matches []app.Event) []string {
	statuses := make([]string, 0, len(matches)+1)
	statuses = append(statuses, cand.participationStatus)
	for _, ev := range matches {
		statuses = append(statuses, ev.ParticipationStatus)
	}
	return statuses
}
