package app

import "time"

// Event type participating in conflict detection. Other event types
// (company runs, invasions, ...) are stored but never matched.
const EventTypeWar = "War"

// War roles. Only Attack and Defense count against the daily cap.
const (
	WarTypeAttack      = "Attack"
	WarTypeDefense     = "Defense"
	WarTypeUnspecified = "Unspecified"
)

// Participation status labels with special meaning to the rules engine.
const (
	StatusConfirmed = "Confirmed"
	StatusSignedUp  = "Signed Up"
)

// SeverityLevel ranks a detected conflict.
type SeverityLevel string

const (
	SeverityNone SeverityLevel = "none"
	SeveritySoft SeverityLevel = "soft"
	SeverityHard SeverityLevel = "hard"
)

// Event is a scheduled occurrence. CharacterID is nil for server-only
// events, which are not attributable to a player. EventTime is stored
// zone-normalized to UTC; Timezone is the owning character's declared
// zone used to anchor war-day boundaries.
type Event struct {
	ID                  int64
	EventType           string
	WarType             string
	CharacterID         *int64
	ServerName          string
	EventTime           time.Time
	Timezone            string
	ParticipationStatus string

	// Columns joined from the owning character, populated by the
	// war-event queries.
	SteamAccountID      *int64
	ServerTimezone      string
	CharacterServerName string
}

// EventDTO describes a candidate event for conflict evaluation. It may
// be a stored event (ID set) or an unsaved draft (ID zero). WarRole is
// a legacy alias for WarType accepted from older callers; the
// normalizer collapses the two.
type EventDTO struct {
	ID                  int64
	EventType           string
	WarType             string
	WarRole             string
	CharacterID         *int64
	ServerName          string
	EventTime           *time.Time
	Timezone            string
	ParticipationStatus string
}

// Character is a player persona owned by exactly one steam account.
type Character struct {
	ID             int64
	Name           string
	SteamAccountID *int64
	ServerName     string
	ServerTimezone string
}

// SteamAccount is the external identity shared by a player's characters.
type SteamAccount struct {
	ID        int64
	Label     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParticipationStatus is a reference row describing one status label.
type ParticipationStatus struct {
	ID        int64
	Name      string
	Slug      string
	ColorBg   string
	ColorText string
	SortOrder int
	IsAbsent  bool
	IsDefault bool
}

// ConflictSeverities holds the per-check severity of one evaluation.
type ConflictSeverities struct {
	Caps       SeverityLevel
	SteamDupes SeverityLevel
	Overlaps   SeverityLevel
}

// ConflictResult is the outcome of evaluating a single candidate.
type ConflictResult struct {
	Caps       []Event
	SteamDupes []Event
	Overlaps   []Event
	Summaries  ConflictSeverities
}

// ConflictCounts aggregates severities for reporting: a hard cap or
// hard overlap each add to Hard, a soft dupe or soft overlap to Soft.
type ConflictCounts struct {
	Hard int
	Soft int
}

// ConflictSummary is the per-event row emitted by a range scan.
type ConflictSummary struct {
	EventID    int64
	Caps       []int64
	SteamDupes []int64
	Overlaps   []int64
	Summaries  ConflictSeverities
	Counts     ConflictCounts
}

// Task is a recurring chore definition. Type is "daily" or "weekly".
type Task struct {
	ID          int64
	Name        string
	Description string
	Type        string
	Priority    string
	Rewards     string
}

// TaskCompletion records one character completing a task within a
// reset period. Period keys are opaque to this system; the caller's
// reset calculator produces them.
type TaskCompletion struct {
	TaskID      int64
	CharacterID int64
	ResetPeriod string
	StreakCount int
	CompletedAt time.Time
}

// CompletionStat summarizes one character's completions in a period.
type CompletionStat struct {
	CharacterID       int64
	CharacterName     string
	TotalCompletions  int
	DailyCompletions  int
	WeeklyCompletions int
}
