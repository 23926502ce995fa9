package processing

import (
	"context"
	"time"

	"github.com/VenEttore/nw-planner/internal/app"
)

// WarStoreInterface defines the read-only queries the conflict engine
// performs against the event store. War event rows come back enriched
// with the owning character's steam account id, server timezone and
// home server, ascending by event time.
type WarStoreInterface interface {
	WarEventsBetween(ctx context.Context, from, to time.Time) ([]app.Event, error)
	WarEventsForCharacterBetween(ctx context.Context, characterID int64, from, to time.Time) ([]app.Event, error)
	ParticipationStatuses(ctx context.Context) ([]app.ParticipationStatus, error)
	CharacterByID(ctx context.Context, id int64) (*app.Character, error)
}
