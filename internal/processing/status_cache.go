package processing

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// StatusCache is a read-through cache of the participation status
// reference table, reduced to the set of labels flagged absent. The
// reference data changes rarely, so the set is loaded once and held
// for the cache's lifetime; Invalidate forces a reload on next use.
type StatusCache struct {
	store WarStoreInterface

	mu     sync.RWMutex
	absent map[string]struct{}
	loaded bool
}

// NewStatusCache creates an empty cache over the given store.
func NewStatusCache(store WarStoreInterface) *StatusCache {
	return &StatusCache{store: store}
}

// IsAbsent reports whether the given status label is flagged absent.
// Unknown labels and the empty label are not absent: an unrecognized
// status still occupies a slot.
func (c *StatusCache) IsAbsent(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, nil
	}

	absent, err := c.absentSet(ctx)
	if err != nil {
		return false, err
	}
	_, ok := absent[name]
	return ok, nil
}

// AbsentFunc returns a plain predicate over the loaded set, for use by
// the pure severity summarizer. The set is loaded before returning so
// the predicate itself cannot fail.
func (c *StatusCache) AbsentFunc(ctx context.Context) (func(string) bool, error) {
	absent, err := c.absentSet(ctx)
	if err != nil {
		return nil, err
	}
	return func(name string) bool {
		_, ok := absent[name]
		return ok
	}, nil
}

// Invalidate drops the cached set; the next lookup reloads it.
func (c *StatusCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.absent = nil
	c.loaded = false
}

func (c *StatusCache) absentSet(ctx context.Context) (map[string]struct{}, error) {
	c.mu.RLock()
	if c.loaded {
		absent := c.absent
		c.mu.RUnlock()
		return absent, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.absent, nil
	}

	statuses, err := c.store.ParticipationStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load participation statuses: %w", err)
	}

	absent := make(map[string]struct{})
	for _, status := range statuses {
		if status.IsAbsent {
			absent[status.Name] = struct{}{}
		}
	}

	c.absent = absent
	c.loaded = true

	log.Debug().
		Int("statuses", len(statuses)).
		Int("absent", len(absent)).
		Msg("Loaded participation status cache")

	return absent, nil
}
