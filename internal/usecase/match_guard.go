package usecase

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/platform/id"
	"github.com/riskibarqy/pool-league/internal/platform/logging"
)

// MatchGuard serializes read-modify-write sequences on one match within the
// process. Lineup and scoring changes share one guard.
type MatchGuard struct {
	mu    sync.Mutex
	locks map[string]*guardEntry
}

type guardEntry struct {
	mu   sync.Mutex
	refs int
}

func NewMatchGuard() *MatchGuard {
	return &MatchGuard{locks: make(map[string]*guardEntry)}
}

// Lock blocks until the match is free and returns its release func.
func (g *MatchGuard) Lock(matchID string) func() {
	g.mu.Lock()
	e, ok := g.locks[matchID]
	if !ok {
		e = &guardEntry{}
		g.locks[matchID] = e
	}
	e.refs++
	g.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		g.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(g.locks, matchID)
		}
		g.mu.Unlock()
	}
}

// LockAll takes the guards of every key in sorted order and returns one
// release func. Holders of a single key never wait on a second one, so the
// fixed order is enough to rule out deadlocks.
func (g *MatchGuard) LockAll(keys ...string) func() {
	sorted := slices.Compact(slices.Sorted(slices.Values(keys)))
	releases := make([]func(), 0, len(sorted))
	for _, key := range sorted {
		releases = append(releases, g.Lock(key))
	}
	return func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
}

// eventSink stamps and publishes match change events. Publish failures are
// logged and never fail the change that produced them.
type eventSink struct {
	publisher match.EventPublisher
	ids       id.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func (s eventSink) publish(ctx context.Context, event match.ChangeEvent) {
	if s.publisher == nil {
		return
	}
	if event.ID == "" && s.ids != nil {
		if eventID, err := s.ids.NewID(); err == nil {
			event.ID = eventID
		}
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish match event failed",
			"match_id", event.MatchID,
			"event_type", string(event.Type),
			"error", err,
		)
	}
}
