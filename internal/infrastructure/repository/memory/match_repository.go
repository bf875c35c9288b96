package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/pool-league/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		items[m.ID] = cloneMatch(m)
	}
	return &MatchRepository{items: items}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(m), true, nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonID string, week int) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listLocked(seasonID, week), nil
}

func (r *MatchRepository) listLocked(seasonID string, week int) []match.Match {
	out := make([]match.Match, 0)
	for _, m := range r.items {
		if m.SeasonID != seasonID {
			continue
		}
		if week > 0 && m.WeekNumber != week {
			continue
		}
		out = append(out, cloneMatch(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WeekNumber != out[j].WeekNumber {
			return out[i].WeekNumber < out[j].WeekNumber
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *MatchRepository) ReplaceScheduled(_ context.Context, seasonID string, matches []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, m := range r.items {
		if m.SeasonID == seasonID && m.Replaceable() {
			delete(r.items, id)
		}
	}
	for _, m := range matches {
		if m.SeasonID != seasonID {
			return fmt.Errorf("match %s belongs to season %s, not %s", m.ID, m.SeasonID, seasonID)
		}
		r.items[m.ID] = cloneMatch(m)
	}
	return nil
}

func (r *MatchRepository) Update(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[m.ID]; !ok {
		return fmt.Errorf("match %s not found", m.ID)
	}
	r.items[m.ID] = cloneMatch(m)
	return nil
}

func cloneMatch(m match.Match) match.Match {
	out := m
	if m.CompletedAt != nil {
		at := *m.CompletedAt
		out.CompletedAt = &at
	}
	return out
}
