package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/pool-league/internal/domain/lineup"
)

type LineupRepository struct {
	mu      sync.RWMutex
	items   map[string]lineup.Lineup
	byMatch map[string]string
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{
		items:   make(map[string]lineup.Lineup),
		byMatch: make(map[string]string),
	}
}

func (r *LineupRepository) GetByID(_ context.Context, lineupID string) (lineup.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[lineupID]
	if !ok {
		return lineup.Lineup{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *LineupRepository) GetByMatchAndTeam(_ context.Context, matchID, teamID string) (lineup.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byMatch[lineupKey(matchID, teamID)]
	if !ok {
		return lineup.Lineup{}, false, nil
	}
	return r.items[id].Clone(), true, nil
}

func (r *LineupRepository) Upsert(_ context.Context, item lineup.Lineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item.Clone()
	r.byMatch[lineupKey(item.MatchID, item.TeamID)] = item.ID
	return nil
}

func lineupKey(matchID, teamID string) string {
	return matchID + "::" + teamID
}
