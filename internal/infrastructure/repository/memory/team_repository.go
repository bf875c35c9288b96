package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/pool-league/internal/domain/team"
)

type TeamRepository struct {
	mu            sync.RWMutex
	teamsBySeason map[string][]team.Team
	seasonByTeam  map[string]string
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{
		teamsBySeason: make(map[string][]team.Team),
		seasonByTeam:  make(map[string]string),
	}
	for _, item := range teams {
		r.teamsBySeason[item.SeasonID] = append(r.teamsBySeason[item.SeasonID], cloneTeam(item))
		r.seasonByTeam[item.ID] = item.SeasonID
	}

	return r
}

func (r *TeamRepository) ListBySeason(_ context.Context, seasonID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := r.teamsBySeason[seasonID]
	out := make([]team.Team, 0, len(teams))
	for _, item := range teams {
		out = append(out, cloneTeam(item))
	}

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seasonID, ok := r.seasonByTeam[teamID]
	if !ok {
		return team.Team{}, false, nil
	}
	for _, item := range r.teamsBySeason[seasonID] {
		if item.ID == teamID {
			return cloneTeam(item), true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.seasonByTeam[item.ID]; exists {
		return fmt.Errorf("team %s already exists", item.ID)
	}
	r.teamsBySeason[item.SeasonID] = append(r.teamsBySeason[item.SeasonID], cloneTeam(item))
	r.seasonByTeam[item.ID] = item.SeasonID
	return nil
}

func cloneTeam(item team.Team) team.Team {
	out := item
	out.PlayerIDs = append([]string(nil), item.PlayerIDs...)
	return out
}
