package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/pool-league/internal/domain/season"
)

type SeasonRepository struct {
	mu     sync.RWMutex
	items  map[string]season.Season
	orders []string
}

func NewSeasonRepository(seasons []season.Season) *SeasonRepository {
	items := make(map[string]season.Season, len(seasons))
	orders := make([]string, 0, len(seasons))

	for _, s := range seasons {
		items[s.ID] = cloneSeason(s)
		orders = append(orders, s.ID)
	}

	return &SeasonRepository{
		items:  items,
		orders: orders,
	}
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, cloneSeason(r.items[id]))
	}

	return out, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[seasonID]
	if !ok {
		return season.Season{}, false, nil
	}

	return cloneSeason(s), true, nil
}

func (r *SeasonRepository) Create(_ context.Context, s season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[s.ID]; exists {
		return fmt.Errorf("season %s already exists", s.ID)
	}
	r.items[s.ID] = cloneSeason(s)
	r.orders = append(r.orders, s.ID)
	return nil
}

func cloneSeason(s season.Season) season.Season {
	out := s
	out.Blackouts = append(out.Blackouts[:0:0], s.Blackouts...)
	out.Holidays = append(out.Holidays[:0:0], s.Holidays...)
	return out
}
