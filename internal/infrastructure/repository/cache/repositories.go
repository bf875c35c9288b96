package cache

import (
	"context"
	"slices"
	"strconv"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
	"github.com/riskibarqy/pool-league/internal/domain/schedule"
	"github.com/riskibarqy/pool-league/internal/domain/season"
	basecache "github.com/riskibarqy/pool-league/internal/platform/cache"
)

const listKey = "all"

// SeasonRepository caches season reads. Seasons are created rarely and never
// edited in place, so Create is the only invalidation point.
type SeasonRepository struct {
	next season.Repository
	list basecache.Namespace[[]season.Season]
	byID basecache.Namespace[basecache.Lookup[season.Season]]
}

func NewSeasonRepository(next season.Repository, store *basecache.Store) *SeasonRepository {
	return &SeasonRepository{
		next: next,
		list: basecache.NewNamespace[[]season.Season](store, "seasons"),
		byID: basecache.NewNamespace[basecache.Lookup[season.Season]](store, "season"),
	}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	items, err := r.list.Load(ctx, listKey, r.next.List)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	found, err := r.byID.Load(ctx, seasonID, func(ctx context.Context) (basecache.Lookup[season.Season], error) {
		item, exists, err := r.next.GetByID(ctx, seasonID)
		return basecache.Lookup[season.Season]{Value: item, Found: exists}, err
	})
	if err != nil {
		return season.Season{}, false, err
	}
	return found.Value, found.Found, nil
}

func (r *SeasonRepository) Create(ctx context.Context, s season.Season) error {
	if err := r.next.Create(ctx, s); err != nil {
		return err
	}
	r.list.Invalidate()
	r.byID.Forget(s.ID)
	return nil
}

// TableRepository caches threshold tables per format. Tables are versioned
// data and only change on redeploy or migration.
type TableRepository struct {
	next   handicap.TableRepository
	tables basecache.Namespace[basecache.Lookup[handicap.Table]]
}

func NewTableRepository(next handicap.TableRepository, store *basecache.Store) *TableRepository {
	return &TableRepository{
		next:   next,
		tables: basecache.NewNamespace[basecache.Lookup[handicap.Table]](store, "thresholds"),
	}
}

func (r *TableRepository) GetTable(ctx context.Context, format handicap.Format) (handicap.Table, bool, error) {
	found, err := r.tables.Load(ctx, string(format), func(ctx context.Context) (basecache.Lookup[handicap.Table], error) {
		table, exists, err := r.next.GetTable(ctx, format)
		return basecache.Lookup[handicap.Table]{Value: table, Found: exists}, err
	})
	if err != nil {
		return handicap.Table{}, false, err
	}
	return found.Value, found.Found, nil
}

type MatchupRepository struct {
	next     schedule.MatchupRepository
	matchups basecache.Namespace[basecache.Lookup[schedule.MatchupTable]]
}

func NewMatchupRepository(next schedule.MatchupRepository, store *basecache.Store) *MatchupRepository {
	return &MatchupRepository{
		next:     next,
		matchups: basecache.NewNamespace[basecache.Lookup[schedule.MatchupTable]](store, "matchups"),
	}
}

func (r *MatchupRepository) GetMatchupTable(ctx context.Context, teamCount int) (schedule.MatchupTable, bool, error) {
	found, err := r.matchups.Load(ctx, strconv.Itoa(teamCount), func(ctx context.Context) (basecache.Lookup[schedule.MatchupTable], error) {
		table, exists, err := r.next.GetMatchupTable(ctx, teamCount)
		return basecache.Lookup[schedule.MatchupTable]{Value: table, Found: exists}, err
	})
	if err != nil {
		return schedule.MatchupTable{}, false, err
	}

	// Weeks rows are shared with the cache entry.
	out := found.Value
	out.Weeks = make([][]schedule.Pair, len(found.Value.Weeks))
	for i, row := range found.Value.Weeks {
		out.Weeks[i] = slices.Clone(row)
	}
	return out, found.Found, nil
}
