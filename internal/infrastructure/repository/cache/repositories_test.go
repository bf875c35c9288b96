package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
	"github.com/riskibarqy/pool-league/internal/domain/schedule"
	"github.com/riskibarqy/pool-league/internal/domain/season"
	handicapmock "github.com/riskibarqy/pool-league/internal/mocks/domain/handicap"
	schedulemock "github.com/riskibarqy/pool-league/internal/mocks/domain/schedule"
	seasonmock "github.com/riskibarqy/pool-league/internal/mocks/domain/season"
	basecache "github.com/riskibarqy/pool-league/internal/platform/cache"
)

func TestSeasonRepository_CachesAndInvalidatesOnCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := seasonmock.NewRepository(t)
	spring := season.Season{ID: "season-1", Name: "Spring"}
	next.On("List", mock.Anything).Return([]season.Season{spring}, nil).Twice()
	next.On("GetByID", mock.Anything, "missing").Return(season.Season{}, false, nil).Once()
	next.On("Create", mock.Anything, mock.AnythingOfType("season.Season")).Return(nil).Once()

	repo := NewSeasonRepository(next, basecache.NewStore(time.Minute))
	for range 3 {
		items, err := repo.List(ctx)
		if err != nil || len(items) != 1 {
			t.Fatalf("list: %v %v", items, err)
		}
	}
	for range 2 {
		if _, ok, err := repo.GetByID(ctx, "missing"); ok || err != nil {
			t.Fatalf("expected cached miss, ok=%v err=%v", ok, err)
		}
	}

	if err := repo.Create(ctx, season.Season{ID: "season-2"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list after create: %v", err)
	}
}

func TestTableRepository_LoadsOncePerFormat(t *testing.T) {
	t.Parallel()

	tie := 9
	table, err := handicap.NewTable(handicap.Format3v3, "v1", []handicap.Row{
		{Differential: 0, Thresholds: handicap.Thresholds{GamesToWin: 10, GamesToTie: &tie, GamesToLose: 10}},
	})
	if err != nil {
		t.Fatalf("new table: %v", err)
	}

	next := handicapmock.NewTableRepository(t)
	next.On("GetTable", mock.Anything, handicap.Format3v3).Return(table, true, nil).Once()

	repo := NewTableRepository(next, basecache.NewStore(time.Minute))
	for range 3 {
		got, ok, err := repo.GetTable(context.Background(), handicap.Format3v3)
		if err != nil || !ok || got.Version != "v1" {
			t.Fatalf("get table: %+v %v %v", got, ok, err)
		}
	}
}

func TestMatchupRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	next := schedulemock.NewMatchupRepository(t)
	next.On("GetMatchupTable", mock.Anything, 4).Return(schedule.MatchupTable{
		TeamCount: 4,
		Weeks:     [][]schedule.Pair{{{Home: 1, Away: 4}, {Home: 3, Away: 2}}},
	}, true, nil).Once()

	repo := NewMatchupRepository(next, basecache.NewStore(time.Minute))
	first, _, err := repo.GetMatchupTable(context.Background(), 4)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	first.Weeks[0][0].Home = 99

	second, ok, err := repo.GetMatchupTable(context.Background(), 4)
	if err != nil || !ok {
		t.Fatalf("second load: %v %v", ok, err)
	}
	if second.Weeks[0][0].Home != 1 {
		t.Fatalf("cached table was mutated through a returned copy")
	}
}
