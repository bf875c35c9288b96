package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/domain/season"
	"github.com/riskibarqy/pool-league/internal/domain/standing"
	"github.com/riskibarqy/pool-league/internal/domain/team"
	"github.com/riskibarqy/pool-league/internal/infrastructure/repository/memory"
	seasonmock "github.com/riskibarqy/pool-league/internal/mocks/domain/season"
	standingmock "github.com/riskibarqy/pool-league/internal/mocks/domain/standing"
	teammock "github.com/riskibarqy/pool-league/internal/mocks/domain/team"
)

func TestStandingService_List_RanksFromCompletedMatches(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	ctx := context.Background()
	completedAt := time.Date(2026, time.January, 6, 22, 0, 0, 0, time.UTC)

	results := []match.Match{
		{ID: "m-1", WeekNumber: 1, HomeTeamID: memory.TeamIDBreakMasters, AwayTeamID: memory.TeamIDRackAttack, WinnerTeamID: memory.TeamIDBreakMasters},
		{ID: "m-2", WeekNumber: 1, HomeTeamID: memory.TeamIDEightBallers, AwayTeamID: memory.TeamIDCornerPockets},
		{ID: "m-3", WeekNumber: 2, HomeTeamID: memory.TeamIDEightBallers, AwayTeamID: memory.TeamIDBreakMasters, WinnerTeamID: memory.TeamIDEightBallers},
		{ID: "m-4", WeekNumber: 2, HomeTeamID: memory.TeamIDRackAttack, AwayTeamID: memory.TeamIDCornerPockets, WinnerTeamID: memory.TeamIDCornerPockets},
	}
	for i := range results {
		results[i].SeasonID = memory.SeasonIDSpring2026
		results[i].Status = match.StatusCompleted
		results[i].CompletedAt = &completedAt
	}
	if err := f.matches.ReplaceScheduled(ctx, memory.SeasonIDSpring2026, results); err != nil {
		t.Fatalf("seed results: %v", err)
	}

	svc := NewStandingService(f.seasons, f.teams, f.records, 2)
	rows, err := svc.List(ctx, memory.SeasonIDSpring2026)
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	// Eight Ballers and Corner Pockets are 1-0-1; Break Masters 1-1-0.
	want := []struct {
		name string
		rank int
	}{
		{"Corner Pockets", 1},
		{"Eight Ballers", 1},
		{"Break Masters", 3},
		{"Rack Attack", 4},
	}
	for i, w := range want {
		if rows[i].TeamName != w.name || rows[i].Rank != w.rank {
			t.Fatalf("row %d: got %s rank %d, want %s rank %d", i, rows[i].TeamName, rows[i].Rank, w.name, w.rank)
		}
	}
	if rows[3].MatchLosses != 2 {
		t.Fatalf("unexpected Rack Attack record: %+v", rows[3].TeamRecord)
	}
}

func TestStandingService_List_PropagatesRecordErrorsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasons := seasonmock.NewRepository(t)
	teams := teammock.NewRepository(t)
	records := standingmock.NewRecordRepository(t)

	seasons.
		On("GetByID", mock.Anything, "season-1").
		Return(season.Season{ID: "season-1"}, true, nil).
		Once()
	teams.
		On("ListBySeason", mock.Anything, "season-1").
		Return([]team.Team{{ID: "t-1", Name: "Solids", SchedulePosition: 1}, {ID: "t-2", Name: "Stripes", SchedulePosition: 2}}, nil).
		Once()
	records.
		On("GetTeamRecord", mock.Anything, "season-1", "t-1").
		Return(standing.TeamRecord{MatchWins: 1}, nil).
		Once()
	records.
		On("GetTeamRecord", mock.Anything, "season-1", "t-2").
		Return(standing.TeamRecord{}, errors.New("timeout")).
		Once()

	svc := NewStandingService(seasons, teams, records, 4)
	if _, err := svc.List(ctx, "season-1"); err == nil {
		t.Fatalf("expected record error to propagate")
	}
}

func TestStandingService_List_EmptySeason(t *testing.T) {
	t.Parallel()

	seasons := seasonmock.NewRepository(t)
	teams := teammock.NewRepository(t)
	seasons.On("GetByID", mock.Anything, "season-1").Return(season.Season{ID: "season-1"}, true, nil).Once()
	teams.On("ListBySeason", mock.Anything, "season-1").Return([]team.Team(nil), nil).Once()

	rows, err := NewStandingService(seasons, teams, standingmock.NewRecordRepository(t), 0).List(context.Background(), "season-1")
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
