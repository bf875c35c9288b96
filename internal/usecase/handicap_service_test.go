package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
	"github.com/riskibarqy/pool-league/internal/domain/standing"
	"github.com/riskibarqy/pool-league/internal/infrastructure/repository/memory"
	standingmock "github.com/riskibarqy/pool-league/internal/mocks/domain/standing"
	"github.com/riskibarqy/pool-league/internal/platform/logging"
)

func TestHandicapService_TeamBonus_UsingMockery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		homeWins  int
		awayWins  int
		wantBonus int
	}{
		{name: "home ahead", homeWins: 8, awayWins: 3, wantBonus: 2},
		{name: "home behind rounds down", homeWins: 3, awayWins: 7, wantBonus: -2},
		{name: "odd deficit rounds down", homeWins: 3, awayWins: 6, wantBonus: -2},
		{name: "no matches", homeWins: 0, awayWins: 0, wantBonus: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			records := standingmock.NewRecordRepository(t)
			records.
				On("GetTeamRecord", mock.Anything, "season-1", "home").
				Return(standing.TeamRecord{SeasonID: "season-1", TeamID: "home", MatchWins: tc.homeWins}, nil).
				Once()
			records.
				On("GetTeamRecord", mock.Anything, "season-1", "away").
				Return(standing.TeamRecord{SeasonID: "season-1", TeamID: "away", MatchWins: tc.awayWins}, nil).
				Once()

			svc := NewHandicapService(nil, nil, nil, records, nil, logging.NewNop())
			got, err := svc.TeamBonus(ctx, "home", "away", "season-1", handicap.Format3v3)
			if err != nil {
				t.Fatalf("team bonus: %v", err)
			}
			if got.Degraded || got.Value != tc.wantBonus {
				t.Fatalf("unexpected outcome: %+v want=%d", got, tc.wantBonus)
			}
		})
	}
}

func TestHandicapService_TeamBonus_FiveVsFiveSkipsRecords(t *testing.T) {
	t.Parallel()

	records := standingmock.NewRecordRepository(t)
	svc := NewHandicapService(nil, nil, nil, records, nil, logging.NewNop())

	got, err := svc.TeamBonus(context.Background(), "home", "away", "season-1", handicap.Format5v5)
	if err != nil {
		t.Fatalf("team bonus: %v", err)
	}
	if got.Value != 0 || got.Degraded {
		t.Fatalf("5v5 bonus must be a healthy zero, got %+v", got)
	}
	records.AssertNotCalled(t, "GetTeamRecord", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandicapService_TeamBonus_FailsOpen(t *testing.T) {
	t.Parallel()

	records := standingmock.NewRecordRepository(t)
	records.
		On("GetTeamRecord", mock.Anything, "season-1", "home").
		Return(standing.TeamRecord{}, errors.New("connection reset")).
		Once()
	records.
		On("GetTeamRecord", mock.Anything, "season-1", "away").
		Return(standing.TeamRecord{MatchWins: 4}, nil).
		Maybe()

	recorder := newCountingRecorder()
	svc := NewHandicapService(nil, nil, nil, records, nil, logging.NewNop())
	svc.SetRecorder(recorder)

	got, err := svc.TeamBonus(context.Background(), "home", "away", "season-1", handicap.Format3v3)
	if err != nil {
		t.Fatalf("fail-open bonus must not return an error: %v", err)
	}
	if !got.Degraded || got.Value != 0 || got.Err == nil {
		t.Fatalf("expected degraded neutral outcome, got %+v", got)
	}
	if recorder.degraded != 1 {
		t.Fatalf("expected one degraded counter, got %d", recorder.degraded)
	}
}

func TestHandicapService_TeamBonus_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := NewHandicapService(nil, nil, nil, standingmock.NewRecordRepository(t), nil, logging.NewNop())
	if _, err := svc.TeamBonus(context.Background(), "", "away", "season-1", handicap.Format3v3); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.TeamBonus(context.Background(), "home", "away", "season-1", handicap.Format("9ball")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown format, got %v", err)
	}
}

func TestHandicapService_MatchThresholds(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	svc := f.handicapService()
	ctx := context.Background()

	if _, err := svc.MatchThresholds(ctx, memory.MatchIDSpringWeek1A); !errors.Is(err, ErrConflict) {
		t.Fatalf("thresholds without lineups should conflict, got %v", err)
	}

	f.lockBothSides(t)
	got, err := svc.MatchThresholds(ctx, memory.MatchIDSpringWeek1A)
	if err != nil {
		t.Fatalf("match thresholds: %v", err)
	}

	if got.Home.Total != 12 || got.Away.Total != 8 || got.Bonus != 0 || got.BonusDegraded {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if got.Home.Differential != 4 || got.Away.Differential != -4 {
		t.Fatalf("differentials must be negations: home=%d away=%d", got.Home.Differential, got.Away.Differential)
	}
	if got.Home.Thresholds.GamesToWin != got.Away.Thresholds.GamesToLose {
		t.Fatalf("home win count must equal away lose count: %+v", got)
	}
	if got.Home.Thresholds.GamesToTie == nil || *got.Home.Thresholds.GamesToTie != 11 {
		t.Fatalf("3v3 thresholds must carry a tie count: %+v", got.Home.Thresholds)
	}
	if got.TableVersion == "" {
		t.Fatalf("table version should be reported")
	}
}

func TestHandicapService_MatchThresholds_UnknownMatch(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	if _, err := f.handicapService().MatchThresholds(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
