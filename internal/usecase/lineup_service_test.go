package usecase

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/pool-league/internal/domain/lineup"
	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/infrastructure/repository/memory"
	lineupmock "github.com/riskibarqy/pool-league/internal/mocks/domain/lineup"
	matchmock "github.com/riskibarqy/pool-league/internal/mocks/domain/match"
	"github.com/riskibarqy/pool-league/internal/platform/logging"
)

func TestLineupService_Submit_SnapshotsHandicaps(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	svc := f.lineupService()

	view, err := svc.Submit(context.Background(), captainBreakMasters, SubmitLineupInput{
		MatchID: memory.MatchIDSpringWeek1A,
		TeamID:  memory.TeamIDBreakMasters,
		Slots:   []SlotInput{{Position: 2, PlayerID: "member-02"}, {Position: 1, PlayerID: "member-01"}, {Position: 3}},
	})
	if err != nil {
		t.Fatalf("submit lineup: %v", err)
	}
	if view.Lineup == nil || view.Side != match.SideHome {
		t.Fatalf("unexpected view: %+v", view)
	}
	if got := view.Lineup.TotalHandicap(); got != 9 {
		t.Fatalf("unexpected total handicap: got=%d want=9", got)
	}
	if view.Lineup.Slots[0].Position != 1 || view.Lineup.Slots[0].Handicap != 5 {
		t.Fatalf("slots should be ordered with snapshotted handicaps: %+v", view.Lineup.Slots)
	}
	if view.State.Complete || view.State.CanLock() {
		t.Fatalf("lineup with an open slot must not be lockable")
	}
	if view.State.Opponent != lineup.OpponentAbsent {
		t.Fatalf("unexpected opponent status: %s", view.State.Opponent)
	}

	stored, _, _ := f.matches.GetByID(context.Background(), memory.MatchIDSpringWeek1A)
	if stored.HomeLineupID != view.Lineup.ID {
		t.Fatalf("match should reference the submitted lineup: %+v", stored)
	}
	if !slices.Equal(f.events.types(), []match.EventType{match.EventLineupSubmitted}) {
		t.Fatalf("unexpected events: %v", f.events.types())
	}
}

func TestLineupService_Submit_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		actor Actor
		input SubmitLineupInput
		want  error
	}{
		{
			name:  "captain missing",
			actor: captainBreakMasters,
			input: SubmitLineupInput{MatchID: memory.MatchIDSpringWeek1A, TeamID: memory.TeamIDBreakMasters, Slots: fullSlots("member-02", "member-03", "")},
			want:  ErrInvalidInput,
		},
		{
			name:  "duplicate player",
			actor: captainBreakMasters,
			input: SubmitLineupInput{MatchID: memory.MatchIDSpringWeek1A, TeamID: memory.TeamIDBreakMasters, Slots: fullSlots("member-01", "member-02", "member-02")},
			want:  ErrInvalidInput,
		},
		{
			name:  "player from another team",
			actor: captainBreakMasters,
			input: SubmitLineupInput{MatchID: memory.MatchIDSpringWeek1A, TeamID: memory.TeamIDBreakMasters, Slots: fullSlots("member-01", "member-02", "member-10")},
			want:  ErrInvalidInput,
		},
		{
			name:  "wrong slot count",
			actor: captainBreakMasters,
			input: SubmitLineupInput{MatchID: memory.MatchIDSpringWeek1A, TeamID: memory.TeamIDBreakMasters, Slots: fullSlots("member-01", "member-02")},
			want:  ErrInvalidInput,
		},
		{
			name:  "not the captain",
			actor: Actor{MemberID: "member-02"},
			input: SubmitLineupInput{MatchID: memory.MatchIDSpringWeek1A, TeamID: memory.TeamIDBreakMasters, Slots: fullSlots("member-01", "member-02", "member-03")},
			want:  ErrForbidden,
		},
		{
			name:  "team not in match",
			actor: operator,
			input: SubmitLineupInput{MatchID: memory.MatchIDSpringWeek1A, TeamID: memory.TeamIDEightBallers, Slots: fullSlots("member-07", "member-08", "member-09")},
			want:  ErrNotFound,
		},
		{
			name:  "unknown match",
			actor: operator,
			input: SubmitLineupInput{MatchID: "missing", TeamID: memory.TeamIDBreakMasters},
			want:  ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newLeagueFixture(t)
			_, err := f.lineupService().Submit(context.Background(), tc.actor, tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLineupService_LockProtocol(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	svc := f.lineupService()
	ctx := context.Background()

	if _, err := svc.Lock(ctx, captainBreakMasters, memory.MatchIDSpringWeek1A, memory.TeamIDBreakMasters); !errors.Is(err, ErrConflict) {
		t.Fatalf("lock without a lineup should conflict, got %v", err)
	}

	if _, err := svc.Submit(ctx, captainBreakMasters, SubmitLineupInput{
		MatchID: memory.MatchIDSpringWeek1A,
		TeamID:  memory.TeamIDBreakMasters,
		Slots:   fullSlots("member-01", "member-02", ""),
	}); err != nil {
		t.Fatalf("submit partial lineup: %v", err)
	}
	if _, err := svc.Lock(ctx, captainBreakMasters, memory.MatchIDSpringWeek1A, memory.TeamIDBreakMasters); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("lock with open slots should be invalid, got %v", err)
	}

	if _, err := svc.Submit(ctx, captainBreakMasters, SubmitLineupInput{
		MatchID: memory.MatchIDSpringWeek1A,
		TeamID:  memory.TeamIDBreakMasters,
		Slots:   fullSlots("member-01", "member-02", "member-03"),
	}); err != nil {
		t.Fatalf("submit full lineup: %v", err)
	}
	home, err := svc.Lock(ctx, captainBreakMasters, memory.MatchIDSpringWeek1A, memory.TeamIDBreakMasters)
	if err != nil {
		t.Fatalf("lock home lineup: %v", err)
	}
	if !home.State.Locked || home.Lineup.LockedAt == nil || !home.State.CanUnlock() {
		t.Fatalf("unexpected home state after lock: %+v", home.State)
	}
	if home.State.CanProceedToScoring() {
		t.Fatalf("scoring must wait for the opponent")
	}

	if _, err := svc.Submit(ctx, captainBreakMasters, SubmitLineupInput{
		MatchID: memory.MatchIDSpringWeek1A,
		TeamID:  memory.TeamIDBreakMasters,
		Slots:   fullSlots("member-01", "member-03", "member-02"),
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("submit on a locked lineup should conflict, got %v", err)
	}

	away, err := svc.Submit(ctx, captainRackAttack, SubmitLineupInput{
		MatchID: memory.MatchIDSpringWeek1A,
		TeamID:  memory.TeamIDRackAttack,
		Slots:   fullSlots("member-10", "member-11", "member-12"),
	})
	if err != nil {
		t.Fatalf("submit away lineup: %v", err)
	}
	if away.State.Opponent != lineup.OpponentReady {
		t.Fatalf("away should see home as ready, got %s", away.State.Opponent)
	}

	view, err := svc.View(ctx, memory.MatchIDSpringWeek1A, memory.TeamIDBreakMasters)
	if err != nil {
		t.Fatalf("view home lineup: %v", err)
	}
	if view.State.Opponent != lineup.OpponentChoosing {
		t.Fatalf("home should see away choosing, got %s", view.State.Opponent)
	}

	if _, err := svc.Lock(ctx, captainRackAttack, memory.MatchIDSpringWeek1A, memory.TeamIDRackAttack); err != nil {
		t.Fatalf("lock away lineup: %v", err)
	}
	if _, err := svc.Unlock(ctx, captainBreakMasters, memory.MatchIDSpringWeek1A, memory.TeamIDBreakMasters); !errors.Is(err, ErrConflict) {
		t.Fatalf("unlock after the opponent locked should conflict, got %v", err)
	}

	view, err = svc.View(ctx, memory.MatchIDSpringWeek1A, memory.TeamIDBreakMasters)
	if err != nil {
		t.Fatalf("view home lineup: %v", err)
	}
	if !view.State.CanProceedToScoring() {
		t.Fatalf("both sides locked should allow scoring: %+v", view.State)
	}
	if f.recorder.transitions["lock"] != 2 {
		t.Fatalf("unexpected lock transitions: %v", f.recorder.transitions)
	}
}

func TestLineupService_UnlockBeforeOpponentLocks(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	svc := f.lineupService()
	ctx := context.Background()

	if _, err := svc.Submit(ctx, operator, SubmitLineupInput{
		MatchID: memory.MatchIDSpringWeek1A,
		TeamID:  memory.TeamIDBreakMasters,
		Slots:   fullSlots("member-01", "member-02", "member-03"),
	}); err != nil {
		t.Fatalf("submit lineup: %v", err)
	}
	if _, err := svc.Unlock(ctx, operator, memory.MatchIDSpringWeek1A, memory.TeamIDBreakMasters); !errors.Is(err, ErrConflict) {
		t.Fatalf("unlock of an unlocked lineup should conflict, got %v", err)
	}
	if _, err := svc.Lock(ctx, operator, memory.MatchIDSpringWeek1A, memory.TeamIDBreakMasters); err != nil {
		t.Fatalf("lock lineup: %v", err)
	}

	view, err := svc.Unlock(ctx, operator, memory.MatchIDSpringWeek1A, memory.TeamIDBreakMasters)
	if err != nil {
		t.Fatalf("unlock lineup: %v", err)
	}
	if view.State.Locked || view.Lineup.LockedAt != nil {
		t.Fatalf("lineup should be unlocked: %+v", view.Lineup)
	}

	want := []match.EventType{match.EventLineupSubmitted, match.EventLineupLocked, match.EventLineupUnlocked}
	if !slices.Equal(f.events.types(), want) {
		t.Fatalf("unexpected events: got=%v want=%v", f.events.types(), want)
	}
}

func TestLineupService_PublishFailureDoesNotFailSubmit(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	publisher := matchmock.NewEventPublisher(t)
	publisher.
		On("Publish", mock.Anything, mock.MatchedBy(func(e match.ChangeEvent) bool {
			return e.Type == match.EventLineupSubmitted && e.MatchID == memory.MatchIDSpringWeek1A && e.ID != ""
		})).
		Return(errors.New("feed closed")).
		Once()

	svc := NewLineupService(f.seasons, f.teams, f.members, f.matches, f.lineups, publisher, f.guard, f.ids, logging.NewNop())
	if _, err := svc.Submit(context.Background(), captainBreakMasters, SubmitLineupInput{
		MatchID: memory.MatchIDSpringWeek1A,
		TeamID:  memory.TeamIDBreakMasters,
		Slots:   fullSlots("member-01", "member-02", "member-03"),
	}); err != nil {
		t.Fatalf("submit should succeed when publishing fails: %v", err)
	}
}

func TestLineupService_View_RepositoryError(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	storeErr := errors.New("connection reset")
	lineups := lineupmock.NewRepository(t)
	lineups.
		On("GetByMatchAndTeam", mock.Anything, memory.MatchIDSpringWeek1A, memory.TeamIDBreakMasters).
		Return(lineup.Lineup{}, false, storeErr).
		Once()

	svc := NewLineupService(f.seasons, f.teams, f.members, f.matches, lineups, f.events, f.guard, f.ids, logging.NewNop())
	_, err := svc.View(context.Background(), memory.MatchIDSpringWeek1A, memory.TeamIDBreakMasters)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("store failure must not read as not found: %v", err)
	}
}

func TestLineupService_Submit_UpsertError(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t)
	storeErr := errors.New("connection reset")
	lineups := lineupmock.NewRepository(t)
	lineups.
		On("GetByMatchAndTeam", mock.Anything, memory.MatchIDSpringWeek1A, mock.Anything).
		Return(lineup.Lineup{}, false, nil).
		Twice()
	lineups.
		On("Upsert", mock.Anything, mock.MatchedBy(func(l lineup.Lineup) bool {
			return l.MatchID == memory.MatchIDSpringWeek1A && l.TeamID == memory.TeamIDBreakMasters
		})).
		Return(storeErr).
		Once()

	svc := NewLineupService(f.seasons, f.teams, f.members, f.matches, lineups, f.events, f.guard, f.ids, logging.NewNop())
	_, err := svc.Submit(context.Background(), captainBreakMasters, SubmitLineupInput{
		MatchID: memory.MatchIDSpringWeek1A,
		TeamID:  memory.TeamIDBreakMasters,
		Slots:   fullSlots("member-01", "member-02", "member-03"),
	})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}

	stored, _, _ := f.matches.GetByID(context.Background(), memory.MatchIDSpringWeek1A)
	if stored.HomeLineupID != "" {
		t.Fatalf("failed upsert must not attach a lineup: %+v", stored)
	}
	if got := f.events.types(); len(got) != 0 {
		t.Fatalf("failed upsert must not publish: %v", got)
	}
}
