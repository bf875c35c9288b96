package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pool-league/internal/infrastructure/staticdata"
	"github.com/riskibarqy/pool-league/internal/platform/logging"
)

type sequenceIDs struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func (s *sequenceIDs) NewID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%s-%03d", s.prefix, s.next), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []match.ChangeEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event match.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []match.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]match.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type countingRecorder struct {
	mu          sync.Mutex
	transitions map[string]int
	scores      map[string]int
	degraded    int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{transitions: map[string]int{}, scores: map[string]int{}}
}

func (r *countingRecorder) LineupTransition(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions[action]++
}

func (r *countingRecorder) ScoreSubmitted(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores[status]++
}

func (r *countingRecorder) BonusDegraded() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.degraded++
}

// leagueFixture wires the memory repositories around the seeded spring season.
type leagueFixture struct {
	seasons  *memory.SeasonRepository
	teams    *memory.TeamRepository
	members  *memory.MemberRepository
	matches  *memory.MatchRepository
	lineups  *memory.LineupRepository
	records  *memory.RecordRepository
	tables   *staticdata.Thresholds
	matchups *staticdata.Matchups
	events   *recordingPublisher
	recorder *countingRecorder
	ids      *sequenceIDs
	guard    *MatchGuard
	now      time.Time
}

func newLeagueFixture(t *testing.T) *leagueFixture {
	t.Helper()

	tables, err := staticdata.LoadThresholds()
	if err != nil {
		t.Fatalf("load thresholds: %v", err)
	}
	matchups, err := staticdata.LoadMatchups()
	if err != nil {
		t.Fatalf("load matchups: %v", err)
	}

	matches := memory.NewMatchRepository(memory.SeedMatches())
	return &leagueFixture{
		seasons:  memory.NewSeasonRepository(memory.SeedSeasons()),
		teams:    memory.NewTeamRepository(memory.SeedTeams()),
		members:  memory.NewMemberRepository(memory.SeedMembers()),
		matches:  matches,
		lineups:  memory.NewLineupRepository(),
		records:  memory.NewRecordRepository(matches),
		tables:   tables,
		matchups: matchups,
		events:   &recordingPublisher{},
		recorder: newCountingRecorder(),
		ids:      &sequenceIDs{prefix: "id"},
		guard:    NewMatchGuard(),
		now:      time.Date(2026, time.January, 6, 19, 30, 0, 0, time.UTC),
	}
}

func (f *leagueFixture) handicapService() *HandicapService {
	svc := NewHandicapService(f.seasons, f.matches, f.lineups, f.records, f.tables, logging.NewNop())
	svc.SetRecorder(f.recorder)
	return svc
}

func (f *leagueFixture) lineupService() *LineupService {
	svc := NewLineupService(f.seasons, f.teams, f.members, f.matches, f.lineups, f.events, f.guard, f.ids, logging.NewNop())
	svc.SetRecorder(f.recorder)
	svc.now = func() time.Time { return f.now }
	return svc
}

func (f *leagueFixture) scoringService() *ScoringService {
	svc := NewScoringService(f.seasons, f.teams, f.matches, f.lineups, f.handicapService(), f.events, f.guard, f.ids, logging.NewNop())
	svc.SetRecorder(f.recorder)
	svc.now = func() time.Time { return f.now }
	return svc
}

func (f *leagueFixture) scheduleService() *ScheduleService {
	svc := NewScheduleService(f.seasons, f.teams, f.matches, f.matchups, f.ids, f.guard)
	svc.now = func() time.Time { return f.now }
	return svc
}

var (
	captainBreakMasters = Actor{MemberID: "member-01"}
	captainRackAttack   = Actor{MemberID: "member-10"}
	operator            = Actor{Operator: true}
)

func fullSlots(playerIDs ...string) []SlotInput {
	out := make([]SlotInput, 0, len(playerIDs))
	for i, id := range playerIDs {
		out = append(out, SlotInput{Position: i + 1, PlayerID: id})
	}
	return out
}

// lockBothSides submits and locks full lineups for the seeded week one match.
func (f *leagueFixture) lockBothSides(t *testing.T) {
	t.Helper()
	svc := f.lineupService()
	ctx := context.Background()

	if _, err := svc.Submit(ctx, captainBreakMasters, SubmitLineupInput{
		MatchID: memory.MatchIDSpringWeek1A,
		TeamID:  memory.TeamIDBreakMasters,
		Slots:   fullSlots("member-01", "member-02", "member-03"),
	}); err != nil {
		t.Fatalf("submit home lineup: %v", err)
	}
	if _, err := svc.Submit(ctx, captainRackAttack, SubmitLineupInput{
		MatchID: memory.MatchIDSpringWeek1A,
		TeamID:  memory.TeamIDRackAttack,
		Slots:   fullSlots("member-10", "member-11", "member-12"),
	}); err != nil {
		t.Fatalf("submit away lineup: %v", err)
	}
	if _, err := svc.Lock(ctx, captainBreakMasters, memory.MatchIDSpringWeek1A, memory.TeamIDBreakMasters); err != nil {
		t.Fatalf("lock home lineup: %v", err)
	}
	if _, err := svc.Lock(ctx, captainRackAttack, memory.MatchIDSpringWeek1A, memory.TeamIDRackAttack); err != nil {
		t.Fatalf("lock away lineup: %v", err)
	}
}
