package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/pool-league/internal/domain/lineup"
	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/domain/member"
	"github.com/riskibarqy/pool-league/internal/domain/season"
	"github.com/riskibarqy/pool-league/internal/domain/team"
	"github.com/riskibarqy/pool-league/internal/platform/id"
	"github.com/riskibarqy/pool-league/internal/platform/logging"
)

type SlotInput struct {
	Position int
	PlayerID string
}

type SubmitLineupInput struct {
	MatchID string
	TeamID  string
	Slots   []SlotInput
}

// LineupView is one team's side of the lock protocol. Lineup is nil until
// the team submits one.
type LineupView struct {
	MatchID string
	TeamID  string
	Side    match.Side
	Lineup  *lineup.Lineup
	State   lineup.LockState
}

type LineupService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	memberRepo member.Repository
	matchRepo  match.Repository
	lineupRepo lineup.Repository
	guard      *MatchGuard
	ids        id.Generator
	events     eventSink
	recorder   Recorder
	now        func() time.Time
}

func NewLineupService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	memberRepo member.Repository,
	matchRepo match.Repository,
	lineupRepo lineup.Repository,
	publisher match.EventPublisher,
	guard *MatchGuard,
	ids id.Generator,
	logger *logging.Logger,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}
	if guard == nil {
		guard = NewMatchGuard()
	}
	return &LineupService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		matchRepo:  matchRepo,
		lineupRepo: lineupRepo,
		guard:      guard,
		ids:        ids,
		events:     eventSink{publisher: publisher, ids: ids, logger: logger, now: time.Now},
		recorder:   nopRecorder{},
		now:        time.Now,
	}
}

func (s *LineupService) SetRecorder(r Recorder) {
	s.recorder = recorderOrNop(r)
}

// lineupScope is everything one lineup operation reads.
type lineupScope struct {
	match    match.Match
	season   season.Season
	team     team.Team
	side     match.Side
	own      *lineup.Lineup
	opponent *lineup.Lineup
}

func (sc lineupScope) view() LineupView {
	return LineupView{
		MatchID: sc.match.ID,
		TeamID:  sc.team.ID,
		Side:    sc.side,
		Lineup:  sc.own,
		State:   lineup.StateOf(sc.season.Format, sc.own, sc.opponent),
	}
}

func (s *LineupService) View(ctx context.Context, matchID, teamID string) (LineupView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.View", matchAttr(matchID), teamAttr(teamID))
	defer span.End()

	sc, err := s.load(ctx, matchID, teamID)
	if err != nil {
		return LineupView{}, err
	}
	return sc.view(), nil
}

// Submit stores the team's lineup with handicaps snapshotted from members.
// A locked lineup cannot be replaced.
func (s *LineupService) Submit(ctx context.Context, actor Actor, input SubmitLineupInput) (LineupView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Submit", matchAttr(input.MatchID), teamAttr(input.TeamID))
	defer span.End()

	release := s.guard.Lock(strings.TrimSpace(input.MatchID))
	defer release()

	sc, err := s.loadForChange(ctx, actor, input.MatchID, input.TeamID)
	if err != nil {
		return LineupView{}, err
	}
	if sc.own != nil && sc.own.Locked {
		return LineupView{}, fmt.Errorf("%w: %v", ErrConflict, lineup.ErrLocked)
	}

	slots, err := s.buildSlots(ctx, sc, input.Slots)
	if err != nil {
		return LineupView{}, err
	}

	now := s.now().UTC()
	next := lineup.Lineup{MatchID: sc.match.ID, TeamID: sc.team.ID, Slots: slots, UpdatedAt: now}
	if sc.own != nil {
		next.ID = sc.own.ID
	} else {
		lineupID, err := s.ids.NewID()
		if err != nil {
			return LineupView{}, fmt.Errorf("generate lineup id: %w", err)
		}
		next.ID = lineupID
	}
	if err := next.Validate(sc.season.Format, sc.team.CaptainID); err != nil {
		return LineupView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.lineupRepo.Upsert(ctx, next); err != nil {
		return LineupView{}, fmt.Errorf("upsert lineup: %w", err)
	}
	if sc.match.LineupID(sc.side) != next.ID {
		sc.match.SetLineupID(sc.side, next.ID)
		if err := s.matchRepo.Update(ctx, sc.match); err != nil {
			return LineupView{}, fmt.Errorf("attach lineup to match: %w", err)
		}
	}
	sc.own = &next

	s.recorder.LineupTransition("submit")
	s.events.publish(ctx, match.ChangeEvent{
		Type:    match.EventLineupSubmitted,
		MatchID: sc.match.ID,
		TeamID:  sc.team.ID,
		Side:    sc.side,
	})
	return sc.view(), nil
}

func (s *LineupService) Lock(ctx context.Context, actor Actor, matchID, teamID string) (LineupView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Lock", matchAttr(matchID), teamAttr(teamID))
	defer span.End()

	return s.transition(ctx, actor, matchID, teamID, true)
}

func (s *LineupService) Unlock(ctx context.Context, actor Actor, matchID, teamID string) (LineupView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Unlock", matchAttr(matchID), teamAttr(teamID))
	defer span.End()

	return s.transition(ctx, actor, matchID, teamID, false)
}

func (s *LineupService) transition(ctx context.Context, actor Actor, matchID, teamID string, lock bool) (LineupView, error) {
	release := s.guard.Lock(strings.TrimSpace(matchID))
	defer release()

	sc, err := s.loadForChange(ctx, actor, matchID, teamID)
	if err != nil {
		return LineupView{}, err
	}
	if sc.own == nil {
		return LineupView{}, fmt.Errorf("%w: team=%s has not submitted a lineup", ErrConflict, sc.team.ID)
	}

	next := sc.own.Clone()
	action := "unlock"
	eventType := match.EventLineupUnlocked
	if lock {
		action = "lock"
		eventType = match.EventLineupLocked
		err = lineup.Lock(sc.season.Format, &next, sc.opponent, s.now())
	} else {
		err = lineup.Unlock(sc.season.Format, &next, sc.opponent, s.now())
	}
	if err != nil {
		return LineupView{}, mapLockError(err)
	}

	if err := s.lineupRepo.Upsert(ctx, next); err != nil {
		return LineupView{}, fmt.Errorf("upsert lineup: %w", err)
	}
	sc.own = &next

	s.recorder.LineupTransition(action)
	s.events.publish(ctx, match.ChangeEvent{
		Type:    eventType,
		MatchID: sc.match.ID,
		TeamID:  sc.team.ID,
		Side:    sc.side,
		Locked:  next.Locked,
	})
	return sc.view(), nil
}

func (s *LineupService) buildSlots(ctx context.Context, sc lineupScope, input []SlotInput) ([]lineup.Slot, error) {
	playerIDs := make([]string, 0, len(input))
	for _, in := range input {
		playerID := strings.TrimSpace(in.PlayerID)
		if playerID == "" {
			continue
		}
		if !sc.team.HasPlayer(playerID) {
			return nil, fmt.Errorf("%w: player=%s is not on team=%s", ErrInvalidInput, playerID, sc.team.ID)
		}
		playerIDs = append(playerIDs, playerID)
	}

	handicaps := make(map[string]int, len(playerIDs))
	if len(playerIDs) > 0 {
		members, err := s.memberRepo.ListByIDs(ctx, playerIDs)
		if err != nil {
			return nil, fmt.Errorf("list members by ids: %w", err)
		}
		for _, m := range members {
			handicaps[m.ID] = m.Handicap
		}
	}

	slots := make([]lineup.Slot, 0, len(input))
	for _, in := range input {
		playerID := strings.TrimSpace(in.PlayerID)
		slot := lineup.Slot{Position: in.Position, PlayerID: playerID}
		if playerID != "" {
			h, ok := handicaps[playerID]
			if !ok {
				return nil, fmt.Errorf("%w: member=%s", ErrInvalidInput, playerID)
			}
			slot.Handicap = h
		}
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Position < slots[j].Position })
	return slots, nil
}

func (s *LineupService) loadForChange(ctx context.Context, actor Actor, matchID, teamID string) (lineupScope, error) {
	sc, err := s.load(ctx, matchID, teamID)
	if err != nil {
		return lineupScope{}, err
	}
	if !actor.canActFor(sc.team.CaptainID) {
		return lineupScope{}, fmt.Errorf("%w: only the captain of team=%s may change its lineup", ErrForbidden, sc.team.ID)
	}
	if sc.match.Status == match.StatusCompleted {
		return lineupScope{}, fmt.Errorf("%w: match=%s is completed", ErrConflict, sc.match.ID)
	}
	return sc, nil
}

func (s *LineupService) load(ctx context.Context, matchID, teamID string) (lineupScope, error) {
	m, err := loadMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return lineupScope{}, err
	}
	side, ok := m.SideOf(strings.TrimSpace(teamID))
	if !ok {
		return lineupScope{}, fmt.Errorf("%w: team=%s does not play match=%s", ErrNotFound, teamID, m.ID)
	}
	t, err := loadTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return lineupScope{}, err
	}
	item, err := loadSeason(ctx, s.seasonRepo, m.SeasonID)
	if err != nil {
		return lineupScope{}, err
	}
	opponentID, _ := m.OpponentOf(t.ID)

	sc := lineupScope{match: m, season: item, team: t, side: side}
	if sc.own, err = s.findLineup(ctx, m.ID, t.ID); err != nil {
		return lineupScope{}, err
	}
	if sc.opponent, err = s.findLineup(ctx, m.ID, opponentID); err != nil {
		return lineupScope{}, err
	}
	return sc, nil
}

func (s *LineupService) findLineup(ctx context.Context, matchID, teamID string) (*lineup.Lineup, error) {
	item, exists, err := s.lineupRepo.GetByMatchAndTeam(ctx, matchID, teamID)
	if err != nil {
		return nil, fmt.Errorf("get lineup: %w", err)
	}
	if !exists {
		return nil, nil
	}
	return &item, nil
}

func mapLockError(err error) error {
	switch {
	case errors.Is(err, lineup.ErrIncomplete):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, lineup.ErrLocked),
		errors.Is(err, lineup.ErrNotLocked),
		errors.Is(err, lineup.ErrOpponentLocked):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return err
	}
}
