package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pool-league/internal/domain/lineup"
	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/domain/season"
	"github.com/riskibarqy/pool-league/internal/domain/team"
	"github.com/riskibarqy/pool-league/internal/platform/id"
	"github.com/riskibarqy/pool-league/internal/platform/logging"
)

type SubmitScoreInput struct {
	MatchID   string
	TeamID    string
	HomeGames int
	AwayGames int
}

type ScoreResult struct {
	Match      match.Match
	Thresholds MatchThresholds
}

type thresholdResolver interface {
	Resolve(ctx context.Context, item season.Season, m match.Match, home, away lineup.Lineup) (MatchThresholds, error)
}

type ScoringService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
	lineupRepo lineup.Repository
	thresholds thresholdResolver
	guard      *MatchGuard
	events     eventSink
	recorder   Recorder
	now        func() time.Time
}

func NewScoringService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	lineupRepo lineup.Repository,
	thresholds thresholdResolver,
	publisher match.EventPublisher,
	guard *MatchGuard,
	ids id.Generator,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	if guard == nil {
		guard = NewMatchGuard()
	}
	return &ScoringService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		lineupRepo: lineupRepo,
		thresholds: thresholds,
		guard:      guard,
		events:     eventSink{publisher: publisher, ids: ids, logger: logger, now: time.Now},
		recorder:   nopRecorder{},
		now:        time.Now,
	}
}

func (s *ScoringService) SetRecorder(r Recorder) {
	s.recorder = recorderOrNop(r)
}

// SubmitScore records the running game count of a match once both lineups
// are locked. Resubmitting replaces the previous count until the match
// completes.
func (s *ScoringService) SubmitScore(ctx context.Context, actor Actor, input SubmitScoreInput) (ScoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.SubmitScore", matchAttr(input.MatchID), teamAttr(input.TeamID))
	defer span.End()

	release := s.guard.Lock(strings.TrimSpace(input.MatchID))
	defer release()

	m, err := loadMatch(ctx, s.matchRepo, input.MatchID)
	if err != nil {
		return ScoreResult{}, err
	}
	t, err := loadTeam(ctx, s.teamRepo, input.TeamID)
	if err != nil {
		return ScoreResult{}, err
	}
	if _, ok := m.SideOf(t.ID); !ok {
		return ScoreResult{}, fmt.Errorf("%w: team=%s does not play match=%s", ErrForbidden, t.ID, m.ID)
	}
	if !actor.canActFor(t.CaptainID) {
		return ScoreResult{}, fmt.Errorf("%w: only a captain of match=%s may submit its score", ErrForbidden, m.ID)
	}
	if m.Status == match.StatusCompleted {
		return ScoreResult{}, fmt.Errorf("%w: %v", ErrConflict, match.ErrAlreadyComplete)
	}

	item, err := loadSeason(ctx, s.seasonRepo, m.SeasonID)
	if err != nil {
		return ScoreResult{}, err
	}
	home, err := s.lockedLineup(ctx, m.ID, m.HomeTeamID)
	if err != nil {
		return ScoreResult{}, err
	}
	away, err := s.lockedLineup(ctx, m.ID, m.AwayTeamID)
	if err != nil {
		return ScoreResult{}, err
	}

	thresholds, err := s.thresholds.Resolve(ctx, item, m, home, away)
	if err != nil {
		return ScoreResult{}, err
	}

	result, err := match.Decide(item.Format, input.HomeGames, input.AwayGames, thresholds.Home.Thresholds, thresholds.Away.Thresholds)
	if err != nil {
		if errors.Is(err, match.ErrScoreOutOfRange) {
			return ScoreResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return ScoreResult{}, err
	}
	if err := m.ApplyResult(input.HomeGames, input.AwayGames, result, s.now()); err != nil {
		return ScoreResult{}, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	m.HomeLineupID = home.ID
	m.AwayLineupID = away.ID

	if err := s.matchRepo.Update(ctx, m); err != nil {
		return ScoreResult{}, fmt.Errorf("update match score: %w", err)
	}

	s.recorder.ScoreSubmitted(string(m.Status))
	s.events.publish(ctx, match.ChangeEvent{
		Type:         match.EventScoreSubmitted,
		MatchID:      m.ID,
		TeamID:       t.ID,
		HomeGamesWon: m.HomeGamesWon,
		AwayGamesWon: m.AwayGamesWon,
		Status:       m.Status,
	})
	if m.Status == match.StatusCompleted {
		s.events.publish(ctx, match.ChangeEvent{
			Type:         match.EventMatchCompleted,
			MatchID:      m.ID,
			HomeGamesWon: m.HomeGamesWon,
			AwayGamesWon: m.AwayGamesWon,
			Status:       m.Status,
			WinnerTeamID: m.WinnerTeamID,
		})
	}

	return ScoreResult{Match: m, Thresholds: thresholds}, nil
}

func (s *ScoringService) lockedLineup(ctx context.Context, matchID, teamID string) (lineup.Lineup, error) {
	item, exists, err := s.lineupRepo.GetByMatchAndTeam(ctx, matchID, teamID)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get lineup: %w", err)
	}
	if !exists || !item.Locked {
		return lineup.Lineup{}, fmt.Errorf("%w: both lineups must be locked before scoring", ErrConflict)
	}
	return item, nil
}
