package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
	"github.com/riskibarqy/pool-league/internal/domain/lineup"
	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/domain/season"
	"github.com/riskibarqy/pool-league/internal/domain/standing"
	"github.com/riskibarqy/pool-league/internal/platform/logging"
	"github.com/riskibarqy/pool-league/internal/platform/resilience"
)

// SideThresholds is one side's handicap position in a match. Adjusted is
// Total plus the team bonus for the home side.
type SideThresholds struct {
	TeamID       string
	LineupID     string
	Total        int
	Adjusted     int
	Differential int
	Thresholds   handicap.Thresholds
}

type MatchThresholds struct {
	MatchID       string
	Format        handicap.Format
	Home          SideThresholds
	Away          SideThresholds
	Bonus         int
	BonusDegraded bool
	TableVersion  string
}

type HandicapService struct {
	seasonRepo season.Repository
	matchRepo  match.Repository
	lineupRepo lineup.Repository
	recordRepo standing.RecordRepository
	tables     handicap.TableRepository
	logger     *logging.Logger
	recorder   Recorder
}

func NewHandicapService(
	seasonRepo season.Repository,
	matchRepo match.Repository,
	lineupRepo lineup.Repository,
	recordRepo standing.RecordRepository,
	tables handicap.TableRepository,
	logger *logging.Logger,
) *HandicapService {
	if logger == nil {
		logger = logging.Default()
	}
	return &HandicapService{
		seasonRepo: seasonRepo,
		matchRepo:  matchRepo,
		lineupRepo: lineupRepo,
		recordRepo: recordRepo,
		tables:     tables,
		logger:     logger,
		recorder:   nopRecorder{},
	}
}

func (s *HandicapService) SetRecorder(r Recorder) {
	s.recorder = recorderOrNop(r)
}

// TeamBonus returns the home team's bonus. When team records cannot be read
// the neutral 0 is returned flagged as degraded.
func (s *HandicapService) TeamBonus(ctx context.Context, homeTeamID, awayTeamID, seasonID string, format handicap.Format) (resilience.Outcome[int], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HandicapService.TeamBonus",
		seasonAttr(seasonID), attribute.String("league.home_team_id", homeTeamID), attribute.String("league.away_team_id", awayTeamID))
	defer span.End()

	homeTeamID = strings.TrimSpace(homeTeamID)
	awayTeamID = strings.TrimSpace(awayTeamID)
	seasonID = strings.TrimSpace(seasonID)
	if homeTeamID == "" || awayTeamID == "" || seasonID == "" {
		return resilience.Outcome[int]{}, fmt.Errorf("%w: home_team_id, away_team_id and season_id are required", ErrInvalidInput)
	}
	if !format.Valid() {
		return resilience.Outcome[int]{}, fmt.Errorf("%w: %v", ErrInvalidInput, handicap.ErrUnknownFormat)
	}
	if !format.HasTeamBonus() {
		return resilience.Healthy(0), nil
	}

	outcome, err := resilience.FailOpen(ctx, 0, func(ctx context.Context) (int, error) {
		var home, away standing.TeamRecord
		p := pool.New().WithContext(ctx).WithCancelOnError()
		p.Go(func(ctx context.Context) error {
			rec, err := s.recordRepo.GetTeamRecord(ctx, seasonID, homeTeamID)
			if err != nil {
				return fmt.Errorf("get home team record: %w", err)
			}
			home = rec
			return nil
		})
		p.Go(func(ctx context.Context) error {
			rec, err := s.recordRepo.GetTeamRecord(ctx, seasonID, awayTeamID)
			if err != nil {
				return fmt.Errorf("get away team record: %w", err)
			}
			away = rec
			return nil
		})
		if err := p.Wait(); err != nil {
			return 0, err
		}
		return handicap.TeamBonus(format, home.MatchWins, away.MatchWins), nil
	})
	if err != nil {
		return outcome, err
	}
	if outcome.Degraded {
		s.recorder.BonusDegraded()
		span.AddEvent("team bonus degraded to neutral")
		s.logger.WarnContext(ctx, "team bonus degraded to neutral",
			"season_id", seasonID,
			"home_team_id", homeTeamID,
			"away_team_id", awayTeamID,
			"error", outcome.Err,
		)
	}
	return outcome, nil
}

// MatchThresholds loads a match with both submitted lineups and resolves
// each side's thresholds.
func (s *HandicapService) MatchThresholds(ctx context.Context, matchID string) (MatchThresholds, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HandicapService.MatchThresholds", matchAttr(matchID))
	defer span.End()

	m, err := loadMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return MatchThresholds{}, err
	}

	var (
		item             season.Season
		home, away       lineup.Lineup
		hasHome, hasAway bool
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		v, err := loadSeason(ctx, s.seasonRepo, m.SeasonID)
		item = v
		return err
	})
	p.Go(func(ctx context.Context) error {
		v, ok, err := s.lineupRepo.GetByMatchAndTeam(ctx, m.ID, m.HomeTeamID)
		if err != nil {
			return fmt.Errorf("get home lineup: %w", err)
		}
		home, hasHome = v, ok
		return nil
	})
	p.Go(func(ctx context.Context) error {
		v, ok, err := s.lineupRepo.GetByMatchAndTeam(ctx, m.ID, m.AwayTeamID)
		if err != nil {
			return fmt.Errorf("get away lineup: %w", err)
		}
		away, hasAway = v, ok
		return nil
	})
	if err := p.Wait(); err != nil {
		return MatchThresholds{}, err
	}
	if !hasHome || !hasAway {
		return MatchThresholds{}, fmt.Errorf("%w: both lineups must be submitted for match=%s", ErrConflict, m.ID)
	}

	return s.Resolve(ctx, item, m, home, away)
}

// Resolve computes thresholds for already loaded inputs.
func (s *HandicapService) Resolve(ctx context.Context, item season.Season, m match.Match, home, away lineup.Lineup) (MatchThresholds, error) {
	var (
		table  handicap.Table
		bonus  resilience.Outcome[int]
		loaded bool
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		v, ok, err := s.tables.GetTable(ctx, item.Format)
		if err != nil {
			return fmt.Errorf("%w: load threshold table: %v", ErrDependencyUnavailable, err)
		}
		table, loaded = v, ok
		return nil
	})
	p.Go(func(ctx context.Context) error {
		v, err := s.TeamBonus(ctx, m.HomeTeamID, m.AwayTeamID, m.SeasonID, item.Format)
		bonus = v
		return err
	})
	if err := p.Wait(); err != nil {
		return MatchThresholds{}, err
	}
	if !loaded {
		return MatchThresholds{}, fmt.Errorf("%w: no threshold table for format %s", ErrDependencyUnavailable, item.Format)
	}

	homeTotal := home.TotalHandicap()
	awayTotal := away.TotalHandicap()
	homeAdjusted := homeTotal + bonus.Value
	homeDiff := handicap.Differential(homeAdjusted, awayTotal)
	awayDiff := handicap.Differential(awayTotal, homeAdjusted)

	return MatchThresholds{
		MatchID: m.ID,
		Format:  item.Format,
		Home: SideThresholds{
			TeamID:       m.HomeTeamID,
			LineupID:     home.ID,
			Total:        homeTotal,
			Adjusted:     homeAdjusted,
			Differential: homeDiff,
			Thresholds:   table.Lookup(homeDiff),
		},
		Away: SideThresholds{
			TeamID:       m.AwayTeamID,
			LineupID:     away.ID,
			Total:        awayTotal,
			Adjusted:     awayTotal,
			Differential: awayDiff,
			Thresholds:   table.Lookup(awayDiff),
		},
		Bonus:         bonus.Value,
		BonusDegraded: bonus.Degraded,
		TableVersion:  table.Version,
	}, nil
}
