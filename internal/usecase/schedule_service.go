package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/domain/schedule"
	"github.com/riskibarqy/pool-league/internal/domain/season"
	"github.com/riskibarqy/pool-league/internal/domain/team"
	"github.com/riskibarqy/pool-league/internal/platform/id"
)

// AppliedSchedule is the outcome of regenerating a season's matches.
type AppliedSchedule struct {
	Entries []schedule.WeekEntry
	Created []match.Match
	Kept    int
}

type ScheduleService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
	matchups   schedule.MatchupRepository
	ids        id.Generator
	guard      *MatchGuard
	now        func() time.Time
}

func NewScheduleService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	matchups schedule.MatchupRepository,
	ids id.Generator,
	guard *MatchGuard,
) *ScheduleService {
	if guard == nil {
		guard = NewMatchGuard()
	}
	return &ScheduleService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		matchups:   matchups,
		ids:        ids,
		guard:      guard,
		now:        time.Now,
	}
}

func (s *ScheduleService) Preview(ctx context.Context, seasonID string) ([]schedule.WeekEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Preview", seasonAttr(seasonID))
	defer span.End()

	item, err := loadSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}
	return generateFor(item)
}

// Calendar renders the season schedule as an iCalendar document.
func (s *ScheduleService) Calendar(ctx context.Context, seasonID string) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Calendar", seasonAttr(seasonID))
	defer span.End()

	item, err := loadSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}
	entries, err := generateFor(item)
	if err != nil {
		return nil, err
	}
	return schedule.EncodeICS(item.Name, item.ID, entries, s.now()), nil
}

// Apply regenerates the season's untouched matches from the schedule and the
// matchup table for its team count. Matches that are in progress, completed or
// already carry a lineup are kept and their fixtures are not recreated. Every
// existing match of the season stays guarded until the replacement is stored,
// so lineup and score changes never land on a match being dropped.
func (s *ScheduleService) Apply(ctx context.Context, seasonID string) (AppliedSchedule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Apply", seasonAttr(seasonID))
	defer span.End()

	item, err := loadSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return AppliedSchedule{}, err
	}
	entries, err := generateFor(item)
	if err != nil {
		return AppliedSchedule{}, err
	}

	teams, err := listTeams(ctx, s.teamRepo, item.ID)
	if err != nil {
		return AppliedSchedule{}, err
	}
	byPosition := make(map[int]team.Team, len(teams))
	for i, t := range teams {
		if t.SchedulePosition != i+1 {
			return AppliedSchedule{}, fmt.Errorf("%w: schedule positions must run 1..%d, found %d for %s", ErrConflict, len(teams), t.SchedulePosition, t.Name)
		}
		byPosition[t.SchedulePosition] = t
	}

	table, ok, err := s.matchups.GetMatchupTable(ctx, len(teams))
	if err != nil {
		return AppliedSchedule{}, fmt.Errorf("%w: load matchup table: %v", ErrDependencyUnavailable, err)
	}
	if !ok {
		return AppliedSchedule{}, fmt.Errorf("%w: no matchup table for %d teams", ErrInvalidInput, len(teams))
	}

	fixtures, err := schedule.Plan(entries, table, len(teams))
	if err != nil {
		if errors.Is(err, schedule.ErrTooFewTeams) {
			return AppliedSchedule{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return AppliedSchedule{}, fmt.Errorf("plan fixtures: %w", err)
	}

	releaseSeason := s.guard.Lock(seasonGuardKey(item.ID))
	defer releaseSeason()

	existing, err := s.matchRepo.ListBySeason(ctx, item.ID, 0)
	if err != nil {
		return AppliedSchedule{}, fmt.Errorf("list matches by season: %w", err)
	}
	matchIDs := make([]string, 0, len(existing))
	for _, m := range existing {
		matchIDs = append(matchIDs, m.ID)
	}
	releaseMatches := s.guard.LockAll(matchIDs...)
	defer releaseMatches()

	// Re-read under the guards: a lineup may have landed since the first list.
	if existing, err = s.matchRepo.ListBySeason(ctx, item.ID, 0); err != nil {
		return AppliedSchedule{}, fmt.Errorf("list matches by season: %w", err)
	}
	kept := make(map[string]struct{}, len(existing))
	for _, m := range existing {
		if !m.Replaceable() {
			kept[fixtureKey(m.WeekNumber, m.HomeTeamID, m.AwayTeamID)] = struct{}{}
		}
	}

	created := make([]match.Match, 0, len(fixtures))
	for _, f := range fixtures {
		home := byPosition[f.HomePosition]
		away := byPosition[f.AwayPosition]
		if _, skip := kept[fixtureKey(f.WeekNumber, home.ID, away.ID)]; skip {
			continue
		}
		matchID, err := s.ids.NewID()
		if err != nil {
			return AppliedSchedule{}, fmt.Errorf("generate match id: %w", err)
		}
		created = append(created, match.Match{
			ID:            matchID,
			SeasonID:      item.ID,
			WeekNumber:    f.WeekNumber,
			ScheduledDate: f.Date,
			HomeTeamID:    home.ID,
			AwayTeamID:    away.ID,
			Status:        match.StatusScheduled,
		})
	}

	if err := s.matchRepo.ReplaceScheduled(ctx, item.ID, created); err != nil {
		return AppliedSchedule{}, fmt.Errorf("replace scheduled matches: %w", err)
	}
	return AppliedSchedule{Entries: entries, Created: created, Kept: len(kept)}, nil
}

func generateFor(item season.Season) ([]schedule.WeekEntry, error) {
	holidays := make([]schedule.Holiday, 0, len(item.Holidays))
	for _, h := range item.Holidays {
		holidays = append(holidays, schedule.Holiday{Date: h.Date, Name: h.Name})
	}
	entries, err := schedule.Generate(schedule.Params{
		StartDate:     item.StartDate,
		SeasonLength:  item.SeasonLength,
		Blackouts:     item.Blackouts,
		EndBreakWeeks: item.EndBreakWeeks,
		Holidays:      holidays,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return entries, nil
}

// seasonGuardKey serializes schedule applies for one season. Match ids never
// carry this prefix.
func seasonGuardKey(seasonID string) string {
	return "season:" + seasonID
}

func fixtureKey(week int, homeTeamID, awayTeamID string) string {
	return fmt.Sprintf("%d|%s|%s", week, homeTeamID, awayTeamID)
}
