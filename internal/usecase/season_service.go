package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
	"github.com/riskibarqy/pool-league/internal/domain/season"
	"github.com/riskibarqy/pool-league/internal/platform/dateparse"
	"github.com/riskibarqy/pool-league/internal/platform/id"
)

type HolidayInput struct {
	Date string
	Name string
}

// CreateSeasonInput carries raw operator input. Dates may be ISO dates or
// phrases such as "next friday"; blackouts and holidays resolve against the
// start date.
type CreateSeasonInput struct {
	Name          string
	Format        string
	StartDate     string
	SeasonLength  int
	EndBreakWeeks int
	Blackouts     []string
	Holidays      []HolidayInput
}

type SeasonService struct {
	repo  season.Repository
	ids   id.Generator
	dates *dateparse.Parser
	now   func() time.Time
}

func NewSeasonService(repo season.Repository, ids id.Generator) *SeasonService {
	return &SeasonService{
		repo:  repo,
		ids:   ids,
		dates: dateparse.New(),
		now:   time.Now,
	}
}

func (s *SeasonService) List(ctx context.Context) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].StartDate.After(items[j].StartDate)
	})
	return items, nil
}

func (s *SeasonService) Get(ctx context.Context, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Get", seasonAttr(seasonID))
	defer span.End()

	return loadSeason(ctx, s.repo, seasonID)
}

func (s *SeasonService) Create(ctx context.Context, input CreateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Create")
	defer span.End()

	format, err := handicap.ParseFormat(input.Format)
	if err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	start, err := s.dates.Parse(input.StartDate, now)
	if err != nil {
		return season.Season{}, fmt.Errorf("%w: start_date: %v", ErrInvalidInput, err)
	}
	blackouts, err := s.dates.ParseAll(input.Blackouts, start)
	if err != nil {
		return season.Season{}, fmt.Errorf("%w: blackouts: %v", ErrInvalidInput, err)
	}

	holidays := make([]season.Holiday, 0, len(input.Holidays))
	for _, h := range input.Holidays {
		date, err := s.dates.Parse(h.Date, start)
		if err != nil {
			return season.Season{}, fmt.Errorf("%w: holiday %q: %v", ErrInvalidInput, h.Name, err)
		}
		holidays = append(holidays, season.Holiday{Date: date, Name: strings.TrimSpace(h.Name)})
	}

	seasonID, err := s.ids.NewID()
	if err != nil {
		return season.Season{}, fmt.Errorf("generate season id: %w", err)
	}

	item := season.Season{
		ID:            seasonID,
		Name:          strings.TrimSpace(input.Name),
		Format:        format,
		StartDate:     start,
		SeasonLength:  input.SeasonLength,
		EndBreakWeeks: input.EndBreakWeeks,
		Blackouts:     blackouts,
		Holidays:      holidays,
		CreatedAt:     now,
	}
	if err := item.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return season.Season{}, fmt.Errorf("create season: %w", err)
	}
	return item, nil
}

func loadSeason(ctx context.Context, repo season.Repository, seasonID string) (season.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season_id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return item, nil
}
