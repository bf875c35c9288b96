package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/domain/season"
)

type MatchService struct {
	seasonRepo season.Repository
	matchRepo  match.Repository
	feed       match.Feed
}

func NewMatchService(seasonRepo season.Repository, matchRepo match.Repository, feed match.Feed) *MatchService {
	return &MatchService{
		seasonRepo: seasonRepo,
		matchRepo:  matchRepo,
		feed:       feed,
	}
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get", matchAttr(matchID))
	defer span.End()

	return loadMatch(ctx, s.matchRepo, matchID)
}

// ListBySeason lists a season's matches; week <= 0 lists every week.
func (s *MatchService) ListBySeason(ctx context.Context, seasonID string, week int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListBySeason", seasonAttr(seasonID))
	defer span.End()

	item, err := loadSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}
	items, err := s.matchRepo.ListBySeason(ctx, item.ID, week)
	if err != nil {
		return nil, fmt.Errorf("list matches by season: %w", err)
	}
	return items, nil
}

// Subscribe opens a change feed for one match. The subscription ends when
// ctx is done or the handle is closed.
func (s *MatchService) Subscribe(ctx context.Context, matchID string) (match.Subscription, error) {
	m, err := loadMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return nil, err
	}
	if s.feed == nil {
		return nil, fmt.Errorf("%w: match feed is not configured", ErrDependencyUnavailable)
	}
	sub, err := s.feed.Subscribe(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: subscribe match feed: %v", ErrDependencyUnavailable, err)
	}
	return sub, nil
}

func loadMatch(ctx context.Context, repo match.Repository, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}
	item, exists, err := repo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}
