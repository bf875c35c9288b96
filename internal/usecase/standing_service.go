package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/pool-league/internal/domain/season"
	"github.com/riskibarqy/pool-league/internal/domain/standing"
	"github.com/riskibarqy/pool-league/internal/domain/team"
)

const defaultStandingsWorkers = 8

type StandingService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	recordRepo standing.RecordRepository
	workers    int
}

func NewStandingService(seasonRepo season.Repository, teamRepo team.Repository, recordRepo standing.RecordRepository, workers int) *StandingService {
	if workers <= 0 {
		workers = defaultStandingsWorkers
	}
	return &StandingService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		recordRepo: recordRepo,
		workers:    workers,
	}
}

// List ranks every team of the season by its match record.
func (s *StandingService) List(ctx context.Context, seasonID string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.List", seasonAttr(seasonID))
	defer span.End()

	item, err := loadSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}
	teams, err := listTeams(ctx, s.teamRepo, item.ID)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return []standing.Standing{}, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(teams)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rows := make([]standing.Standing, len(teams))
	errs := make([]error, len(teams))

	var workers sync.WaitGroup
	for i, t := range teams {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			record, err := s.recordRepo.GetTeamRecord(ctx, item.ID, t.ID)
			if err != nil {
				errs[i] = fmt.Errorf("get team record team=%s: %w", t.ID, err)
				return
			}
			rows[i] = standing.Standing{TeamName: t.Name, TeamRecord: record}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return standing.Rank(rows), nil
}
