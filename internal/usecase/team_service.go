package usecase

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/riskibarqy/pool-league/internal/domain/member"
	"github.com/riskibarqy/pool-league/internal/domain/season"
	"github.com/riskibarqy/pool-league/internal/domain/team"
	"github.com/riskibarqy/pool-league/internal/platform/id"
)

// CreateTeamInput registers a team. A zero SchedulePosition takes the next
// free position; the captain is added to the roster when missing.
type CreateTeamInput struct {
	SeasonID         string
	Name             string
	CaptainID        string
	SchedulePosition int
	PlayerIDs        []string
}

type TeamService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	memberRepo member.Repository
	ids        id.Generator
}

func NewTeamService(seasonRepo season.Repository, teamRepo team.Repository, memberRepo member.Repository, ids id.Generator) *TeamService {
	return &TeamService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		ids:        ids,
	}
}

func (s *TeamService) ListBySeason(ctx context.Context, seasonID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListBySeason", seasonAttr(seasonID))
	defer span.End()

	item, err := loadSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}
	return listTeams(ctx, s.teamRepo, item.ID)
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	item, err := loadSeason(ctx, s.seasonRepo, input.SeasonID)
	if err != nil {
		return team.Team{}, err
	}

	captainID := strings.TrimSpace(input.CaptainID)
	playerIDs, err := normalizeIDs(input.PlayerIDs)
	if err != nil {
		return team.Team{}, err
	}
	if captainID != "" && !slices.Contains(playerIDs, captainID) {
		playerIDs = append([]string{captainID}, playerIDs...)
	}

	existing, err := listTeams(ctx, s.teamRepo, item.ID)
	if err != nil {
		return team.Team{}, err
	}
	position := input.SchedulePosition
	if position == 0 {
		position = len(existing) + 1
		for _, t := range existing {
			position = max(position, t.SchedulePosition+1)
		}
	}
	for _, t := range existing {
		if t.SchedulePosition == position {
			return team.Team{}, fmt.Errorf("%w: schedule position %d is taken by %s", ErrConflict, position, t.Name)
		}
		if strings.EqualFold(t.Name, strings.TrimSpace(input.Name)) {
			return team.Team{}, fmt.Errorf("%w: team %q already exists in season", ErrConflict, t.Name)
		}
	}

	if err := s.ensureMembers(ctx, playerIDs); err != nil {
		return team.Team{}, err
	}

	teamID, err := s.ids.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}
	out := team.Team{
		ID:               teamID,
		SeasonID:         item.ID,
		Name:             strings.TrimSpace(input.Name),
		CaptainID:        captainID,
		SchedulePosition: position,
		PlayerIDs:        playerIDs,
	}
	if err := out.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, out); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	return out, nil
}

func (s *TeamService) ensureMembers(ctx context.Context, memberIDs []string) error {
	if len(memberIDs) == 0 {
		return nil
	}
	found, err := s.memberRepo.ListByIDs(ctx, memberIDs)
	if err != nil {
		return fmt.Errorf("list members by ids: %w", err)
	}
	known := make(map[string]struct{}, len(found))
	for _, m := range found {
		known[m.ID] = struct{}{}
	}
	for _, memberID := range memberIDs {
		if _, ok := known[memberID]; !ok {
			return fmt.Errorf("%w: member=%s", ErrNotFound, memberID)
		}
	}
	return nil
}

func listTeams(ctx context.Context, repo team.Repository, seasonID string) ([]team.Team, error) {
	items, err := repo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list teams by season: %w", err)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].SchedulePosition < items[j].SchedulePosition
	})
	return items, nil
}

func loadTeam(ctx context.Context, repo team.Repository, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	item, exists, err := repo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}

// normalizeIDs trims ids, drops blanks and rejects duplicates.
func normalizeIDs(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidInput, v)
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}
