package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/pool-league/internal/domain/team"
	qb "github.com/riskibarqy/pool-league/internal/platform/querybuilder"
)

type teamTableModel struct {
	ID               string         `db:"id"`
	SeasonID         string         `db:"season_id"`
	Name             string         `db:"name"`
	CaptainID        string         `db:"captain_id"`
	SchedulePosition int            `db:"schedule_position"`
	PlayerIDs        pq.StringArray `db:"player_ids"`
	CreatedAt        time.Time      `db:"created_at"`
}

type teamInsertModel struct {
	ID               string         `db:"id"`
	SeasonID         string         `db:"season_id"`
	Name             string         `db:"name"`
	CaptainID        string         `db:"captain_id"`
	SchedulePosition int            `db:"schedule_position"`
	PlayerIDs        pq.StringArray `db:"player_ids"`
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListBySeason(ctx context.Context, seasonID string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("schedule_position", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by season query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by season: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	query, args, err := qb.InsertModel("teams", teamInsertModel{
		ID:               t.ID,
		SeasonID:         t.SeasonID,
		Name:             t.Name,
		CaptainID:        t.CaptainID,
		SchedulePosition: t.SchedulePosition,
		PlayerIDs:        pq.StringArray(t.PlayerIDs),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:               row.ID,
		SeasonID:         row.SeasonID,
		Name:             row.Name,
		CaptainID:        row.CaptainID,
		SchedulePosition: row.SchedulePosition,
		PlayerIDs:        append([]string(nil), row.PlayerIDs...),
	}
}
