package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pool-league/internal/domain/match"
	qb "github.com/riskibarqy/pool-league/internal/platform/querybuilder"
)

type matchTableModel struct {
	ID            string     `db:"id"`
	SeasonID      string     `db:"season_id"`
	WeekNumber    int        `db:"week_number"`
	ScheduledDate time.Time  `db:"scheduled_date"`
	HomeTeamID    string     `db:"home_team_id"`
	AwayTeamID    string     `db:"away_team_id"`
	HomeLineupID  string     `db:"home_lineup_id"`
	AwayLineupID  string     `db:"away_lineup_id"`
	HomeGamesWon  int        `db:"home_games_won"`
	AwayGamesWon  int        `db:"away_games_won"`
	Status        string     `db:"status"`
	WinnerTeamID  string     `db:"winner_team_id"`
	CompletedAt   *time.Time `db:"completed_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

type matchInsertModel struct {
	ID            string    `db:"id"`
	SeasonID      string    `db:"season_id"`
	WeekNumber    int       `db:"week_number"`
	ScheduledDate time.Time `db:"scheduled_date"`
	HomeTeamID    string    `db:"home_team_id"`
	AwayTeamID    string    `db:"away_team_id"`
	Status        string    `db:"status"`
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID string, week int) ([]match.Match, error) {
	conditions := []qb.Condition{qb.Eq("season_id", seasonID)}
	if week > 0 {
		conditions = append(conditions, qb.Eq("week_number", week))
	}

	query, args, err := qb.Select("*").From("matches").
		Where(conditions...).
		OrderBy("week_number", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by season query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by season: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) ReplaceScheduled(ctx context.Context, seasonID string, matches []match.Match) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace schedule tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom("matches").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Eq("status", string(match.StatusScheduled)),
			qb.Eq("home_lineup_id", ""),
			qb.Eq("away_lineup_id", ""),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete scheduled matches query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete scheduled matches: %w", err)
	}

	if len(matches) > 0 {
		insert := qb.InsertInto("matches")
		for i, m := range matches {
			cols, vals, err := qb.ModelColumns(matchInsertModel{
				ID:            m.ID,
				SeasonID:      seasonID,
				WeekNumber:    m.WeekNumber,
				ScheduledDate: dateOf(m.ScheduledDate),
				HomeTeamID:    m.HomeTeamID,
				AwayTeamID:    m.AwayTeamID,
				Status:        string(match.StatusScheduled),
			})
			if err != nil {
				return fmt.Errorf("map match %s: %w", m.ID, err)
			}
			if i == 0 {
				insert.Columns(cols...)
			}
			insert.Values(vals...)
		}

		query, args, err = insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert matches: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace schedule tx: %w", err)
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match) error {
	query, args, err := qb.Update("matches").
		Set("home_lineup_id", m.HomeLineupID).
		Set("away_lineup_id", m.AwayLineupID).
		Set("home_games_won", m.HomeGamesWon).
		Set("away_games_won", m.AwayGamesWon).
		Set("status", string(m.Status)).
		Set("winner_team_id", m.WinnerTeamID).
		Set("completed_at", m.CompletedAt).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", m.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update match rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update match: %s not found", m.ID)
	}
	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	out := match.Match{
		ID:            row.ID,
		SeasonID:      row.SeasonID,
		WeekNumber:    row.WeekNumber,
		ScheduledDate: dateOf(row.ScheduledDate),
		HomeTeamID:    row.HomeTeamID,
		AwayTeamID:    row.AwayTeamID,
		HomeLineupID:  row.HomeLineupID,
		AwayLineupID:  row.AwayLineupID,
		HomeGamesWon:  row.HomeGamesWon,
		AwayGamesWon:  row.AwayGamesWon,
		Status:        match.Status(row.Status),
		WinnerTeamID:  row.WinnerTeamID,
	}
	if row.CompletedAt != nil {
		completed := row.CompletedAt.UTC()
		out.CompletedAt = &completed
	}
	return out
}
