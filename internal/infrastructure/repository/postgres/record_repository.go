package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pool-league/internal/domain/match"
	"github.com/riskibarqy/pool-league/internal/domain/standing"
)

const teamRecordQuery = `
SELECT
    COUNT(*) FILTER (WHERE winner_team_id = $2) AS wins,
    COUNT(*) FILTER (WHERE winner_team_id <> '' AND winner_team_id <> $2) AS losses,
    COUNT(*) FILTER (WHERE winner_team_id = '') AS ties
FROM matches
WHERE season_id = $1
  AND status = $3
  AND (home_team_id = $2 OR away_team_id = $2)`

type teamRecordRow struct {
	Wins   int `db:"wins"`
	Losses int `db:"losses"`
	Ties   int `db:"ties"`
}

// RecordRepository aggregates team records from completed matches.
type RecordRepository struct {
	db *sqlx.DB
}

func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) GetTeamRecord(ctx context.Context, seasonID, teamID string) (standing.TeamRecord, error) {
	var row teamRecordRow
	if err := r.db.GetContext(ctx, &row, teamRecordQuery, seasonID, teamID, string(match.StatusCompleted)); err != nil {
		return standing.TeamRecord{}, fmt.Errorf("aggregate team %s record: %w", teamID, err)
	}

	return standing.TeamRecord{
		SeasonID:    seasonID,
		TeamID:      teamID,
		MatchWins:   row.Wins,
		MatchLosses: row.Losses,
		MatchTies:   row.Ties,
	}, nil
}
