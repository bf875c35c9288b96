package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
	"github.com/riskibarqy/pool-league/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/pool-league/internal/platform/querybuilder"
)

// ThresholdSource provides the authored threshold rows copied into an empty
// database.
type ThresholdSource interface {
	Rows(format handicap.Format) []handicap.Row
	Version(format handicap.Format) string
}

// BootstrapSeed fills an empty database with the demo season and the
// authored threshold tables. It does nothing once any season exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, thresholds ThresholdSource) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM seasons`); err != nil {
		return fmt.Errorf("count seasons for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exec := func(what, table string, model any, suffix string) error {
		query, args, err := qb.InsertModel(table, model, suffix)
		if err != nil {
			return fmt.Errorf("build seed %s query: %w", what, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed %s: %w", what, err)
		}
		return nil
	}

	for _, format := range []handicap.Format{handicap.Format3v3, handicap.Format5v5} {
		version := thresholds.Version(format)
		for _, row := range thresholds.Rows(format) {
			model := thresholdToInsert(format, version, row)
			what := fmt.Sprintf("threshold %s/%d", format, row.Differential)
			if err := exec(what, "handicap_thresholds", model, "ON CONFLICT (format, version, differential) DO NOTHING"); err != nil {
				return err
			}
		}
	}

	for _, m := range memory.SeedMembers() {
		model := memberInsertModel{ID: m.ID, FirstName: m.FirstName, LastName: m.LastName, Handicap: m.Handicap}
		if err := exec("member "+m.ID, "members", model, "ON CONFLICT (id) DO NOTHING"); err != nil {
			return err
		}
	}

	for _, s := range memory.SeedSeasons() {
		model, err := seasonToInsert(s)
		if err != nil {
			return err
		}
		if err := exec("season "+s.ID, "seasons", model, "ON CONFLICT (id) DO NOTHING"); err != nil {
			return err
		}
	}

	for _, t := range memory.SeedTeams() {
		model := teamInsertModel{
			ID:               t.ID,
			SeasonID:         t.SeasonID,
			Name:             t.Name,
			CaptainID:        t.CaptainID,
			SchedulePosition: t.SchedulePosition,
			PlayerIDs:        t.PlayerIDs,
		}
		if err := exec("team "+t.ID, "teams", model, "ON CONFLICT (id) DO NOTHING"); err != nil {
			return err
		}
	}

	for _, m := range memory.SeedMatches() {
		model := matchInsertModel{
			ID:            m.ID,
			SeasonID:      m.SeasonID,
			WeekNumber:    m.WeekNumber,
			ScheduledDate: dateOf(m.ScheduledDate),
			HomeTeamID:    m.HomeTeamID,
			AwayTeamID:    m.AwayTeamID,
			Status:        string(m.Status),
		}
		if err := exec("match "+m.ID, "matches", model, "ON CONFLICT (id) DO NOTHING"); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
