package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
	qb "github.com/riskibarqy/pool-league/internal/platform/querybuilder"
)

type thresholdTableModel struct {
	Format       string        `db:"format"`
	Version      string        `db:"version"`
	Differential int           `db:"differential"`
	GamesToWin   int           `db:"games_to_win"`
	GamesToTie   sql.NullInt64 `db:"games_to_tie"`
	GamesToLose  int           `db:"games_to_lose"`
	Active       bool          `db:"active"`
}

// ThresholdRepository serves the active threshold table version per format.
type ThresholdRepository struct {
	db *sqlx.DB
}

func NewThresholdRepository(db *sqlx.DB) *ThresholdRepository {
	return &ThresholdRepository{db: db}
}

func (r *ThresholdRepository) GetTable(ctx context.Context, format handicap.Format) (handicap.Table, bool, error) {
	query, args, err := qb.Select("*").From("handicap_thresholds").
		Where(
			qb.Eq("format", string(format)),
			qb.Eq("active", true),
		).
		OrderBy("differential").
		ToSQL()
	if err != nil {
		return handicap.Table{}, false, fmt.Errorf("build select thresholds query: %w", err)
	}

	var rows []thresholdTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return handicap.Table{}, false, fmt.Errorf("select thresholds: %w", err)
	}
	if len(rows) == 0 {
		return handicap.Table{}, false, nil
	}

	version := rows[0].Version
	out := make([]handicap.Row, 0, len(rows))
	for _, row := range rows {
		if row.Version != version {
			return handicap.Table{}, false, fmt.Errorf("%w: %s has active versions %s and %s",
				handicap.ErrInvalidTable, format, version, row.Version)
		}
		out = append(out, thresholdFromRow(row))
	}

	table, err := handicap.NewTable(format, version, out)
	if err != nil {
		return handicap.Table{}, false, err
	}
	return table, true, nil
}

func thresholdFromRow(row thresholdTableModel) handicap.Row {
	out := handicap.Row{
		Differential: row.Differential,
		Thresholds: handicap.Thresholds{
			GamesToWin:  row.GamesToWin,
			GamesToLose: row.GamesToLose,
		},
	}
	if row.GamesToTie.Valid {
		tie := int(row.GamesToTie.Int64)
		out.GamesToTie = &tie
	}
	return out
}

func thresholdToInsert(format handicap.Format, version string, row handicap.Row) thresholdTableModel {
	model := thresholdTableModel{
		Format:       string(format),
		Version:      version,
		Differential: row.Differential,
		GamesToWin:   row.GamesToWin,
		GamesToLose:  row.GamesToLose,
		Active:       true,
	}
	if row.GamesToTie != nil {
		model.GamesToTie = sql.NullInt64{Int64: int64(*row.GamesToTie), Valid: true}
	}
	return model
}
