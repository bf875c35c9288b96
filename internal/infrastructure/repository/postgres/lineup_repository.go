package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pool-league/internal/domain/lineup"
	qb "github.com/riskibarqy/pool-league/internal/platform/querybuilder"
)

type lineupTableModel struct {
	ID        string     `db:"id"`
	MatchID   string     `db:"match_id"`
	TeamID    string     `db:"team_id"`
	Slots     string     `db:"slots"`
	Locked    bool       `db:"locked"`
	LockedAt  *time.Time `db:"locked_at"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

type lineupInsertModel struct {
	ID       string     `db:"id"`
	MatchID  string     `db:"match_id"`
	TeamID   string     `db:"team_id"`
	Slots    string     `db:"slots"`
	Locked   bool       `db:"locked"`
	LockedAt *time.Time `db:"locked_at"`
}

type slotDocument struct {
	Position int    `json:"position"`
	PlayerID string `json:"playerId,omitempty"`
	Handicap int    `json:"handicap"`
}

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) GetByID(ctx context.Context, lineupID string) (lineup.Lineup, bool, error) {
	query, args, err := qb.Select("*").From("lineups").
		Where(qb.Eq("id", lineupID)).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup by id query: %w", err)
	}
	return r.get(ctx, query, args)
}

func (r *LineupRepository) GetByMatchAndTeam(ctx context.Context, matchID, teamID string) (lineup.Lineup, bool, error) {
	query, args, err := qb.Select("*").From("lineups").
		Where(
			qb.Eq("match_id", matchID),
			qb.Eq("team_id", teamID),
		).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup by match and team query: %w", err)
	}
	return r.get(ctx, query, args)
}

func (r *LineupRepository) get(ctx context.Context, query string, args []any) (lineup.Lineup, bool, error) {
	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup: %w", err)
	}

	item, err := lineupFromRow(row)
	if err != nil {
		return lineup.Lineup{}, false, err
	}
	return item, true, nil
}

func (r *LineupRepository) Upsert(ctx context.Context, item lineup.Lineup) error {
	docs := make([]slotDocument, 0, len(item.Slots))
	for _, s := range item.Slots {
		docs = append(docs, slotDocument{Position: s.Position, PlayerID: s.PlayerID, Handicap: s.Handicap})
	}
	slots, err := sonic.MarshalString(docs)
	if err != nil {
		return fmt.Errorf("encode lineup %s slots: %w", item.ID, err)
	}

	query, args, err := qb.InsertModel("lineups", lineupInsertModel{
		ID:       item.ID,
		MatchID:  item.MatchID,
		TeamID:   item.TeamID,
		Slots:    slots,
		Locked:   item.Locked,
		LockedAt: item.LockedAt,
	}, `ON CONFLICT (match_id, team_id)
DO UPDATE SET
    slots = EXCLUDED.slots,
    locked = EXCLUDED.locked,
    locked_at = EXCLUDED.locked_at,
    updated_at = NOW()
RETURNING updated_at`)
	if err != nil {
		return fmt.Errorf("build lineup upsert query: %w", err)
	}

	var updatedAt time.Time
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return fmt.Errorf("upsert lineup: %w", err)
	}
	return nil
}

func lineupFromRow(row lineupTableModel) (lineup.Lineup, error) {
	var docs []slotDocument
	if err := sonic.UnmarshalString(row.Slots, &docs); err != nil {
		return lineup.Lineup{}, fmt.Errorf("decode lineup %s slots: %w", row.ID, err)
	}

	slots := make([]lineup.Slot, 0, len(docs))
	for _, doc := range docs {
		slots = append(slots, lineup.Slot{Position: doc.Position, PlayerID: doc.PlayerID, Handicap: doc.Handicap})
	}

	out := lineup.Lineup{
		ID:        row.ID,
		MatchID:   row.MatchID,
		TeamID:    row.TeamID,
		Slots:     slots,
		Locked:    row.Locked,
		UpdatedAt: row.UpdatedAt,
	}
	if row.LockedAt != nil {
		at := row.LockedAt.UTC()
		out.LockedAt = &at
	}
	return out, nil
}
