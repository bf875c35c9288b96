package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/pool-league/internal/domain/handicap"
	"github.com/riskibarqy/pool-league/internal/domain/season"
	qb "github.com/riskibarqy/pool-league/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		OrderBy("start_date DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		item, err := seasonFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("id", seasonID)).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season by id query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season by id: %w", err)
	}

	item, err := seasonFromRow(row)
	if err != nil {
		return season.Season{}, false, err
	}
	return item, true, nil
}

func (r *SeasonRepository) Create(ctx context.Context, s season.Season) error {
	model, err := seasonToInsert(s)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("seasons", model, "")
	if err != nil {
		return fmt.Errorf("build insert season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert season: %w", err)
	}
	return nil
}

func seasonToInsert(s season.Season) (seasonInsertModel, error) {
	blackouts := make(pq.StringArray, 0, len(s.Blackouts))
	for _, d := range s.Blackouts {
		blackouts = append(blackouts, d.Format(time.DateOnly))
	}

	docs := make([]holidayDocument, 0, len(s.Holidays))
	for _, h := range s.Holidays {
		docs = append(docs, holidayDocument{Date: h.Date.Format(time.DateOnly), Name: h.Name})
	}
	holidays, err := sonic.MarshalString(docs)
	if err != nil {
		return seasonInsertModel{}, fmt.Errorf("encode season %s holidays: %w", s.ID, err)
	}

	return seasonInsertModel{
		ID:            s.ID,
		Name:          s.Name,
		Format:        string(s.Format),
		StartDate:     s.StartDate.UTC(),
		SeasonLength:  s.SeasonLength,
		EndBreakWeeks: s.EndBreakWeeks,
		BlackoutDates: blackouts,
		Holidays:      holidays,
	}, nil
}

func seasonFromRow(row seasonTableModel) (season.Season, error) {
	blackouts := make([]time.Time, 0, len(row.BlackoutDates))
	for _, raw := range row.BlackoutDates {
		d, err := parseDate(raw)
		if err != nil {
			return season.Season{}, fmt.Errorf("season %s blackout: %w", row.ID, err)
		}
		blackouts = append(blackouts, d)
	}

	var docs []holidayDocument
	if row.Holidays != "" {
		if err := sonic.UnmarshalString(row.Holidays, &docs); err != nil {
			return season.Season{}, fmt.Errorf("decode season %s holidays: %w", row.ID, err)
		}
	}
	holidays := make([]season.Holiday, 0, len(docs))
	for _, doc := range docs {
		d, err := parseDate(doc.Date)
		if err != nil {
			return season.Season{}, fmt.Errorf("season %s holiday: %w", row.ID, err)
		}
		holidays = append(holidays, season.Holiday{Date: d, Name: doc.Name})
	}

	return season.Season{
		ID:            row.ID,
		Name:          row.Name,
		Format:        handicap.Format(row.Format),
		StartDate:     dateOf(row.StartDate),
		SeasonLength:  row.SeasonLength,
		EndBreakWeeks: row.EndBreakWeeks,
		Blackouts:     blackouts,
		Holidays:      holidays,
		CreatedAt:     row.CreatedAt,
	}, nil
}
