package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pool-league/internal/domain/member"
	qb "github.com/riskibarqy/pool-league/internal/platform/querybuilder"
)

type memberTableModel struct {
	ID        string    `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Handicap  int       `db:"handicap"`
	CreatedAt time.Time `db:"created_at"`
}

type memberInsertModel struct {
	ID        string `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Handicap  int    `db:"handicap"`
}

type MemberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) List(ctx context.Context) ([]member.Member, error) {
	query, args, err := qb.Select("*").From("members").
		OrderBy("last_name", "first_name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select members query: %w", err)
	}
	return r.selectMembers(ctx, query, args)
}

func (r *MemberRepository) GetByID(ctx context.Context, memberID string) (member.Member, bool, error) {
	query, args, err := qb.Select("*").From("members").
		Where(qb.Eq("id", memberID)).
		ToSQL()
	if err != nil {
		return member.Member{}, false, fmt.Errorf("build get member by id query: %w", err)
	}

	var row memberTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return member.Member{}, false, nil
		}
		return member.Member{}, false, fmt.Errorf("get member by id: %w", err)
	}
	return memberFromRow(row), true, nil
}

func (r *MemberRepository) ListByIDs(ctx context.Context, memberIDs []string) ([]member.Member, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("members").
		Where(qb.InStrings("id", memberIDs)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select members by ids query: %w", err)
	}
	return r.selectMembers(ctx, query, args)
}

func (r *MemberRepository) Create(ctx context.Context, m member.Member) error {
	query, args, err := qb.InsertModel("members", memberInsertModel{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Handicap:  m.Handicap,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert member query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

func (r *MemberRepository) selectMembers(ctx context.Context, query string, args []any) ([]member.Member, error) {
	var rows []memberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select members: %w", err)
	}

	out := make([]member.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, memberFromRow(row))
	}
	return out, nil
}

func memberFromRow(row memberTableModel) member.Member {
	return member.Member{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Handicap:  row.Handicap,
		CreatedAt: row.CreatedAt,
	}
}
