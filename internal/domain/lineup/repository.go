package lineup

import "context"

// Repository exposes lineup persistence operations.
type Repository interface {
	GetByID(ctx context.Context, lineupID string) (Lineup, bool, error)
	GetByMatchAndTeam(ctx context.Context, matchID, teamID string) (Lineup, bool, error)
	Upsert(ctx context.Context, l Lineup) error
}
