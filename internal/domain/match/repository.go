package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	// ListBySeason returns matches ordered by week. week <= 0 lists every week.
	ListBySeason(ctx context.Context, seasonID string, week int) ([]Match, error)
	// ReplaceScheduled drops the season's replaceable matches (scheduled, no
	// lineup submitted) and stores the given matches in their place.
	ReplaceScheduled(ctx context.Context, seasonID string, matches []Match) error
	Update(ctx context.Context, m Match) error
}
