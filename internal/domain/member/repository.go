package member

import "context"

// Repository describes member persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Member, error)
	GetByID(ctx context.Context, memberID string) (Member, bool, error)
	ListByIDs(ctx context.Context, memberIDs []string) ([]Member, error)
	Create(ctx context.Context, m Member) error
}
