package pattern

import "context"

type Repository interface {
	Create(ctx context.Context, p Pattern) (Pattern, error)
	GetByID(ctx context.Context, id string, userID string) (Pattern, error)
	ListByUser(ctx context.Context, userID string) ([]Pattern, error)
	ListAutoExtend(ctx context.Context) ([]Pattern, error)
	Update(ctx context.Context, p Pattern) error
	Delete(ctx context.Context, id string, userID string) error
}
