package pay

import "context"

type RulesetRepository interface {
	Create(ctx context.Context, r Ruleset) (Ruleset, error)
	GetByID(ctx context.Context, id string, userID string) (Ruleset, error)
	ListByUser(ctx context.Context, userID string) ([]Ruleset, error)
	Update(ctx context.Context, r Ruleset) error
	Delete(ctx context.Context, id string, userID string) error
}
