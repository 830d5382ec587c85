package pay

import "context"

type Service interface {
	// Ruleset management
	CreateRuleset(ctx context.Context, req CreateRulesetRequest) (RulesetResponse, error)
	GetRuleset(ctx context.Context, id string) (RulesetResponse, error)
	ListRulesets(ctx context.Context) ([]RulesetResponse, error)
	UpdateRuleset(ctx context.Context, req UpdateRulesetRequest) (RulesetResponse, error)
	DeleteRuleset(ctx context.Context, id string) error

	// Aggregation. Both calls fully re-derive the period from the stored
	// shifts; there is no incremental update path.
	AggregateRange(ctx context.Context, req AggregateRangeRequest) (PeriodResponse, error)
	AggregatePeriod(ctx context.Context, req AggregatePeriodRequest) (PeriodResponse, error)
}
