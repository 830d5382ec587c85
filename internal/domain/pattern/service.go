package pattern

import "context"

type Service interface {
	Create(ctx context.Context, req CreatePatternRequest) (PatternResponse, error)
	Get(ctx context.Context, id string) (PatternResponse, error)
	List(ctx context.Context) ([]PatternResponse, error)
	Update(ctx context.Context, req UpdatePatternRequest) (PatternResponse, error)
	Delete(ctx context.Context, id string) error

	// Preview expands the pattern over a bounded horizon without persisting
	// anything, for UI confirmation before shifts are generated.
	Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error)
}
