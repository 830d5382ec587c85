package shift

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	CreateBatch(ctx context.Context, shifts []Shift) ([]Shift, error)
	GetByID(ctx context.Context, id string, userID string) (Shift, error)
	// ListInRange returns the user's shifts whose anchor day falls in
	// [from, to], ordered by scheduled start.
	ListInRange(ctx context.Context, userID string, from, to time.Time) ([]Shift, error)
	ListByPattern(ctx context.Context, userID string, patternID string, from, to time.Time) ([]Shift, error)
	Update(ctx context.Context, s Shift) error
	Delete(ctx context.Context, id string, userID string) error
}
