package shift

import (
	"context"
	"time"

	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pattern"
)

type Service interface {
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	Get(ctx context.Context, id string) (ShiftResponse, error)
	List(ctx context.Context, req ListRequest) ([]ShiftResponse, error)
	Update(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	Transition(ctx context.Context, req TransitionRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error

	// Generate materializes a pattern over an inclusive date window,
	// skipping occurrences that already exist with the same identity.
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)

	// MaterializePattern is the trusted path used by background jobs; it
	// bypasses the request DTO and acts for the pattern's owner directly.
	MaterializePattern(ctx context.Context, p pattern.Pattern, from, to time.Time) (int, error)
}
