package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pattern"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/shift"
)

// HorizonJobs keeps auto-extending patterns materialized a fixed number of
// days into the future. Patterns without auto-extend are only ever expanded
// on explicit request.
type HorizonJobs struct {
	patternRepo pattern.Repository
	shiftSvc    shift.Service
	horizonDays int
}

func NewHorizonJobs(patternRepo pattern.Repository, shiftSvc shift.Service, horizonDays int) *HorizonJobs {
	return &HorizonJobs{
		patternRepo: patternRepo,
		shiftSvc:    shiftSvc,
		horizonDays: horizonDays,
	}
}

func (j *HorizonJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("extend_pattern_horizon", interval, j.ExtendPatternHorizon)
}

// ExtendPatternHorizon materializes every auto-extend pattern from today
// through today+horizon in the pattern's own timezone. Generation is
// idempotent, so overlapping runs only ever add the missing tail.
func (j *HorizonJobs) ExtendPatternHorizon(ctx context.Context) error {
	slog.Info("Cron: Starting pattern horizon extension job")

	patterns, err := j.patternRepo.ListAutoExtend(ctx)
	if err != nil {
		return fmt.Errorf("failed to list auto-extend patterns: %w", err)
	}

	if len(patterns) == 0 {
		slog.Info("Cron: No auto-extend patterns found")
		return nil
	}

	extended := 0
	for _, p := range patterns {
		now := time.Now().In(p.Location())
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.Location())
		to := from.AddDate(0, 0, j.horizonDays)

		created, err := j.shiftSvc.MaterializePattern(ctx, p, from, to)
		if err != nil {
			slog.Error("Cron: Failed to extend pattern horizon",
				"pattern_id", p.ID,
				"user_id", p.UserID,
				"error", err)
			continue
		}
		if created > 0 {
			extended++
		}
	}

	slog.Info("Cron: Pattern horizon extension finished",
		"patterns", len(patterns),
		"extended", extended)
	return nil
}
