package pattern

import (
	"time"

	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/validator"
)

type Kind string

const (
	KindWeekly   Kind = "weekly"
	KindRotating Kind = "rotating"
)

var KindValues = []string{
	string(KindWeekly),
	string(KindRotating),
}

// RotationDay is one slot in a rotating pattern's cycle. A work day may
// override the pattern-level timing; off days carry no timing at all.
type RotationDay struct {
	Index            int
	IsWorkDay        bool
	Label            string
	StartMinuteOfDay *int
	DurationMinutes  *int
}

// Pattern is an immutable description of a recurring schedule. Exactly one
// of the weekly fields (Weekdays) or the rotating fields (RotationDays,
// CycleStartDate) is meaningful per Kind; the other is never consulted.
type Pattern struct {
	ID               string
	UserID           string
	Name             string
	Kind             Kind
	StartMinuteOfDay int // minutes after local midnight, [0, 1440)
	DurationMinutes  int // [1, 1440]; may cross midnight
	Weekdays         []time.Weekday
	RotationDays     []RotationDay
	CycleStartDate   time.Time // date at which RotationDays[0] applies
	Timezone         string    // IANA name, e.g. "Europe/Berlin"
	AutoExtend       bool      // horizon job keeps shifts materialized ahead
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// Validate rejects malformed definitions before any expansion is attempted.
// A pattern that passes here can be expanded over any window without error.
func (p *Pattern) Validate() error {
	var errs validator.ValidationErrors

	if p.Kind != KindWeekly && p.Kind != KindRotating {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: weekly, rotating",
		})
	}
	if !validator.IsMinuteOfDay(p.StartMinuteOfDay) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_minute_of_day",
			Message: "start_minute_of_day must be in [0, 1440)",
		})
	}
	if p.DurationMinutes < 1 || p.DurationMinutes > 24*60 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_minutes",
			Message: "duration_minutes must be in [1, 1440]",
		})
	}
	if !validator.IsValidTimezone(p.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA timezone name",
		})
	}

	switch p.Kind {
	case KindWeekly:
		if len(p.Weekdays) == 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "weekdays",
				Message: "weekly patterns require at least one weekday",
			})
		}
		seen := map[time.Weekday]bool{}
		for _, wd := range p.Weekdays {
			if wd < time.Sunday || wd > time.Saturday {
				errs = append(errs, validator.ValidationError{
					Field:   "weekdays",
					Message: "weekdays must be valid days of the week",
				})
				break
			}
			if seen[wd] {
				errs = append(errs, validator.ValidationError{
					Field:   "weekdays",
					Message: "weekdays must not repeat",
				})
				break
			}
			seen[wd] = true
		}
	case KindRotating:
		if len(p.RotationDays) < 2 {
			errs = append(errs, validator.ValidationError{
				Field:   "rotation_days",
				Message: "rotating patterns require a cycle of at least 2 days",
			})
		}
		if p.CycleStartDate.IsZero() {
			errs = append(errs, validator.ValidationError{
				Field:   "cycle_start_date",
				Message: "cycle_start_date is required for rotating patterns",
			})
		}
		for _, rd := range p.RotationDays {
			if rd.StartMinuteOfDay != nil && !validator.IsMinuteOfDay(*rd.StartMinuteOfDay) {
				errs = append(errs, validator.ValidationError{
					Field:   "rotation_days",
					Message: "rotation day start_minute_of_day must be in [0, 1440)",
				})
				break
			}
			if rd.DurationMinutes != nil && (*rd.DurationMinutes < 1 || *rd.DurationMinutes > 24*60) {
				errs = append(errs, validator.ValidationError{
					Field:   "rotation_days",
					Message: "rotation day duration_minutes must be in [1, 1440]",
				})
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Location resolves the pattern's timezone. Validate guarantees this
// succeeds for a valid pattern; the UTC fallback keeps callers total.
func (p *Pattern) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CycleLength returns the rotation cycle length in days.
func (p *Pattern) CycleLength() int {
	return len(p.RotationDays)
}
