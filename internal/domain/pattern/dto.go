package pattern

import (
	"time"

	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/validator"
)

type RotationDayPayload struct {
	IsWorkDay        bool   `json:"is_work_day"`
	Label            string `json:"label"`
	StartMinuteOfDay *int   `json:"start_minute_of_day,omitempty"`
	DurationMinutes  *int   `json:"duration_minutes,omitempty"`
}

type CreatePatternRequest struct {
	Name             string               `json:"name"`
	Kind             string               `json:"kind"`
	StartMinuteOfDay *int                 `json:"start_minute_of_day"`
	DurationMinutes  *int                 `json:"duration_minutes"`
	Weekdays         []int                `json:"weekdays,omitempty"`   // 0=Sunday ... 6=Saturday
	RotationDays     []RotationDayPayload `json:"rotation_days,omitempty"`
	CycleStartDate   string               `json:"cycle_start_date,omitempty"` // YYYY-MM-DD
	Timezone         string               `json:"timezone"`
	AutoExtend       bool                 `json:"auto_extend"`
}

func (r *CreatePatternRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if !validator.IsInSlice(r.Kind, KindValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: weekly, rotating",
		})
	}
	if r.StartMinuteOfDay == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_minute_of_day",
			Message: "start_minute_of_day is required",
		})
	}
	if r.DurationMinutes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_minutes",
			Message: "duration_minutes is required",
		})
	}
	if validator.IsEmpty(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone is required",
		})
	}

	switch Kind(r.Kind) {
	case KindWeekly:
		if len(r.Weekdays) == 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "weekdays",
				Message: "weekdays is required for weekly patterns",
			})
		}
		for _, wd := range r.Weekdays {
			if wd < 0 || wd > 6 {
				errs = append(errs, validator.ValidationError{
					Field:   "weekdays",
					Message: "weekdays must be between 0 (Sunday) and 6 (Saturday)",
				})
				break
			}
		}
	case KindRotating:
		if len(r.RotationDays) < 2 {
			errs = append(errs, validator.ValidationError{
				Field:   "rotation_days",
				Message: "rotation_days must contain at least 2 entries",
			})
		}
		if validator.IsEmpty(r.CycleStartDate) {
			errs = append(errs, validator.ValidationError{
				Field:   "cycle_start_date",
				Message: "cycle_start_date is required for rotating patterns",
			})
		} else if _, ok := validator.IsValidDate(r.CycleStartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "cycle_start_date",
				Message: "cycle_start_date must use YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToPattern builds the domain entity; entity-level Validate still runs on
// the result and covers the range checks.
func (r *CreatePatternRequest) ToPattern(userID string) Pattern {
	p := Pattern{
		UserID:     userID,
		Name:       r.Name,
		Kind:       Kind(r.Kind),
		Timezone:   r.Timezone,
		AutoExtend: r.AutoExtend,
	}
	if r.StartMinuteOfDay != nil {
		p.StartMinuteOfDay = *r.StartMinuteOfDay
	}
	if r.DurationMinutes != nil {
		p.DurationMinutes = *r.DurationMinutes
	}
	for _, wd := range r.Weekdays {
		p.Weekdays = append(p.Weekdays, time.Weekday(wd))
	}
	for i, rd := range r.RotationDays {
		p.RotationDays = append(p.RotationDays, RotationDay{
			Index:            i,
			IsWorkDay:        rd.IsWorkDay,
			Label:            rd.Label,
			StartMinuteOfDay: rd.StartMinuteOfDay,
			DurationMinutes:  rd.DurationMinutes,
		})
	}
	if date, ok := validator.IsValidDate(r.CycleStartDate); ok {
		p.CycleStartDate = date
	}
	return p
}

type UpdatePatternRequest struct {
	ID               string               `json:"-"`
	Name             *string              `json:"name,omitempty"`
	StartMinuteOfDay *int                 `json:"start_minute_of_day,omitempty"`
	DurationMinutes  *int                 `json:"duration_minutes,omitempty"`
	Weekdays         []int                `json:"weekdays,omitempty"`
	RotationDays     []RotationDayPayload `json:"rotation_days,omitempty"`
	CycleStartDate   *string              `json:"cycle_start_date,omitempty"`
	AutoExtend       *bool                `json:"auto_extend,omitempty"`
}

func (r *UpdatePatternRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.CycleStartDate != nil {
		if _, ok := validator.IsValidDate(*r.CycleStartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "cycle_start_date",
				Message: "cycle_start_date must use YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PreviewRequest struct {
	PatternID string `json:"-"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	Months    int    `json:"months"`
}

func (r *PreviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.PatternID) {
		errs = append(errs, validator.ValidationError{
			Field:   "pattern_id",
			Message: "pattern_id must be a valid UUID",
		})
	}
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must use YYYY-MM-DD format",
		})
	}
	if r.Months < 1 || r.Months > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "months",
			Message: "months must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RotationDayResponse struct {
	Index            int    `json:"index"`
	IsWorkDay        bool   `json:"is_work_day"`
	Label            string `json:"label"`
	StartMinuteOfDay *int   `json:"start_minute_of_day,omitempty"`
	DurationMinutes  *int   `json:"duration_minutes,omitempty"`
}

type PatternResponse struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Kind             string                `json:"kind"`
	StartMinuteOfDay int                   `json:"start_minute_of_day"`
	DurationMinutes  int                   `json:"duration_minutes"`
	Weekdays         []int                 `json:"weekdays,omitempty"`
	RotationDays     []RotationDayResponse `json:"rotation_days,omitempty"`
	CycleStartDate   *string               `json:"cycle_start_date,omitempty"`
	Timezone         string                `json:"timezone"`
	AutoExtend       bool                  `json:"auto_extend"`
	CreatedAt        string                `json:"created_at"`
	UpdatedAt        string                `json:"updated_at"`
}

type OccurrenceResponse struct {
	Date           string `json:"date"` // anchor day, YYYY-MM-DD
	ScheduledStart string `json:"scheduled_start"`
	ScheduledEnd   string `json:"scheduled_end"`
	Title          string `json:"title"`
}

type PreviewResponse struct {
	PatternID   string               `json:"pattern_id"`
	StartDate   string               `json:"start_date"`
	EndDate     string               `json:"end_date"`
	Occurrences []OccurrenceResponse `json:"occurrences"`
}
