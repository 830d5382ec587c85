package shift

import (
	"strings"
	"time"

	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Date           string  `json:"date"` // YYYY-MM-DD
	ScheduledStart string  `json:"scheduled_start"`
	ScheduledEnd   string  `json:"scheduled_end"`
	Title          string  `json:"title"`
	BreakMinutes   *int    `json:"break_minutes,omitempty"`
	RateTag        *string `json:"rate_tag,omitempty"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must use YYYY-MM-DD format",
		})
	}

	start, startOK := validator.IsValidDateTime(r.ScheduledStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_start",
			Message: "scheduled_start must be an RFC3339 timestamp",
		})
	}
	end, endOK := validator.IsValidDateTime(r.ScheduledEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_end",
			Message: "scheduled_end must be an RFC3339 timestamp",
		})
	}
	if startOK && endOK && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_end",
			Message: "scheduled_end must be after scheduled_start",
		})
	}
	if r.BreakMinutes != nil && *r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must be a non-negative number",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ID           string  `json:"-"`
	Title        *string `json:"title,omitempty"`
	ActualStart  *string `json:"actual_start,omitempty"`
	ActualEnd    *string `json:"actual_end,omitempty"`
	BreakMinutes *int    `json:"break_minutes,omitempty"`
	RateTag      *string `json:"rate_tag,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if r.ActualStart != nil {
		if _, ok := validator.IsValidDateTime(*r.ActualStart); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "actual_start",
				Message: "actual_start must be an RFC3339 timestamp",
			})
		}
	}
	if r.ActualEnd != nil {
		if _, ok := validator.IsValidDateTime(*r.ActualEnd); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "actual_end",
				Message: "actual_end must be an RFC3339 timestamp",
			})
		}
	}
	if r.BreakMinutes != nil && *r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must be a non-negative number",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TransitionRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *TransitionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if !validator.IsInSlice(r.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(StatusValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GenerateRequest struct {
	PatternID string `json:"-"`
	FromDate  string `json:"from_date"` // YYYY-MM-DD, inclusive
	ToDate    string `json:"to_date"`   // YYYY-MM-DD, inclusive
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.PatternID) {
		errs = append(errs, validator.ValidationError{
			Field:   "pattern_id",
			Message: "pattern_id must be a valid UUID",
		})
	}
	if _, ok := validator.IsValidDate(r.FromDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must use YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(r.ToDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must use YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListRequest struct {
	FromDate string `json:"-"`
	ToDate   string `json:"-"`
}

func (r *ListRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.FromDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must use YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(r.ToDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must use YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID             string  `json:"id"`
	PatternID      *string `json:"pattern_id,omitempty"`
	Date           string  `json:"date"`
	ScheduledStart string  `json:"scheduled_start"`
	ScheduledEnd   string  `json:"scheduled_end"`
	ActualStart    *string `json:"actual_start,omitempty"`
	ActualEnd      *string `json:"actual_end,omitempty"`
	BreakMinutes   *int    `json:"break_minutes,omitempty"`
	Title          string  `json:"title"`
	RateTag        *string `json:"rate_tag,omitempty"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// GenerateResponse reports what a generation run actually persisted.
// Skipped counts occurrences that already existed with identical identity
// (date, start, end, title); regeneration never duplicates them.
type GenerateResponse struct {
	PatternID string          `json:"pattern_id"`
	FromDate  string          `json:"from_date"`
	ToDate    string          `json:"to_date"`
	Created   []ShiftResponse `json:"created"`
	Skipped   int             `json:"skipped"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:             s.ID,
		PatternID:      s.PatternID,
		Date:           s.Date.Format("2006-01-02"),
		ScheduledStart: s.ScheduledStart.Format(time.RFC3339),
		ScheduledEnd:   s.ScheduledEnd.Format(time.RFC3339),
		BreakMinutes:   s.BreakMinutes,
		Title:          s.Title,
		RateTag:        s.RateTag,
		Status:         string(s.Status),
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339),
	}
	if s.ActualStart != nil {
		v := s.ActualStart.Format(time.RFC3339)
		resp.ActualStart = &v
	}
	if s.ActualEnd != nil {
		v := s.ActualEnd.Format(time.RFC3339)
		resp.ActualEnd = &v
	}
	return resp
}
