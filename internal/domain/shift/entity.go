package shift

import "time"

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var StatusValues = []string{
	string(StatusScheduled),
	string(StatusInProgress),
	string(StatusCompleted),
	string(StatusCancelled),
}

// Shift is one dated occurrence of work, either materialized from a
// pattern or entered by hand. PatternID is an opaque back-pointer for
// display and regeneration only; the shift never follows it.
type Shift struct {
	ID             string
	UserID         string
	PatternID      *string
	Date           time.Time // anchor day: the scheduled start's local day
	ScheduledStart time.Time
	ScheduledEnd   time.Time // strictly after ScheduledStart, may be a later day
	ActualStart    *time.Time
	ActualEnd      *time.Time
	BreakMinutes   *int // nil = use the ruleset's default deduction
	Title          string
	RateTag        *string // explicit tag consulted by rate rules
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EffectiveStart is the actual start when logged, else the scheduled one.
func (s *Shift) EffectiveStart() time.Time {
	if s.ActualStart != nil && s.ActualEnd != nil {
		return *s.ActualStart
	}
	return s.ScheduledStart
}

// EffectiveEnd is the actual end when both actual times are logged, else
// the scheduled one. Actual times only replace the scheduled span as a
// pair; a lone clock-in does not shorten the shift.
func (s *Shift) EffectiveEnd() time.Time {
	if s.ActualStart != nil && s.ActualEnd != nil {
		return *s.ActualEnd
	}
	return s.ScheduledEnd
}

// validTransitions maps each status to the statuses a user may move it to.
var validTransitions = map[Status][]Status{
	StatusScheduled:  {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {StatusScheduled},
}

// CanTransitionTo reports whether the shift may move to the given status.
func (s *Shift) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}
