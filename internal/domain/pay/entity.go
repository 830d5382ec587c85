package pay

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateRule maps a named category ("Night", "Overtime", "Holiday") to a
// pay multiplier plus an applicability predicate. All set conditions must
// hold for the rule to match. Declaration order is significant: the first
// matching rule in a ruleset wins.
type RateRule struct {
	Label      string
	Multiplier decimal.Decimal
	// Predicate: tag on the shift, weekday of the effective start, and a
	// minute-of-day window on the effective start. The window is half-open
	// [Start, End) and may wrap midnight (e.g. 1320 -> 360 for nights).
	Tag              *string
	Weekdays         []time.Weekday
	StartMinuteOfDay *int
	EndMinuteOfDay   *int
}

// Ruleset is the value-typed pay configuration threaded into every
// aggregation call; there is no ambient rate state anywhere else.
type Ruleset struct {
	ID                 string
	UserID             string
	Name               string
	BaseRateCents      int64
	UnpaidBreakMinutes int
	Rules              []RateRule
	// PeriodAnchorDate anchors biweekly period boundaries. Biweekly "week
	// one" is whatever 14-day grid this date starts, nothing ISO-week based.
	PeriodAnchorDate *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ExcludedShift is an out-of-band diagnostic for a record that contributed
// zero paid minutes to an aggregation (span inverted or fully consumed by
// the break deduction). The batch itself never fails on these.
type ExcludedShift struct {
	ShiftID string
	Reason  string
}

// Period is an aggregation window and its computed result. EstimatedPay
// is derived and always recomputable from the constituent shifts.
type Period struct {
	StartDate             time.Time
	EndDate               time.Time
	PaidMinutes           int
	PremiumMinutesByLabel map[string]int
	EstimatedPayCents     int64
	IncludedShifts        int
	ExcludedShifts        []ExcludedShift
}

type PeriodKind string

const (
	PeriodWeekly   PeriodKind = "weekly"
	PeriodBiweekly PeriodKind = "biweekly"
	PeriodMonthly  PeriodKind = "monthly"
)

var PeriodKindValues = []string{
	string(PeriodWeekly),
	string(PeriodBiweekly),
	string(PeriodMonthly),
}
