package pay

import (
	"time"

	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pay"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

// PaidMinutes returns the paid span of a single shift in whole minutes:
// effective end minus effective start, minus the shift's own break if set,
// else the ruleset's default deduction, clamped to zero. A malformed span
// never produces an error here; it produces zero and is reported by
// Aggregate as a diagnostic.
func PaidMinutes(s shift.Shift, rs pay.Ruleset) int {
	span := int(s.EffectiveEnd().Sub(s.EffectiveStart()) / time.Minute)
	if span <= 0 {
		return 0
	}

	breakMinutes := rs.UnpaidBreakMinutes
	if s.BreakMinutes != nil {
		breakMinutes = *s.BreakMinutes
	}

	paid := span - breakMinutes
	if paid < 0 {
		return 0
	}
	return paid
}

// Classify resolves the rate label and multiplier for a shift. Rules are
// evaluated in declaration order and the first match wins; with no match
// the shift is plain time at multiplier 1 with no label.
func Classify(s shift.Shift, rs pay.Ruleset) (string, decimal.Decimal) {
	start := s.EffectiveStart()
	for _, rule := range rs.Rules {
		if ruleMatches(rule, s, start) {
			return rule.Label, rule.Multiplier
		}
	}
	return "", decimal.NewFromInt(1)
}

func ruleMatches(rule pay.RateRule, s shift.Shift, start time.Time) bool {
	if rule.Tag != nil {
		if s.RateTag == nil || *s.RateTag != *rule.Tag {
			return false
		}
	}

	if len(rule.Weekdays) > 0 {
		found := false
		for _, wd := range rule.Weekdays {
			if wd == start.Weekday() {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if rule.StartMinuteOfDay != nil && rule.EndMinuteOfDay != nil {
		minute := start.Hour()*60 + start.Minute()
		lo, hi := *rule.StartMinuteOfDay, *rule.EndMinuteOfDay
		switch {
		case lo < hi: // plain window [lo, hi)
			if minute < lo || minute >= hi {
				return false
			}
		case lo > hi: // wraps midnight, e.g. 22:00 -> 06:00
			if minute < lo && minute >= hi {
				return false
			}
		default: // empty window matches nothing
			return false
		}
	}

	return true
}

// Aggregate computes a pay period over the half-open window [from, to):
// a shift whose effective start lands exactly on to belongs to the next
// period, never both. Degenerate records contribute zero minutes and a
// diagnostic instead of failing the batch.
func Aggregate(shifts []shift.Shift, from, to time.Time, rs pay.Ruleset) pay.Period {
	period := pay.Period{
		StartDate:             from,
		EndDate:               to,
		PremiumMinutesByLabel: make(map[string]int),
	}

	baseRate := decimal.NewFromInt(rs.BaseRateCents)
	minuteCents := decimal.Zero

	for _, s := range shifts {
		start := s.EffectiveStart()
		if start.Before(from) || !start.Before(to) {
			continue
		}
		if s.Status == shift.StatusCancelled {
			continue
		}

		paid := PaidMinutes(s, rs)
		if paid == 0 {
			period.ExcludedShifts = append(period.ExcludedShifts, pay.ExcludedShift{
				ShiftID: s.ID,
				Reason:  "non-positive paid duration",
			})
			continue
		}

		label, multiplier := Classify(s, rs)

		// Each shift is priced with the multiplier of the rule that
		// matched it, so rules sharing a label never cross-contaminate.
		// The exact minute-cent sum is divided by 60 and rounded
		// half-to-even once at the end; shift order cannot change it.
		paidDec := decimal.NewFromInt(int64(paid))
		minuteCents = minuteCents.Add(paidDec.Mul(baseRate).Mul(multiplier))

		period.IncludedShifts++
		period.PaidMinutes += paid
		if label != "" {
			period.PremiumMinutesByLabel[label] += paid
		}
	}

	period.EstimatedPayCents = minuteCents.Div(decimal.NewFromInt(60)).RoundBank(0).IntPart()

	return period
}
