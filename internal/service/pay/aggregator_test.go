package pay

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pay"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour, minute int) time.Time {
	return time.Date(y, m, d, hour, minute, 0, 0, time.UTC)
}

func strPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func timePtr(v time.Time) *time.Time {
	return &v
}

// shiftAt builds a scheduled shift of the given length in minutes.
func shiftAt(id string, start time.Time, minutes int) shift.Shift {
	return shift.Shift{
		ID:             id,
		UserID:         "u1",
		Date:           day(start.Year(), start.Month(), start.Day()),
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Duration(minutes) * time.Minute),
		Title:          "Shift",
		Status:         shift.StatusScheduled,
	}
}

func plainRuleset(baseRateCents int64) pay.Ruleset {
	return pay.Ruleset{
		ID:            "rs1",
		UserID:        "u1",
		Name:          "Default",
		BaseRateCents: baseRateCents,
	}
}

func TestPaidMinutesUsesScheduledSpanAndDefaultBreak(t *testing.T) {
	rs := plainRuleset(2000)
	rs.UnpaidBreakMinutes = 30

	s := shiftAt("s1", at(2026, time.March, 2, 9, 0), 8*60)
	assert.Equal(t, 8*60-30, PaidMinutes(s, rs))
}

func TestPaidMinutesPrefersActualTimesAndShiftBreak(t *testing.T) {
	rs := plainRuleset(2000)
	rs.UnpaidBreakMinutes = 30

	s := shiftAt("s1", at(2026, time.March, 2, 9, 0), 8*60)
	s.ActualStart = timePtr(at(2026, time.March, 2, 9, 12))
	s.ActualEnd = timePtr(at(2026, time.March, 2, 17, 42))
	s.BreakMinutes = intPtr(45)

	// 8h30m actual span minus the shift's own 45m break.
	assert.Equal(t, 510-45, PaidMinutes(s, rs))
}

func TestPaidMinutesClampsToZero(t *testing.T) {
	rs := plainRuleset(2000)
	rs.UnpaidBreakMinutes = 60

	// Break longer than the shift.
	short := shiftAt("s1", at(2026, time.March, 2, 9, 0), 45)
	assert.Equal(t, 0, PaidMinutes(short, rs))

	// Inverted actual span.
	inverted := shiftAt("s2", at(2026, time.March, 2, 9, 0), 8*60)
	inverted.ActualStart = timePtr(at(2026, time.March, 2, 17, 0))
	inverted.ActualEnd = timePtr(at(2026, time.March, 2, 9, 0))
	assert.Equal(t, 0, PaidMinutes(inverted, rs))
}

func TestClassifyFirstMatchingRuleWins(t *testing.T) {
	rs := plainRuleset(2000)
	rs.Rules = []pay.RateRule{
		{Label: "Holiday", Multiplier: decimal.NewFromFloat(2.0), Tag: strPtr("holiday")},
		{Label: "Weekend", Multiplier: decimal.NewFromFloat(1.5), Weekdays: []time.Weekday{time.Saturday, time.Sunday}},
		{Label: "Night", Multiplier: decimal.NewFromFloat(1.3), StartMinuteOfDay: intPtr(22 * 60), EndMinuteOfDay: intPtr(6 * 60)},
	}

	// Saturday night shift tagged holiday: holiday declared first, wins.
	s := shiftAt("s1", at(2026, time.March, 7, 23, 0), 8*60)
	s.RateTag = strPtr("holiday")
	label, mult := Classify(s, rs)
	assert.Equal(t, "Holiday", label)
	assert.True(t, mult.Equal(decimal.NewFromFloat(2.0)))

	// Same shift without the tag falls through to the weekend rule.
	s.RateTag = nil
	label, mult = Classify(s, rs)
	assert.Equal(t, "Weekend", label)
	assert.True(t, mult.Equal(decimal.NewFromFloat(1.5)))

	// Weeknight shift only matches the wrap-around night window.
	wednesdayNight := shiftAt("s2", at(2026, time.March, 4, 23, 0), 8*60)
	label, mult = Classify(wednesdayNight, rs)
	assert.Equal(t, "Night", label)
	assert.True(t, mult.Equal(decimal.NewFromFloat(1.3)))

	// Weekday daytime shift matches nothing: plain time, no label.
	daytime := shiftAt("s3", at(2026, time.March, 4, 9, 0), 8*60)
	label, mult = Classify(daytime, rs)
	assert.Equal(t, "", label)
	assert.True(t, mult.Equal(decimal.NewFromInt(1)))
}

func TestNightWindowWrapsMidnight(t *testing.T) {
	rs := plainRuleset(2000)
	rs.Rules = []pay.RateRule{
		{Label: "Night", Multiplier: decimal.NewFromFloat(1.3), StartMinuteOfDay: intPtr(22 * 60), EndMinuteOfDay: intPtr(6 * 60)},
	}

	early := shiftAt("s1", at(2026, time.March, 3, 5, 30), 4*60)
	label, _ := Classify(early, rs)
	assert.Equal(t, "Night", label)

	morning := shiftAt("s2", at(2026, time.March, 3, 6, 0), 4*60)
	label, _ = Classify(morning, rs)
	assert.Equal(t, "", label)
}

func TestAggregateHalfOpenBoundary(t *testing.T) {
	rs := plainRuleset(2000)

	periodStart := day(2026, time.March, 2)
	periodEnd := day(2026, time.March, 16)

	inside := shiftAt("inside", at(2026, time.March, 15, 9, 0), 4*60)
	onBoundary := shiftAt("boundary", at(2026, time.March, 16, 0, 0), 4*60)

	first := Aggregate([]shift.Shift{inside, onBoundary}, periodStart, periodEnd, rs)
	assert.Equal(t, 4*60, first.PaidMinutes, "boundary shift belongs to the next period")
	assert.Equal(t, 1, first.IncludedShifts)

	second := Aggregate([]shift.Shift{inside, onBoundary}, periodEnd, periodEnd.AddDate(0, 0, 14), rs)
	assert.Equal(t, 4*60, second.PaidMinutes, "boundary shift included exactly once")
	assert.Equal(t, 1, second.IncludedShifts)
}

func TestAggregateRoundingIsOrderStable(t *testing.T) {
	rs := plainRuleset(2000)

	// Three shifts of exactly 20 minutes each: 1/3 hour apiece.
	shifts := []shift.Shift{
		shiftAt("a", at(2026, time.March, 2, 9, 0), 20),
		shiftAt("b", at(2026, time.March, 3, 9, 0), 20),
		shiftAt("c", at(2026, time.March, 4, 9, 0), 20),
	}

	from := day(2026, time.March, 2)
	to := day(2026, time.March, 9)

	want := Aggregate(shifts, from, to, rs).EstimatedPayCents
	assert.Equal(t, int64(2000), want, "3 x 20min at 2000c/h is exactly one hour")

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]shift.Shift, len(shifts))
		copy(shuffled, shifts)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, Aggregate(shuffled, from, to, rs).EstimatedPayCents)
	}
}

func TestAggregatePayScenarios(t *testing.T) {
	from := day(2026, time.March, 2)
	to := day(2026, time.March, 9)

	// 8h at multiplier 1.5 on 2000c/h: 8 * 2000 * 1.5 = 24000, exact.
	premium := plainRuleset(2000)
	premium.Rules = []pay.RateRule{
		{Label: "Overtime", Multiplier: decimal.NewFromFloat(1.5), Tag: strPtr("overtime")},
	}
	overtimeShift := shiftAt("ot", at(2026, time.March, 2, 9, 0), 8*60)
	overtimeShift.RateTag = strPtr("overtime")

	period := Aggregate([]shift.Shift{overtimeShift}, from, to, premium)
	assert.Equal(t, int64(24000), period.EstimatedPayCents)
	assert.Equal(t, 8*60, period.PaidMinutes)
	assert.Equal(t, map[string]int{"Overtime": 8 * 60}, period.PremiumMinutesByLabel)

	// 20 minutes at multiplier 1.0: raw 666.67 rounds to 667.
	plain := plainRuleset(2000)
	third := shiftAt("third", at(2026, time.March, 2, 9, 0), 20)

	period = Aggregate([]shift.Shift{third}, from, to, plain)
	assert.Equal(t, int64(667), period.EstimatedPayCents)
}

func TestAggregateRulesSharingLabelKeepOwnMultipliers(t *testing.T) {
	rs := plainRuleset(2000)
	rs.Rules = []pay.RateRule{
		{Label: "Night", Multiplier: decimal.NewFromFloat(1.5), Tag: strPtr("event")},
		{Label: "Night", Multiplier: decimal.NewFromFloat(1.3), StartMinuteOfDay: intPtr(22 * 60), EndMinuteOfDay: intPtr(6 * 60)},
	}

	tagged := shiftAt("tagged", at(2026, time.March, 2, 9, 0), 60)
	tagged.RateTag = strPtr("event")
	late := shiftAt("late", at(2026, time.March, 3, 23, 0), 60)

	from := day(2026, time.March, 2)
	to := day(2026, time.March, 9)

	// 1h at 1.5 plus 1h at 1.3 on 2000c/h: 3000 + 2600, in either order.
	forward := Aggregate([]shift.Shift{tagged, late}, from, to, rs)
	assert.Equal(t, int64(5600), forward.EstimatedPayCents)
	assert.Equal(t, map[string]int{"Night": 120}, forward.PremiumMinutesByLabel)

	reversed := Aggregate([]shift.Shift{late, tagged}, from, to, rs)
	assert.Equal(t, forward.EstimatedPayCents, reversed.EstimatedPayCents)
}

func TestAggregateToleratesDegenerateShifts(t *testing.T) {
	rs := plainRuleset(2000)
	rs.UnpaidBreakMinutes = 30

	good := shiftAt("good", at(2026, time.March, 2, 9, 0), 8*60)
	bad := shiftAt("bad", at(2026, time.March, 3, 9, 0), 8*60)
	bad.ActualStart = timePtr(at(2026, time.March, 3, 17, 0))
	bad.ActualEnd = timePtr(at(2026, time.March, 3, 9, 0))

	period := Aggregate([]shift.Shift{good, bad}, day(2026, time.March, 2), day(2026, time.March, 9), rs)

	assert.Equal(t, 8*60-30, period.PaidMinutes, "bad record contributes zero, batch continues")
	require.Len(t, period.ExcludedShifts, 1)
	assert.Equal(t, "bad", period.ExcludedShifts[0].ShiftID)
	assert.Equal(t, "non-positive paid duration", period.ExcludedShifts[0].Reason)
}

func TestAggregateSkipsCancelledShifts(t *testing.T) {
	rs := plainRuleset(2000)

	worked := shiftAt("worked", at(2026, time.March, 2, 9, 0), 4*60)
	cancelled := shiftAt("cancelled", at(2026, time.March, 3, 9, 0), 4*60)
	cancelled.Status = shift.StatusCancelled

	period := Aggregate([]shift.Shift{worked, cancelled}, day(2026, time.March, 2), day(2026, time.March, 9), rs)
	assert.Equal(t, 4*60, period.PaidMinutes)
	assert.Equal(t, 1, period.IncludedShifts)
	assert.Empty(t, period.ExcludedShifts)
}

func TestAggregateIsIdempotent(t *testing.T) {
	rs := plainRuleset(2350)
	rs.Rules = []pay.RateRule{
		{Label: "Night", Multiplier: decimal.NewFromFloat(1.3), StartMinuteOfDay: intPtr(22 * 60), EndMinuteOfDay: intPtr(6 * 60)},
	}

	shifts := []shift.Shift{
		shiftAt("a", at(2026, time.March, 2, 22, 0), 8*60),
		shiftAt("b", at(2026, time.March, 3, 9, 0), 7*60),
		shiftAt("c", at(2026, time.March, 5, 9, 30), 410),
	}

	from := day(2026, time.March, 2)
	to := day(2026, time.March, 9)

	first := Aggregate(shifts, from, to, rs)
	second := Aggregate(shifts, from, to, rs)
	assert.Equal(t, first, second)
}

func TestPeriodBounds(t *testing.T) {
	// Weekly: Monday-start week containing a Thursday.
	start, end, err := PeriodBounds(pay.PeriodWeekly, day(2026, time.March, 5), nil)
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.March, 2), start)
	assert.Equal(t, day(2026, time.March, 9), end)

	// Biweekly: aligned to the anchor's 14-day grid, not ISO weeks.
	anchor := day(2026, time.January, 5)
	start, end, err = PeriodBounds(pay.PeriodBiweekly, day(2026, time.January, 20), &anchor)
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.January, 19), start)
	assert.Equal(t, day(2026, time.February, 2), end)

	// Biweekly before the anchor wraps onto the same grid.
	start, end, err = PeriodBounds(pay.PeriodBiweekly, day(2025, time.December, 30), &anchor)
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.December, 22), start)
	assert.Equal(t, day(2026, time.January, 5), end)

	// Biweekly without an anchor is a caller error.
	_, _, err = PeriodBounds(pay.PeriodBiweekly, day(2026, time.January, 20), nil)
	assert.ErrorIs(t, err, pay.ErrMissingAnchorDate)

	// Monthly: calendar month.
	start, end, err = PeriodBounds(pay.PeriodMonthly, day(2026, time.February, 14), nil)
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.February, 1), start)
	assert.Equal(t, day(2026, time.March, 1), end)
}
