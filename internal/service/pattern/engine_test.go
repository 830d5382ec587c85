package pattern

import (
	"testing"
	"time"

	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pattern"
	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int {
	return &v
}

// fourOnFourOff is the canonical rotating fixture: 4 work days then 4 off,
// 07:00 start, 12h duration, cycle anchored at 2026-01-01.
func fourOnFourOff() pattern.Pattern {
	days := make([]pattern.RotationDay, 0, 8)
	for i := 0; i < 8; i++ {
		days = append(days, pattern.RotationDay{
			Index:     i,
			IsWorkDay: i < 4,
			Label:     "Day",
		})
	}
	return pattern.Pattern{
		Name:             "4-on-4-off",
		Kind:             pattern.KindRotating,
		StartMinuteOfDay: 420,
		DurationMinutes:  720,
		RotationDays:     days,
		CycleStartDate:   date(2026, time.January, 1),
		Timezone:         "UTC",
	}
}

func weeklyMonWed() pattern.Pattern {
	return pattern.Pattern{
		Name:             "Early shift",
		Kind:             pattern.KindWeekly,
		StartMinuteOfDay: 9 * 60,
		DurationMinutes:  8 * 60,
		Weekdays:         []time.Weekday{time.Monday, time.Wednesday},
		Timezone:         "UTC",
	}
}

func TestExpandIsDeterministic(t *testing.T) {
	p := fourOnFourOff()
	from := date(2026, time.January, 1)
	to := date(2026, time.March, 31)

	first := Expand(p, from, to)
	second := Expand(p, from, to)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestWeeklyCoverageOverFourteenDays(t *testing.T) {
	p := weeklyMonWed()

	// Any 14-day window holds exactly two Mondays and two Wednesdays.
	for offset := 0; offset < 7; offset++ {
		from := date(2026, time.February, 2).AddDate(0, 0, offset)
		to := from.AddDate(0, 0, 13)

		occurrences := Expand(p, from, to)
		assert.Len(t, occurrences, 4, "window starting %s", from.Format("2006-01-02"))

		for _, occ := range occurrences {
			wd := occ.Date.Weekday()
			assert.True(t, wd == time.Monday || wd == time.Wednesday)
		}
	}
}

func TestRotationRepeatsAfterFullCycle(t *testing.T) {
	p := fourOnFourOff()
	anchor := p.CycleStartDate

	atAnchor := Expand(p, anchor, anchor)
	oneCycleLater := Expand(p, anchor.AddDate(0, 0, 8), anchor.AddDate(0, 0, 8))

	require.Len(t, atAnchor, 1)
	require.Len(t, oneCycleLater, 1)

	// Same slot: identical wall-clock timing, eight days apart.
	assert.Equal(t, atAnchor[0].Start.AddDate(0, 0, 8), oneCycleLater[0].Start)
	assert.Equal(t, atAnchor[0].End.AddDate(0, 0, 8), oneCycleLater[0].End)
	assert.Equal(t, atAnchor[0].Title, oneCycleLater[0].Title)
}

func TestRotationBeforeCycleStartWrapsCorrectly(t *testing.T) {
	p := fourOnFourOff()

	// One full cycle before the anchor must resolve to slot 0, a work day.
	dayBefore := p.CycleStartDate.AddDate(0, 0, -8)
	occurrences := Expand(p, dayBefore, dayBefore)
	require.Len(t, occurrences, 1)
	assert.Equal(t, dayBefore, occurrences[0].Date)

	// Four days before the anchor sits in the off half of the cycle.
	offDay := p.CycleStartDate.AddDate(0, 0, -4)
	assert.Empty(t, Expand(p, offDay, offDay))
}

func TestRotationOffsetAnchoredToUnclampedCycleStart(t *testing.T) {
	p := fourOnFourOff()

	// Expanding a window that excludes the cycle start must still anchor
	// offsets at the cycle start, not at the window's from date.
	from := date(2026, time.January, 5) // slot 4: off
	to := date(2026, time.January, 12)
	occurrences := Expand(p, from, to)

	var dates []string
	for _, occ := range occurrences {
		dates = append(dates, occ.Date.Format("2006-01-02"))
	}
	assert.Equal(t, []string{"2026-01-09", "2026-01-10", "2026-01-11", "2026-01-12"}, dates)
}

func TestOvernightShiftEndsOnNextDay(t *testing.T) {
	p := pattern.Pattern{
		Name:             "Night shift",
		Kind:             pattern.KindWeekly,
		StartMinuteOfDay: 1320, // 22:00
		DurationMinutes:  600,  // 10h
		Weekdays:         []time.Weekday{time.Friday},
		Timezone:         "UTC",
	}

	day := date(2026, time.January, 2) // a Friday
	occurrences := Expand(p, day, day)
	require.Len(t, occurrences, 1)

	occ := occurrences[0]
	assert.Equal(t, day, occ.Date, "anchor date stays the start day")
	assert.Equal(t, 22, occ.Start.Hour())
	assert.Equal(t, day.AddDate(0, 0, 1).Day(), occ.End.Day())
	assert.Equal(t, 8, occ.End.Hour())
	assert.True(t, occ.End.After(occ.Start))
}

func TestMultiDayDurationKeepsStartDayAnchor(t *testing.T) {
	p := weeklyMonWed()
	p.StartMinuteOfDay = 23 * 60
	p.DurationMinutes = 24 * 60 // full day from 23:00, ends 23:00 next day

	day := date(2026, time.January, 5) // a Monday
	occurrences := Expand(p, day, day)
	require.Len(t, occurrences, 1)
	assert.Equal(t, day, occurrences[0].Date)
	assert.Equal(t, day.AddDate(0, 0, 1).Day(), occurrences[0].End.Day())
}

func TestInvertedWindowYieldsEmptySequence(t *testing.T) {
	p := weeklyMonWed()
	occurrences := Expand(p, date(2026, time.March, 1), date(2026, time.February, 1))
	assert.Empty(t, occurrences)
}

func TestRotationDayTimingOverrides(t *testing.T) {
	p := fourOnFourOff()
	p.RotationDays[1].Label = "Late start"
	p.RotationDays[1].StartMinuteOfDay = intPtr(600) // 10:00
	p.RotationDays[1].DurationMinutes = intPtr(480)  // 8h

	day := date(2026, time.January, 2) // slot 1
	occurrences := Expand(p, day, day)
	require.Len(t, occurrences, 1)

	occ := occurrences[0]
	assert.Equal(t, 10, occ.Start.Hour())
	assert.Equal(t, 18, occ.End.Hour())
	assert.Equal(t, "Late start", occ.Title)
}

func TestFourOnFourOffScenario(t *testing.T) {
	p := fourOnFourOff()
	occurrences := Expand(p, date(2026, time.January, 1), date(2026, time.January, 9))

	var dates []string
	for _, occ := range occurrences {
		dates = append(dates, occ.Date.Format("2006-01-02"))
		assert.Equal(t, 7, occ.Start.Hour())
		assert.Equal(t, 19, occ.End.Hour())
	}
	assert.Equal(t, []string{
		"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-04",
		"2026-01-09",
	}, dates)
}

func TestPreviewIsBoundedByHorizon(t *testing.T) {
	p := weeklyMonWed()
	start := date(2026, time.January, 1)

	occurrences := Preview(p, start, 2)
	require.NotEmpty(t, occurrences)

	horizonEnd := start.AddDate(0, 2, 0)
	for _, occ := range occurrences {
		assert.False(t, occ.Date.Before(start))
		assert.True(t, occ.Date.Before(horizonEnd))
	}
}

func TestPreviewMatchesExpand(t *testing.T) {
	p := fourOnFourOff()
	start := date(2026, time.January, 15)

	preview := Preview(p, start, 1)
	generated := Expand(p, start, start.AddDate(0, 1, 0).AddDate(0, 0, -1))

	assert.Equal(t, generated, preview)
}

func TestWindowBoundsConvertIntoPatternZone(t *testing.T) {
	p := weeklyMonWed()
	p.Weekdays = []time.Weekday{time.Wednesday}
	p.Timezone = "America/New_York"

	// A date-only bound (exact UTC midnight) names the calendar day as-is.
	midnight := date(2026, time.January, 7) // a Wednesday
	require.Len(t, Expand(p, midnight, midnight), 1)

	// An instant seconds past UTC midnight is still Tuesday evening in
	// New York, so the same one-day window holds no Wednesday.
	instant := time.Date(2026, time.January, 7, 0, 0, 30, 0, time.UTC)
	assert.Empty(t, Expand(p, instant, instant))
}

func TestValidateRejectsMalformedDefinitions(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*pattern.Pattern)
		field  string
	}{
		{
			name:   "weekly without weekdays",
			mutate: func(p *pattern.Pattern) { p.Weekdays = nil },
			field:  "weekdays",
		},
		{
			name: "rotation shorter than two days",
			mutate: func(p *pattern.Pattern) {
				p.Kind = pattern.KindRotating
				p.Weekdays = nil
				p.RotationDays = []pattern.RotationDay{{Index: 0, IsWorkDay: true}}
				p.CycleStartDate = date(2026, time.January, 1)
			},
			field: "rotation_days",
		},
		{
			name:   "start minute out of range",
			mutate: func(p *pattern.Pattern) { p.StartMinuteOfDay = 1440 },
			field:  "start_minute_of_day",
		},
		{
			name:   "zero duration",
			mutate: func(p *pattern.Pattern) { p.DurationMinutes = 0 },
			field:  "duration_minutes",
		},
		{
			name:   "unknown timezone",
			mutate: func(p *pattern.Pattern) { p.Timezone = "Mars/Olympus_Mons" },
			field:  "timezone",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := weeklyMonWed()
			tc.mutate(&p)

			err := p.Validate()
			require.Error(t, err)

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			_, ok := errs.ToMap()[tc.field]
			assert.True(t, ok, "expected a validation error on %q, got %v", tc.field, errs)
		})
	}
}

func TestValidDefinitionsPassValidation(t *testing.T) {
	weekly := weeklyMonWed()
	assert.NoError(t, weekly.Validate())

	rotating := fourOnFourOff()
	assert.NoError(t, rotating.Validate())
}
