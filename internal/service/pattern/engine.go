package pattern

import (
	"time"

	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pattern"
)

// Occurrence is one concrete dated expansion of a pattern. Date is the
// anchor day (the scheduled start's local day) even when the shift runs
// past midnight; End is always strictly after Start.
type Occurrence struct {
	Date  time.Time
	Start time.Time
	End   time.Time
	Title string
}

// Expand deterministically expands a valid pattern over the inclusive day
// window [from, to] in the pattern's timezone. It is a pure function:
// expanding the same pattern over the same window always yields
// value-identical occurrences, and a window with from after to yields an
// empty slice rather than an error.
func Expand(p pattern.Pattern, from, to time.Time) []Occurrence {
	loc := p.Location()
	fromDay := civilDate(from, loc)
	toDay := civilDate(to, loc)

	occurrences := []Occurrence{}
	for day := fromDay; !day.After(toDay); day = day.AddDate(0, 0, 1) {
		if occ, ok := occurrenceOn(p, day, loc); ok {
			occurrences = append(occurrences, occ)
		}
	}
	return occurrences
}

// Preview expands a pattern from startDate over a whole-month horizon,
// bounded and finite. The window is [startDate, startDate+months-1day].
func Preview(p pattern.Pattern, startDate time.Time, months int) []Occurrence {
	loc := p.Location()
	fromDay := civilDate(startDate, loc)
	toDay := fromDay.AddDate(0, months, 0).AddDate(0, 0, -1)
	return Expand(p, fromDay, toDay)
}

// occurrenceOn evaluates a single anchor day against the pattern.
func occurrenceOn(p pattern.Pattern, day time.Time, loc *time.Location) (Occurrence, bool) {
	startMinute := p.StartMinuteOfDay
	duration := p.DurationMinutes
	title := p.Name

	switch p.Kind {
	case pattern.KindWeekly:
		if !containsWeekday(p.Weekdays, day.Weekday()) {
			return Occurrence{}, false
		}
	case pattern.KindRotating:
		offset := cycleOffset(civilDate(p.CycleStartDate, loc), day, p.CycleLength())
		rotationDay := p.RotationDays[offset]
		if !rotationDay.IsWorkDay {
			return Occurrence{}, false
		}
		// Rotation days may override the pattern-level timing.
		if rotationDay.StartMinuteOfDay != nil {
			startMinute = *rotationDay.StartMinuteOfDay
		}
		if rotationDay.DurationMinutes != nil {
			duration = *rotationDay.DurationMinutes
		}
		if rotationDay.Label != "" {
			title = rotationDay.Label
		}
	default:
		return Occurrence{}, false
	}

	start, end := composeSpan(day, startMinute, duration, loc)
	return Occurrence{
		Date:  day,
		Start: start,
		End:   end,
		Title: title,
	}, true
}

// composeSpan builds scheduled start/end with wall-clock minute-of-day
// semantics: the end is the minute-of-day the duration lands on, on
// whatever later calendar day that is. Across a DST transition the elapsed
// real-world duration therefore differs from the nominal one; that is the
// documented behavior, not a bug.
func composeSpan(day time.Time, startMinute, durationMinutes int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(),
		startMinute/60, startMinute%60, 0, 0, loc)

	endTotal := startMinute + durationMinutes
	endDay := day.AddDate(0, 0, endTotal/(24*60))
	endMinute := endTotal % (24 * 60)
	end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(),
		endMinute/60, endMinute%60, 0, 0, loc)

	return start, end
}

// cycleOffset computes which rotation slot applies on day, anchored at the
// unclamped cycle start. Uses a mathematical modulo so days before the
// cycle start wrap to the correct slot instead of going negative.
func cycleOffset(cycleStart, day time.Time, cycleLength int) int {
	days := daysBetween(cycleStart, day)
	return ((days % cycleLength) + cycleLength) % cycleLength
}

// daysBetween counts whole civil days from a to b, negative when b is
// earlier. Both are compared as dates; DST offsets cannot skew the count.
func daysBetween(a, b time.Time) int {
	aEpoch := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC).Unix()
	bEpoch := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC).Unix()
	return int((bEpoch - aEpoch) / (24 * 60 * 60))
}

// civilDate normalizes a timestamp to midnight of its day in loc.
func civilDate(t time.Time, loc *time.Location) time.Time {
	tl := t.In(loc)
	if t.Location() == time.UTC && t.Equal(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)) {
		// Plain YYYY-MM-DD inputs are parsed as UTC midnight; keep the
		// calendar day the caller named instead of shifting it into loc.
		tl = t
	}
	return time.Date(tl.Year(), tl.Month(), tl.Day(), 0, 0, 0, 0, loc)
}

func containsWeekday(set []time.Weekday, wd time.Weekday) bool {
	for _, d := range set {
		if d == wd {
			return true
		}
	}
	return false
}
