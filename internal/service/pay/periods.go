package pay

import (
	"time"

	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pay"
)

// PeriodBounds resolves the half-open window [start, end) of the pay
// period containing date. Weekly periods start on Monday. Biweekly
// periods are a 14-day grid aligned to the supplied anchor date; ISO
// week parity is not consulted. Monthly periods are calendar months.
func PeriodBounds(kind pay.PeriodKind, date time.Time, anchor *time.Time) (time.Time, time.Time, error) {
	day := truncateToDay(date)

	switch kind {
	case pay.PeriodWeekly:
		// Monday-start week containing day.
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), nil

	case pay.PeriodBiweekly:
		if anchor == nil {
			return time.Time{}, time.Time{}, pay.ErrMissingAnchorDate
		}
		anchorDay := truncateToDay(*anchor)
		days := int(day.Sub(anchorDay) / (24 * time.Hour))
		offset := ((days % 14) + 14) % 14
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 14), nil

	case pay.PeriodMonthly:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return start, start.AddDate(0, 1, 0), nil
	}

	return time.Time{}, time.Time{}, pay.ErrInvalidRequestData
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
