package schedule

import (
	"fmt"
	"time"
)

// ShortDateLayout is the date format used in the schedule's first column.
const ShortDateLayout = "02-01"

// NextSaturday returns the date of the coming Saturday, or of today when
// now is a Saturday. The clock time is dropped.
func NextSaturday(now time.Time) time.Time {
	days := (int(time.Saturday) - int(now.Weekday()) + 7) % 7
	y, m, d := now.Date()
	return time.Date(y, m, d+days, 0, 0, 0, 0, now.Location())
}

// ShortDate formats t as DD-MM.
func ShortDate(t time.Time) string {
	return t.Format(ShortDateLayout)
}

// TargetDate is the DD-MM token of the Saturday the reminder is for.
func TargetDate(now time.Time) string {
	return ShortDate(NextSaturday(now))
}

// ParseShortDate parses a DD-MM token ("5-07" and "05-07" are both accepted)
// into a date in year, in loc.
func ParseShortDate(s string, year int, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("2-1", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want DD-MM: %w", s, err)
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}
