// Package period filters dated records into the dashboard's time windows:
// today, the current week, or the current month.
package period

import (
	"fmt"
	"time"
)

// Period identifies a reporting window relative to a reference day.
type Period string

const (
	All   Period = ""
	Today Period = "hoje"
	Week  Period = "semana"
	Month Period = "mes"
)

// Parse converts a flag value into a Period. Empty means no filtering.
func Parse(s string) (Period, error) {
	switch Period(s) {
	case All, Today, Week, Month:
		return Period(s), nil
	default:
		return All, fmt.Errorf("unknown period %q: want hoje, semana or mes", s)
	}
}

// Window returns the half-open interval [start, end) covered by the period
// around now. The week starts on Sunday.
func (p Period) Window(now time.Time) (start, end time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch p {
	case Today:
		return day, day.AddDate(0, 0, 1)
	case Week:
		start = day.AddDate(0, 0, -int(day.Weekday()))
		return start, start.AddDate(0, 0, 7)
	case Month:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	default:
		return time.Time{}, time.Time{}
	}
}

// civilDay pins t's calendar day to UTC midnight so days compare by date
// alone, regardless of the zone either side was built in.
func civilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Contains reports whether date falls inside the period around now. Entry
// dates are stored at UTC midnight while now is a local instant, so the
// comparison runs on civil days, not instants. The All period contains
// every date.
func (p Period) Contains(date, now time.Time) bool {
	if p == All {
		return true
	}
	start, end := p.Window(now)
	d := civilDay(date)
	return !d.Before(civilDay(start)) && d.Before(civilDay(end))
}

// Filter returns the items whose date falls inside the period around now.
func Filter[T any](items []T, date func(T) time.Time, p Period, now time.Time) []T {
	if p == All {
		return items
	}
	var out []T
	for _, item := range items {
		if p.Contains(date(item), now) {
			out = append(out, item)
		}
	}
	return out
}
