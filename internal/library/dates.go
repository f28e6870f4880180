package library

import (
	"fmt"
	"time"
)

// DueDateLayout is the wire format for calendar dates chosen by the operator.
const DueDateLayout = "2006-01-02"

// dueHour pins stored due dates to midday local time. Storing the chosen
// calendar date at a neutral hour keeps the day from shifting when the
// timestamp is later rendered with a different timezone offset.
const dueHour = 12

// ParseDueDate parses an operator-supplied YYYY-MM-DD string and normalizes
// it to midday local time on that calendar day.
func ParseDueDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DueDateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, value)
	}
	return NormalizeDueDate(parsed), nil
}

// NormalizeDueDate returns t's calendar day at midday in t's location.
func NormalizeDueDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, dueHour, 0, 0, 0, t.Location())
}

// StartOfDay returns midnight local time of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	local := t.In(time.Local)
	year, month, day := local.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// SameCalendarDay reports whether a and b fall on the same local calendar
// day. Both the overdue check and the scheduled-returns report extract
// days through this one path so their boundaries cannot diverge.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.In(time.Local).Date()
	by, bm, bd := b.In(time.Local).Date()
	return ay == by && am == bm && ad == bd
}
