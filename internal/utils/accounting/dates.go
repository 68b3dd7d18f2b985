package accounting

import "time"

// Date range conventions used throughout the reporting code:
//   - user-supplied report filters (from/to) are inclusive on both ends,
//     at day granularity;
//   - internal month windows are half-open [monthStart, nextMonthStart).
// Both existed inconsistently in earlier iterations of the reports; new
// aggregation code must stick to these two rules.

// MonthStart returns midnight UTC on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths shifts a month-start by n calendar months.
func AddMonths(monthStart time.Time, n int) time.Time {
	return monthStart.AddDate(0, n, 0)
}

// EndOfDay returns the last representable instant of t's calendar day in
// UTC, used to make a user-supplied "to" date inclusive.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999999999, time.UTC)
}
