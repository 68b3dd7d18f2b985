package accounting

import "time"

// AgingBucket identifies one column of an aging report.
type AgingBucket int

const (
	BucketCurrent AgingBucket = iota
	Bucket31to60
	Bucket61to90
	BucketOver90
)

// Midnight strips the time-of-day component, returning the calendar date at
// 00:00 UTC. Both sides of an overdue calculation must pass through this so
// a same-day due invoice computes to exactly zero days regardless of the
// hour or timezone the timestamps carry.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysOverdue returns the whole number of days between the due date and the
// reference date, both normalized to midnight. Negative means not yet due.
func DaysOverdue(dueDate, asOf time.Time) int {
	return int(Midnight(asOf).Sub(Midnight(dueDate)).Hours() / 24)
}

// BucketFor assigns a days-overdue value to its aging bucket. Invoices not
// yet due (negative values) fall into the current bucket; there is no
// separate not-yet-due column.
func BucketFor(daysOverdue int) AgingBucket {
	switch {
	case daysOverdue <= 30:
		return BucketCurrent
	case daysOverdue <= 60:
		return Bucket31to60
	case daysOverdue <= 90:
		return Bucket61to90
	default:
		return BucketOver90
	}
}
