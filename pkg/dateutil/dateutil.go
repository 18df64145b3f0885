// Package dateutil centralizes the business-day boundary rules used by
// date-scoped registration queries. Three different rules are in use and
// they are intentionally not unified: the upsert lookup uses an exclusive
// UTC range, the daily report an inclusive UTC range, and the
// already-registered-today check a fixed clock offset.
package dateutil

import "time"

// Day returns the UTC midnight of the calendar day containing t.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayRangeExclusive returns [day 00:00:00Z, next day 00:00:00Z). Callers
// query with >= start AND < end.
func DayRangeExclusive(day time.Time) (start, end time.Time) {
	start = Day(day)
	return start, start.Add(24 * time.Hour)
}

// DayRangeInclusive returns [day 00:00:00.000Z, day 23:59:59.999Z].
// Callers query with >= start AND <= end.
func DayRangeInclusive(day time.Time) (start, end time.Time) {
	start = Day(day)
	return start, start.Add(24*time.Hour - time.Millisecond)
}

// BusinessDay shifts now by offset before truncating to a UTC day. With
// the historical +3h offset, a submission at 22:00 UTC on Saturday already
// counts as Sunday.
func BusinessDay(now time.Time, offset time.Duration) time.Time {
	return Day(now.UTC().Add(offset))
}
