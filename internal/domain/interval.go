package domain

import "time"

// IntervalsOverlap reports whether two half-open intervals
// [aFrom, aUntil) and [bFrom, bUntil) share at least one instant.
// Intervals that merely touch (one ends exactly when the other
// begins) do NOT overlap.
func IntervalsOverlap(aFrom, aUntil, bFrom, bUntil time.Time) bool {
	return aFrom.Before(bUntil) && bFrom.Before(aUntil)
}

// OverlapsInterval проверяет пересечение бронирования с интервалом [from, until)
func (b *Booking) OverlapsInterval(from, until time.Time) bool {
	return IntervalsOverlap(b.TimeFrom, b.TimeUntil, from, until)
}

// TimeSlot is a (from, until) pair: a requested booking window or a
// computed free window. A value, not an entity.
type TimeSlot struct {
	TimeFrom  time.Time
	TimeUntil time.Time
}
