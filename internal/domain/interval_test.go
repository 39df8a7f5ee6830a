package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalsOverlap(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	tests := []struct {
		name          string
		aFrom, aUntil time.Time
		bFrom, bUntil time.Time
		want          bool
	}{
		{"identical intervals", at(0), at(2), at(0), at(2), true},
		{"b inside a", at(0), at(4), at(1), at(2), true},
		{"a inside b", at(1), at(2), at(0), at(4), true},
		{"partial overlap left", at(0), at(2), at(1), at(3), true},
		{"partial overlap right", at(1), at(3), at(0), at(2), true},
		{"b after a with gap", at(0), at(1), at(2), at(3), false},
		{"b before a with gap", at(2), at(3), at(0), at(1), false},
		{"boundary touch a ends where b starts", at(0), at(2), at(2), at(4), false},
		{"boundary touch b ends where a starts", at(2), at(4), at(0), at(2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.aFrom, tt.aUntil, tt.bFrom, tt.bUntil))
			// Пересечение симметрично
			assert.Equal(t, tt.want, IntervalsOverlap(tt.bFrom, tt.bUntil, tt.aFrom, tt.aUntil))
		})
	}
}

func TestBooking_OverlapsInterval(t *testing.T) {
	from := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	until := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	b := &Booking{TimeFrom: from, TimeUntil: until}

	assert.True(t, b.OverlapsInterval(from.Add(-time.Hour), from.Add(time.Minute)))
	assert.False(t, b.OverlapsInterval(until, until.Add(time.Hour)), "touching the end is not an overlap")
	assert.False(t, b.OverlapsInterval(from.Add(-time.Hour), from), "touching the start is not an overlap")
}
