package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBooking_EffectiveStatus(t *testing.T) {
	from := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	until := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status BookingStatus
		now    time.Time
		want   BookingStatus
	}{
		{
			name:   "active booking before interval ends",
			status: StatusActive,
			now:    until.Add(-time.Minute),
			want:   StatusActive,
		},
		{
			name:   "active booking exactly at interval end",
			status: StatusActive,
			now:    until,
			want:   StatusActive,
		},
		{
			name:   "active booking one second past interval end",
			status: StatusActive,
			now:    until.Add(time.Second),
			want:   StatusExpired,
		},
		{
			name:   "cancelled status is sticky before interval end",
			status: StatusCancelled,
			now:    from.Add(time.Minute),
			want:   StatusCancelled,
		},
		{
			name:   "cancelled status is sticky after interval end",
			status: StatusCancelled,
			now:    until.Add(time.Hour),
			want:   StatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{TimeFrom: from, TimeUntil: until, Status: tt.status}
			assert.Equal(t, tt.want, b.EffectiveStatus(tt.now))
		})
	}
}

func TestBooking_Contains(t *testing.T) {
	from := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	until := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	b := &Booking{TimeFrom: from, TimeUntil: until, Status: StatusActive}

	assert.True(t, b.Contains(from), "lower bound is inclusive")
	assert.True(t, b.Contains(until), "upper bound is inclusive")
	assert.True(t, b.Contains(from.Add(time.Hour)))
	assert.False(t, b.Contains(from.Add(-time.Second)))
	assert.False(t, b.Contains(until.Add(time.Second)))
}

func TestBooking_AddOption(t *testing.T) {
	optionID := uuid.New()
	otherID := uuid.New()

	b := &Booking{}

	assert.True(t, b.AddOption(optionID), "first add changes the set")
	assert.True(t, b.HasOption(optionID))

	assert.False(t, b.AddOption(optionID), "second add is a no-op")
	assert.Len(t, b.Options, 1)

	assert.True(t, b.AddOption(otherID))
	assert.Len(t, b.Options, 2)
}
