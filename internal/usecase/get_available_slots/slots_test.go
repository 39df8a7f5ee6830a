package get_available_slots

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

func day(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func activeBooking(from, until time.Time) *domain.Booking {
	return &domain.Booking{
		ID:        uuid.New(),
		TimeFrom:  from,
		TimeUntil: until,
		Status:    domain.StatusActive,
	}
}

func TestComputeFreeSlots_EmptyDay(t *testing.T) {
	slots := computeFreeSlots(day(9, 0), day(18, 0), nil, nil)

	require.Len(t, slots, 1)
	assert.Equal(t, day(9, 0), slots[0].TimeFrom)
	assert.Equal(t, day(18, 0), slots[0].TimeUntil)
}

func TestComputeFreeSlots_SingleBookingSplitsDay(t *testing.T) {
	bookings := []*domain.Booking{activeBooking(day(10, 0), day(11, 0))}

	slots := computeFreeSlots(day(9, 0), day(18, 0), bookings, nil)

	require.Len(t, slots, 2)
	assert.Equal(t, day(9, 0), slots[0].TimeFrom)
	assert.Equal(t, day(10, 0), slots[0].TimeUntil)
	assert.Equal(t, day(11, 0), slots[1].TimeFrom)
	assert.Equal(t, day(18, 0), slots[1].TimeUntil)
}

func TestComputeFreeSlots_GapsAndBookingsCoverWholeWindow(t *testing.T) {
	bookings := []*domain.Booking{
		activeBooking(day(9, 30), day(10, 30)),
		activeBooking(day(12, 0), day(13, 0)),
		activeBooking(day(16, 45), day(17, 15)),
	}

	slots := computeFreeSlots(day(9, 0), day(18, 0), bookings, nil)

	// Интервалы и бронирования вместе должны покрывать окно без дыр
	total := time.Duration(0)
	for _, s := range slots {
		total += s.TimeUntil.Sub(s.TimeFrom)
	}
	for _, b := range bookings {
		total += b.TimeUntil.Sub(b.TimeFrom)
	}
	assert.Equal(t, 9*time.Hour, total)

	// Интервалы отсортированы и не пересекаются с бронированиями
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].TimeUntil.Before(slots[i].TimeFrom) || slots[i-1].TimeUntil.Equal(slots[i].TimeFrom))
	}
	for _, s := range slots {
		for _, b := range bookings {
			assert.False(t, domain.IntervalsOverlap(s.TimeFrom, s.TimeUntil, b.TimeFrom, b.TimeUntil))
		}
	}
}

func TestComputeFreeSlots_FullyBooked(t *testing.T) {
	bookings := []*domain.Booking{activeBooking(day(9, 0), day(18, 0))}

	slots := computeFreeSlots(day(9, 0), day(18, 0), bookings, nil)

	assert.Empty(t, slots)
}

func TestComputeFreeSlots_BookingSpanningWindowEdges(t *testing.T) {
	bookings := []*domain.Booking{
		activeBooking(day(8, 0), day(9, 30)),
		activeBooking(day(17, 30), day(19, 0)),
	}

	slots := computeFreeSlots(day(9, 0), day(18, 0), bookings, nil)

	require.Len(t, slots, 1)
	assert.Equal(t, day(9, 30), slots[0].TimeFrom)
	assert.Equal(t, day(17, 30), slots[0].TimeUntil)
}

func TestComputeFreeSlots_UnsortedInput(t *testing.T) {
	bookings := []*domain.Booking{
		activeBooking(day(14, 0), day(15, 0)),
		activeBooking(day(10, 0), day(11, 0)),
	}

	slots := computeFreeSlots(day(9, 0), day(18, 0), bookings, nil)

	require.Len(t, slots, 3)
	assert.Equal(t, day(9, 0), slots[0].TimeFrom)
	assert.Equal(t, day(10, 0), slots[0].TimeUntil)
	assert.Equal(t, day(11, 0), slots[1].TimeFrom)
	assert.Equal(t, day(14, 0), slots[1].TimeUntil)
	assert.Equal(t, day(15, 0), slots[2].TimeFrom)
	assert.Equal(t, day(18, 0), slots[2].TimeUntil)
}

func TestComputeFreeSlots_ExcludedBookingDoesNotBlock(t *testing.T) {
	own := activeBooking(day(10, 0), day(11, 0))
	other := activeBooking(day(13, 0), day(14, 0))

	slots := computeFreeSlots(day(9, 0), day(18, 0), []*domain.Booking{own, other}, &own.ID)

	// Собственное бронирование исключено: его окно свободно
	require.Len(t, slots, 2)
	assert.Equal(t, day(9, 0), slots[0].TimeFrom)
	assert.Equal(t, day(13, 0), slots[0].TimeUntil)
	assert.Equal(t, day(14, 0), slots[1].TimeFrom)
	assert.Equal(t, day(18, 0), slots[1].TimeUntil)
}

func TestComputeFreeSlots_ClosedWindow(t *testing.T) {
	slots := computeFreeSlots(day(18, 0), day(9, 0), nil, nil)

	assert.Empty(t, slots)
}

func TestComputeFreeSlots_AdjacentBookings(t *testing.T) {
	bookings := []*domain.Booking{
		activeBooking(day(10, 0), day(11, 0)),
		activeBooking(day(11, 0), day(12, 0)),
	}

	slots := computeFreeSlots(day(9, 0), day(18, 0), bookings, nil)

	// Стык бронирований не порождает нулевой интервал
	require.Len(t, slots, 2)
	assert.Equal(t, day(9, 0), slots[0].TimeFrom)
	assert.Equal(t, day(10, 0), slots[0].TimeUntil)
	assert.Equal(t, day(12, 0), slots[1].TimeFrom)
	assert.Equal(t, day(18, 0), slots[1].TimeUntil)
}
