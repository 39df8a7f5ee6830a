package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the persisted status of a booking
type BookingStatus string

const (
	// StatusActive бронирование действует (не отменено)
	StatusActive BookingStatus = "active"
	// StatusCancelled бронирование отменено владельцем или бизнес-пользователем
	StatusCancelled BookingStatus = "cancelled"
	// StatusExpired вычисляемый статус: время бронирования прошло
	// Никогда не сохраняется в БД, существует только как проекция на чтении
	StatusExpired BookingStatus = "expired"
)

// Booking represents a reservation of a single spot for a time interval.
// TimeFrom and TimeUntil are UTC instants, TimeUntil > TimeFrom.
type Booking struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SpotID    uuid.UUID
	TimeFrom  time.Time
	TimeUntil time.Time
	Status    BookingStatus
	Options   []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the persisted status is active,
// regardless of whether the interval has already passed.
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsCancelled returns true if the booking has been cancelled.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// EffectiveStatus derives the time-aware status of the booking:
// cancelled is sticky; an active booking whose interval has passed
// reads as expired. Never persisted as authoritative state.
func (b *Booking) EffectiveStatus(now time.Time) BookingStatus {
	if b.Status == StatusCancelled {
		return StatusCancelled
	}

	if now.After(b.TimeUntil) {
		return StatusExpired
	}

	return StatusActive
}

// Contains проверяет, что момент now попадает в интервал бронирования
// Границы включительно, как в проверке "текущего" бронирования места
func (b *Booking) Contains(now time.Time) bool {
	return !now.Before(b.TimeFrom) && !now.After(b.TimeUntil)
}

// HasOption returns true if the option is already attached to the booking.
func (b *Booking) HasOption(optionID uuid.UUID) bool {
	for _, id := range b.Options {
		if id == optionID {
			return true
		}
	}
	return false
}

// AddOption appends the option id if absent. Returns true when the
// set actually changed (adding a present option is a no-op).
func (b *Booking) AddOption(optionID uuid.UUID) bool {
	if b.HasOption(optionID) {
		return false
	}
	b.Options = append(b.Options, optionID)
	return true
}
