package domain

import (
	"time"

	"github.com/google/uuid"
)

// Имена событий используются как routing key на брокере
const (
	EventNameBookingCreated   = "booking_created"
	EventNameBookingCancelled = "booking_cancelled"
)

// Event is a domain event with a stable name for transport routing.
type Event interface {
	EventName() string
}

// BookingCreated is emitted after a booking is successfully persisted.
// Immutable; Timestamp is UTC.
type BookingCreated struct {
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	SpotID    uuid.UUID `json:"spot_id"`
	TimeFrom  time.Time `json:"time_from"`
	TimeUntil time.Time `json:"time_until"`
	Timestamp time.Time `json:"timestamp"`
}

// EventName returns the routing name of the event.
func (BookingCreated) EventName() string { return EventNameBookingCreated }

// BookingCancelled is emitted after a booking's persisted status
// transitions to cancelled. Immutable; Timestamp is UTC.
type BookingCancelled struct {
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	SpotID    uuid.UUID `json:"spot_id"`
	TimeFrom  time.Time `json:"time_from"`
	TimeUntil time.Time `json:"time_until"`
	Timestamp time.Time `json:"timestamp"`
}

// EventName returns the routing name of the event.
func (BookingCancelled) EventName() string { return EventNameBookingCancelled }
