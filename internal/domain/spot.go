package domain

import (
	"time"

	"github.com/google/uuid"
)

// SpotStatus operational status of a spot, independent of bookings
type SpotStatus string

const (
	// SpotStatusActive место доступно для бронирования
	SpotStatusActive SpotStatus = "active"
	// SpotStatusInactive место выведено из эксплуатации
	SpotStatusInactive SpotStatus = "inactive"
)

// Spot is a single bookable physical resource (desk, room) inside a
// coworking. A spot belongs to exactly one coworking; the relation is
// immutable after creation.
type Spot struct {
	ID          uuid.UUID
	CoworkingID uuid.UUID
	Name        string
	Description string
	Position    int
	Status      SpotStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true when the spot may accept new bookings.
func (s *Spot) IsBookable() bool {
	return s.Status == SpotStatusActive
}
