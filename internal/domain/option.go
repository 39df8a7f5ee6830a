package domain

import (
	"time"

	"github.com/google/uuid"
)

// Option is an add-on offered by a coworking (monitor, locker, parking).
// A booking may reference options of the same coworking as its spot.
type Option struct {
	ID          uuid.UUID
	CoworkingID uuid.UUID
	Name        string

	CreatedAt time.Time
	UpdatedAt time.Time
}
