package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/m04kA/SMC-CoworkingService/pkg/types"
)

// Coworking represents a venue containing bookable spots.
// OpensAt and ClosesAt bound the day within which free slots are offered;
// both are times of day in the client timezone.
type Coworking struct {
	ID          uuid.UUID
	Name        string
	Description string
	Address     string
	OpensAt     types.TimeString
	ClosesAt    types.TimeString
	Images      []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DayWindow возвращает границы рабочего дня коворкинга для календарной даты
// date в локации loc. Полуинтервал [opening, closing).
func (c *Coworking) DayWindow(date time.Time, loc *time.Location) (opening, closing time.Time, err error) {
	opening, err = c.OpensAt.At(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	closing, err = c.ClosesAt.At(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return opening, closing, nil
}
