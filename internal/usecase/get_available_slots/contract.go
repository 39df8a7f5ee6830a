package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveInRange(ctx context.Context, spotID uuid.UUID, from, until time.Time) ([]*domain.Booking, error)
}

// CoworkingRepository интерфейс репозитория коворкингов
type CoworkingRepository interface {
	GetCoworkingByID(ctx context.Context, coworkingID uuid.UUID) (*domain.Coworking, error)
	GetSpotByID(ctx context.Context, spotID uuid.UUID) (*domain.Spot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
