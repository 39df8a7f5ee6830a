package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveInRange(ctx context.Context, spotID uuid.UUID, from, until time.Time) ([]*domain.Booking, error)
}

// CoworkingRepository интерфейс репозитория коворкингов
type CoworkingRepository interface {
	GetSpotByID(ctx context.Context, spotID uuid.UUID) (*domain.Spot, error)
	GetOptionByID(ctx context.Context, optionID uuid.UUID) (*domain.Option, error)
}

// EventBus интерфейс шины доменных событий
type EventBus interface {
	Publish(ctx context.Context, event domain.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
