package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	"github.com/m04kA/SMC-CoworkingService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Booking, error)
	GetBySpotID(ctx context.Context, spotID uuid.UUID) ([]*domain.Booking, error)
	GetActiveInRange(ctx context.Context, spotID uuid.UUID, from, until time.Time) ([]*domain.Booking, error)
	GetActiveForSpots(ctx context.Context, spotIDs []uuid.UUID, from, until time.Time) ([]*domain.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	GetAllPaginated(ctx context.Context, pagination domain.Pagination) ([]*domain.Booking, error)
}

// CoworkingRepository интерфейс репозитория коворкингов
type CoworkingRepository interface {
	GetCoworkingByID(ctx context.Context, coworkingID uuid.UUID) (*domain.Coworking, error)
	GetSpotByID(ctx context.Context, spotID uuid.UUID) (*domain.Spot, error)
	GetSpotsByCoworkingID(ctx context.Context, coworkingID uuid.UUID) ([]*domain.Spot, error)
	GetOptionByID(ctx context.Context, optionID uuid.UUID) (*domain.Option, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*userservice.User, error)
}

// EventBus интерфейс шины доменных событий
type EventBus interface {
	Publish(ctx context.Context, event domain.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
