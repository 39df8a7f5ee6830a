package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/booking"
	coworkingRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/coworking"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	coworkingRepo CoworkingRepository
	eventBus      EventBus
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	coworkingRepo CoworkingRepository,
	eventBus EventBus,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		coworkingRepo: coworkingRepo,
		eventBus:      eventBus,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, spot=%s, from=%s, until=%s",
		req.UserID, req.SpotID, req.TimeFrom.Format(domain.DateTimeFormat), req.TimeUntil.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация интервала — до первого обращения к хранилищу
	now := uc.timeProvider.Now()
	if err := validateInterval(req.TimeFrom, req.TimeUntil, now); err != nil {
		uc.logger.Warn("CreateBooking: interval validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем место и проверяем его доступность
	spot, err := uc.coworkingRepo.GetSpotByID(ctx, req.SpotID)
	if err != nil {
		if errors.Is(err, coworkingRepo.ErrSpotNotFound) {
			uc.logger.Warn("CreateBooking: spot id=%s not found", req.SpotID)
			return nil, ErrSpotNotFound
		}
		uc.logger.Error("CreateBooking: failed to get spot id=%s: %v", req.SpotID, err)
		return nil, fmt.Errorf("%w: failed to get spot: %v", ErrInternal, err)
	}

	if !spot.IsBookable() {
		uc.logger.Warn("CreateBooking: spot id=%s is not bookable (status=%s)", spot.ID, spot.Status)
		return nil, ErrSpotUnavailable
	}

	// 4. Проверяем, что все опции принадлежат коворкингу этого места
	if err := uc.validateOptions(ctx, spot, req.Options); err != nil {
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Проверка пересечений и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Активные бронирования места в интервале, с блокировкой (FOR UPDATE)
		conflicts, err := uc.bookingRepo.GetActiveInRange(txCtx, req.SpotID, req.TimeFrom, req.TimeUntil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get active bookings: %v", err)
			return fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
		}

		if len(conflicts) > 0 {
			uc.logger.Warn("CreateBooking: spot id=%s has %d overlapping booking(s)", req.SpotID, len(conflicts))
			return ErrBookingOverlap
		}

		// 5.2. Создаем бронирование
		booking := &domain.Booking{
			ID:        uuid.New(),
			UserID:    req.UserID,
			SpotID:    req.SpotID,
			TimeFrom:  req.TimeFrom.UTC(),
			TimeUntil: req.TimeUntil.UTC(),
			Status:    domain.StatusActive,
			Options:   req.Options,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Exclusion constraint в БД — вторая линия защиты от гонки
			if errors.Is(err, bookingRepo.ErrOverlapConstraint) {
				uc.logger.Warn("CreateBooking: overlap constraint violated for spot id=%s", req.SpotID)
				return ErrBookingOverlap
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// 6. Публикуем событие. Ошибка публикации не откатывает бронирование
	event := domain.BookingCreated{
		BookingID: result.ID,
		UserID:    result.UserID,
		SpotID:    result.SpotID,
		TimeFrom:  result.TimeFrom,
		TimeUntil: result.TimeUntil,
		Timestamp: now,
	}
	if err := uc.eventBus.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s event for booking id=%s: %v",
			event.EventName(), result.ID, err)
	}

	// Конвертируем в response
	return &Response{
		ID:        result.ID,
		UserID:    result.UserID,
		SpotID:    result.SpotID,
		TimeFrom:  result.TimeFrom,
		TimeUntil: result.TimeUntil,
		Status:    string(result.Status),
		Options:   result.Options,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}

// validateOptions проверяет, что каждая опция существует и принадлежит
// коворкингу указанного места
func (uc *UseCase) validateOptions(ctx context.Context, spot *domain.Spot, options []uuid.UUID) error {
	for _, optionID := range options {
		option, err := uc.coworkingRepo.GetOptionByID(ctx, optionID)
		if err != nil {
			if errors.Is(err, coworkingRepo.ErrOptionNotFound) {
				uc.logger.Warn("CreateBooking: option id=%s not found", optionID)
				return ErrOptionNotFound
			}
			uc.logger.Error("CreateBooking: failed to get option id=%s: %v", optionID, err)
			return fmt.Errorf("%w: failed to get option: %v", ErrInternal, err)
		}

		if option.CoworkingID != spot.CoworkingID {
			uc.logger.Warn("CreateBooking: option id=%s belongs to coworking id=%s, spot belongs to id=%s",
				optionID, option.CoworkingID, spot.CoworkingID)
			return ErrOptionWrongCoworking
		}
	}

	return nil
}
