package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	coworkingRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/coworking"
	"github.com/m04kA/SMC-CoworkingService/pkg/tz"
)

// UseCase use case для получения свободных интервалов места на дату
type UseCase struct {
	bookingRepo   BookingRepository
	coworkingRepo CoworkingRepository
	converter     *tz.Converter
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	coworkingRepo CoworkingRepository,
	converter *tz.Converter,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		coworkingRepo: coworkingRepo,
		converter:     converter,
		logger:        logger,
	}
}

// Execute возвращает свободные интервалы места на календарную дату.
// Интервалы вычисляются внутри рабочего окна коворкинга в часовом
// поясе клиента
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: spot=%s, date=%s", req.SpotID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 1. Получаем место
	spot, err := uc.coworkingRepo.GetSpotByID(ctx, req.SpotID)
	if err != nil {
		if errors.Is(err, coworkingRepo.ErrSpotNotFound) {
			uc.logger.Warn("GetAvailableSlots: spot id=%s not found", req.SpotID)
			return nil, ErrSpotNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get spot id=%s: %v", req.SpotID, err)
		return nil, fmt.Errorf("%w: failed to get spot: %v", ErrInternal, err)
	}

	// 2. Получаем коворкинг для определения рабочего окна дня
	coworking, err := uc.coworkingRepo.GetCoworkingByID(ctx, spot.CoworkingID)
	if err != nil {
		if errors.Is(err, coworkingRepo.ErrCoworkingNotFound) {
			uc.logger.Warn("GetAvailableSlots: coworking id=%s not found", spot.CoworkingID)
			return nil, ErrCoworkingNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get coworking id=%s: %v", spot.CoworkingID, err)
		return nil, fmt.Errorf("%w: failed to get coworking: %v", ErrInternal, err)
	}

	opening, closing, err := coworking.DayWindow(req.Date, uc.converter.Location())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build day window: %v", err)
		return nil, fmt.Errorf("%w: failed to build day window: %v", ErrInternal, err)
	}

	// 3. Активные бронирования места, пересекающие рабочее окно
	bookings, err := uc.bookingRepo.GetActiveInRange(ctx, req.SpotID, opening, closing)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Заметающий курсор по отсортированным бронированиям
	slots := computeFreeSlots(opening, closing, bookings, req.ExcludeBookingID)

	// Границы интервалов отдаются в поясе клиента
	for i := range slots {
		slots[i].TimeFrom = uc.converter.ToClient(slots[i].TimeFrom)
		slots[i].TimeUntil = uc.converter.ToClient(slots[i].TimeUntil)
	}

	uc.logger.Info("GetAvailableSlots: spot=%s, date=%s: %d free slot(s)",
		req.SpotID, req.Date.Format(domain.DateFormat), len(slots))

	return &Response{
		SpotID: req.SpotID,
		Date:   req.Date,
		Slots:  slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SpotID == uuid.Nil {
		return fmt.Errorf("%w: spotID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
