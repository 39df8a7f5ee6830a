package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/booking"
	coworkingRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/coworking"
	userClient "github.com/m04kA/SMC-CoworkingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-CoworkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CoworkingService/pkg/ptr"
	"github.com/m04kA/SMC-CoworkingService/pkg/tz"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	coworkingRepo CoworkingRepository
	userClient    UserServiceClient
	eventBus      EventBus
	txManager     TransactionManager
	timeProvider  TimeProvider
	converter     *tz.Converter
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	coworkingRepo CoworkingRepository,
	userClient UserServiceClient,
	eventBus EventBus,
	txManager TransactionManager,
	converter *tz.Converter,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		coworkingRepo: coworkingRepo,
		userClient:    userClient,
		eventBus:      eventBus,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		converter:     converter,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование; бизнес-пользователь — любое
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.BookingDetailsResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, err
	}

	now := s.timeProvider.Now()
	resp := &models.BookingDetailsResponse{
		BookingResponse: *models.FromDomainBooking(booking, now, s.converter),
	}

	s.fillPlaceInfo(ctx, &resp.BookingResponse)
	resp.User = s.fetchUserInfo(ctx, booking.UserID)

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return resp, nil
}

// GetUserBookings получает все бронирования пользователя
// Чужую историю видит только бизнес-пользователь. Статусы эффективные:
// истекшие активные бронирования отдаются как expired
func (s *Service) GetUserBookings(ctx context.Context, userID uuid.UUID, requesterID uuid.UUID) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, requester=%s", userID, requesterID)

	if userID != requesterID {
		if err := s.checkBusinessAccess(ctx, requesterID); err != nil {
			s.logger.Warn("GetUserBookings: access denied for requester=%s to user=%s bookings", requesterID, userID)
			return nil, ErrAccessDenied
		}
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	resp := models.FromDomainBookingList(bookings, now, s.converter)
	for i := range resp.Bookings {
		s.fillPlaceInfo(ctx, &resp.Bookings[i])
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(resp.Bookings), userID)
	return resp, nil
}

// GetAllPaginated возвращает постраничный список всех бронирований
// Доступно только бизнес-пользователям
func (s *Service) GetAllPaginated(ctx context.Context, req *models.ListBookingsRequest) (*models.PaginatedBookingsResponse, error) {
	s.logger.Info("GetAllPaginated: page=%d, perPage=%d, user=%s", req.Page, req.PerPage, req.UserID)

	if err := s.checkBusinessAccess(ctx, req.UserID); err != nil {
		s.logger.Warn("GetAllPaginated: access denied for user=%s", req.UserID)
		return nil, err
	}

	pagination := domain.Pagination{Page: req.Page, PerPage: req.PerPage}.Normalize()

	total, err := s.bookingRepo.CountAll(ctx)
	if err != nil {
		s.logger.Error("GetAllPaginated: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: GetAllPaginated - count error: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetAllPaginated(ctx, pagination)
	if err != nil {
		s.logger.Error("GetAllPaginated: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllPaginated - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	list := models.FromDomainBookingList(bookings, now, s.converter)

	s.logger.Info("GetAllPaginated: fetched %d of %d booking(s)", len(list.Bookings), total)
	return &models.PaginatedBookingsResponse{
		Bookings: list.Bookings,
		Page:     pagination.Page,
		PerPage:  pagination.PerPage,
		Total:    total,
	}, nil
}

// Cancel отменяет бронирование
// Пользователь может отменить своё бронирование, бизнес-пользователь — любое.
// Повторная отмена — разрешенный no-op: статус остается cancelled, событие
// повторно не публикуется
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkUserAccess(ctx, booking, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%s to cancel booking id=%s", req.UserID, bookingID)
		return err
	}

	// Перечитываем и пишем статус в одной транзакции: гонка с переносом
	// не теряет отмену
	var cancelled bool

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err = s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if booking.IsCancelled() {
			s.logger.Info("Cancel: booking id=%s is already cancelled", bookingID)
			return nil
		}

		booking.Status = domain.StatusCancelled
		if _, err := s.bookingRepo.Update(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%s not found during cancellation", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		cancelled = true
		return nil
	})
	if err != nil {
		return err
	}

	if !cancelled {
		return nil
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)

	event := domain.BookingCancelled{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		SpotID:    booking.SpotID,
		TimeFrom:  booking.TimeFrom,
		TimeUntil: booking.TimeUntil,
		Timestamp: s.timeProvider.Now(),
	}
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Warn("Cancel: failed to publish %s event for booking id=%s: %v",
			event.EventName(), bookingID, err)
	}

	return nil
}

// Reschedule переносит бронирование на новые границы
// Конфликты считаются по активным бронированиям места, исключая само
// переносимое бронирование. Статус не меняется
func (s *Service) Reschedule(ctx context.Context, bookingID uuid.UUID, req *models.RescheduleBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Reschedule: booking id=%s, from=%s, until=%s, user=%s",
		bookingID, req.TimeFrom.Format(domain.DateTimeFormat), req.TimeUntil.Format(domain.DateTimeFormat), req.UserID)

	if !req.TimeFrom.Before(req.TimeUntil) {
		s.logger.Warn("Reschedule: invalid interval for booking id=%s", bookingID)
		return nil, fmt.Errorf("%w: timeFrom must be strictly before timeUntil", ErrInvalidInterval)
	}

	booking, err := s.getBooking(ctx, "Reschedule", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, req.UserID); err != nil {
		s.logger.Warn("Reschedule: access denied for user=%s to booking id=%s", req.UserID, bookingID)
		return nil, err
	}

	if booking.IsCancelled() {
		s.logger.Warn("Reschedule: booking id=%s is cancelled", bookingID)
		return nil, fmt.Errorf("%w: cancelled booking cannot be rescheduled", ErrInvalidInput)
	}

	var updated *domain.Booking

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflicts, err := s.bookingRepo.GetActiveInRange(txCtx, booking.SpotID, req.TimeFrom, req.TimeUntil)
		if err != nil {
			s.logger.Error("Reschedule: failed to get active bookings: %v", err)
			return fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
		}

		// Собственные границы бронирования не блокируют его перенос
		for _, c := range conflicts {
			if c.ID != booking.ID {
				s.logger.Warn("Reschedule: booking id=%s conflicts with booking id=%s", bookingID, c.ID)
				return ErrBookingOverlap
			}
		}

		booking.TimeFrom = req.TimeFrom.UTC()
		booking.TimeUntil = req.TimeUntil.UTC()

		updated, err = s.bookingRepo.Update(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrOverlapConstraint) {
				s.logger.Warn("Reschedule: overlap constraint violated for booking id=%s", bookingID)
				return ErrBookingOverlap
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Reschedule: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reschedule: successfully rescheduled booking id=%s", bookingID)
	return models.FromDomainBooking(updated, s.timeProvider.Now(), s.converter), nil
}

// AddOption добавляет опцию к бронированию
// Опция должна принадлежать коворкингу места; повторное добавление — no-op
func (s *Service) AddOption(ctx context.Context, bookingID uuid.UUID, req *models.AddOptionRequest) (*models.BookingResponse, error) {
	s.logger.Info("AddOption: booking id=%s, option id=%s, user=%s", bookingID, req.OptionID, req.UserID)

	booking, err := s.getBooking(ctx, "AddOption", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, req.UserID); err != nil {
		s.logger.Warn("AddOption: access denied for user=%s to booking id=%s", req.UserID, bookingID)
		return nil, err
	}

	option, err := s.coworkingRepo.GetOptionByID(ctx, req.OptionID)
	if err != nil {
		if errors.Is(err, coworkingRepo.ErrOptionNotFound) {
			s.logger.Warn("AddOption: option id=%s not found", req.OptionID)
			return nil, ErrOptionNotFound
		}
		s.logger.Error("AddOption: failed to get option id=%s: %v", req.OptionID, err)
		return nil, fmt.Errorf("%w: AddOption - failed to get option: %v", ErrInternal, err)
	}

	spot, err := s.coworkingRepo.GetSpotByID(ctx, booking.SpotID)
	if err != nil {
		if errors.Is(err, coworkingRepo.ErrSpotNotFound) {
			s.logger.Warn("AddOption: spot id=%s not found", booking.SpotID)
			return nil, ErrSpotNotFound
		}
		s.logger.Error("AddOption: failed to get spot id=%s: %v", booking.SpotID, err)
		return nil, fmt.Errorf("%w: AddOption - failed to get spot: %v", ErrInternal, err)
	}

	if option.CoworkingID != spot.CoworkingID {
		s.logger.Warn("AddOption: option id=%s belongs to coworking id=%s, spot belongs to id=%s",
			req.OptionID, option.CoworkingID, spot.CoworkingID)
		return nil, ErrOptionWrongCoworking
	}

	// Перечитываем и переписываем массив опций в одной транзакции:
	// параллельное добавление не затирает чужую опцию
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err = s.getBooking(txCtx, "AddOption", bookingID)
		if err != nil {
			return err
		}

		if !booking.AddOption(req.OptionID) {
			s.logger.Info("AddOption: booking id=%s already has option id=%s", bookingID, req.OptionID)
			return nil
		}

		if booking, err = s.bookingRepo.Update(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("AddOption: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: AddOption - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("AddOption: option id=%s added to booking id=%s", req.OptionID, bookingID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking, s.timeProvider.Now(), s.converter), nil
}

// GetCurrentBookingForSpot возвращает активное бронирование, идущее на месте
// прямо сейчас. Доступно только бизнес-пользователям; отсутствие текущего
// бронирования — ожидаемый исход
func (s *Service) GetCurrentBookingForSpot(ctx context.Context, spotID uuid.UUID, userID uuid.UUID) (*models.BookingDetailsResponse, error) {
	s.logger.Info("GetCurrentBookingForSpot: spot id=%s, user=%s", spotID, userID)

	if err := s.checkBusinessAccess(ctx, userID); err != nil {
		s.logger.Warn("GetCurrentBookingForSpot: access denied for user=%s", userID)
		return nil, err
	}

	if _, err := s.coworkingRepo.GetSpotByID(ctx, spotID); err != nil {
		if errors.Is(err, coworkingRepo.ErrSpotNotFound) {
			s.logger.Warn("GetCurrentBookingForSpot: spot id=%s not found", spotID)
			return nil, ErrSpotNotFound
		}
		s.logger.Error("GetCurrentBookingForSpot: failed to get spot id=%s: %v", spotID, err)
		return nil, fmt.Errorf("%w: GetCurrentBookingForSpot - failed to get spot: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetBySpotID(ctx, spotID)
	if err != nil {
		s.logger.Error("GetCurrentBookingForSpot: repository error for spot id=%s: %v", spotID, err)
		return nil, fmt.Errorf("%w: GetCurrentBookingForSpot - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	// Границы интервала включаются: бронирование "сейчас", если
	// time_from <= now <= time_until
	var current *domain.Booking
	for _, b := range bookings {
		if b.IsActive() && b.Contains(now) {
			current = b
			break
		}
	}

	if current == nil {
		s.logger.Info("GetCurrentBookingForSpot: no current booking for spot id=%s", spotID)
		return nil, ErrNoCurrentBooking
	}

	resp := &models.BookingDetailsResponse{
		BookingResponse: *models.FromDomainBooking(current, now, s.converter),
	}
	s.fillPlaceInfo(ctx, &resp.BookingResponse)
	resp.User = s.fetchUserInfo(ctx, current.UserID)

	s.logger.Info("GetCurrentBookingForSpot: booking id=%s is current for spot id=%s", current.ID, spotID)
	return resp, nil
}

// SuggestAlternativeSpot подбирает альтернативное место в коворкинге,
// свободное в интервале [from, until). Возвращает первое подходящее место
// в порядке позиций; nil — когда свободных мест нет. Подбор не резервирует
// место
func (s *Service) SuggestAlternativeSpot(ctx context.Context, coworkingID uuid.UUID, from, until time.Time, excludeSpotID uuid.UUID) (*models.SpotResponse, error) {
	s.logger.Info("SuggestAlternativeSpot: coworking id=%s, from=%s, until=%s, exclude spot id=%s",
		coworkingID, from.Format(domain.DateTimeFormat), until.Format(domain.DateTimeFormat), excludeSpotID)

	spots, err := s.coworkingRepo.GetSpotsByCoworkingID(ctx, coworkingID)
	if err != nil {
		if errors.Is(err, coworkingRepo.ErrCoworkingNotFound) {
			s.logger.Warn("SuggestAlternativeSpot: coworking id=%s not found", coworkingID)
			return nil, ErrCoworkingNotFound
		}
		s.logger.Error("SuggestAlternativeSpot: failed to get spots for coworking id=%s: %v", coworkingID, err)
		return nil, fmt.Errorf("%w: SuggestAlternativeSpot - failed to get spots: %v", ErrInternal, err)
	}

	candidates := make([]*domain.Spot, 0, len(spots))
	candidateIDs := make([]uuid.UUID, 0, len(spots))
	for _, spot := range spots {
		if spot.ID == excludeSpotID || !spot.IsBookable() {
			continue
		}
		candidates = append(candidates, spot)
		candidateIDs = append(candidateIDs, spot.ID)
	}

	if len(candidates) == 0 {
		s.logger.Info("SuggestAlternativeSpot: no candidate spots in coworking id=%s", coworkingID)
		return nil, nil
	}

	// Одна пакетная выборка вместо запроса на каждое место
	conflicts, err := s.bookingRepo.GetActiveForSpots(ctx, candidateIDs, from, until)
	if err != nil {
		s.logger.Error("SuggestAlternativeSpot: failed to get active bookings: %v", err)
		return nil, fmt.Errorf("%w: SuggestAlternativeSpot - repository error: %v", ErrInternal, err)
	}

	busy := make(map[uuid.UUID]bool, len(conflicts))
	for _, b := range conflicts {
		busy[b.SpotID] = true
	}

	for _, spot := range candidates {
		if !busy[spot.ID] {
			s.logger.Info("SuggestAlternativeSpot: suggesting spot id=%s (%s)", spot.ID, spot.Name)
			return models.FromDomainSpot(spot), nil
		}
	}

	s.logger.Info("SuggestAlternativeSpot: no free spot in coworking id=%s", coworkingID)
	return nil, nil
}

// SuggestAlternativeForSpot подбирает альтернативу занятому месту:
// разрешает коворкинг места и делегирует SuggestAlternativeSpot
func (s *Service) SuggestAlternativeForSpot(ctx context.Context, spotID uuid.UUID, from, until time.Time) (*models.SpotResponse, error) {
	spot, err := s.coworkingRepo.GetSpotByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, coworkingRepo.ErrSpotNotFound) {
			s.logger.Warn("SuggestAlternativeForSpot: spot id=%s not found", spotID)
			return nil, ErrSpotNotFound
		}
		s.logger.Error("SuggestAlternativeForSpot: failed to get spot id=%s: %v", spotID, err)
		return nil, fmt.Errorf("%w: SuggestAlternativeForSpot - failed to get spot: %v", ErrInternal, err)
	}

	return s.SuggestAlternativeSpot(ctx, spot.CoworkingID, from, until, spotID)
}

// Вспомогательные методы

// getBooking получает бронирование по ID с маппингом ошибок репозитория
func (s *Service) getBooking(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Доступ есть у владельца бронирования и у бизнес-пользователей
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID uuid.UUID) error {
	if booking.UserID == userID {
		return nil
	}

	if err := s.checkBusinessAccess(ctx, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkBusinessAccess проверяет, что пользователь является бизнес-пользователем
func (s *Service) checkBusinessAccess(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("checkBusinessAccess: user id=%s not found", userID)
			return ErrUserNotFound
		}
		s.logger.Error("checkBusinessAccess: failed to get user id=%s: %v", userID, err)
		return fmt.Errorf("%w: checkBusinessAccess - failed to get user: %v", ErrInternal, err)
	}

	if !user.IsBusiness {
		s.logger.Warn("checkBusinessAccess: user id=%s is not a business user", userID)
		return ErrAccessDenied
	}

	return nil
}

// fillPlaceInfo дополняет DTO названиями места и коворкинга
// Отсутствие справочных данных не считается ошибкой ответа
func (s *Service) fillPlaceInfo(ctx context.Context, resp *models.BookingResponse) {
	spot, err := s.coworkingRepo.GetSpotByID(ctx, resp.SpotID)
	if err != nil {
		s.logger.Warn("fillPlaceInfo: failed to get spot id=%s: %v", resp.SpotID, err)
		return
	}

	resp.SpotName = spot.Name
	resp.CoworkingID = ptr.Ptr(spot.CoworkingID)

	coworking, err := s.coworkingRepo.GetCoworkingByID(ctx, spot.CoworkingID)
	if err != nil {
		s.logger.Warn("fillPlaceInfo: failed to get coworking id=%s: %v", spot.CoworkingID, err)
		return
	}

	resp.CoworkingName = coworking.Name
}

// fetchUserInfo получает данные владельца бронирования
// При недоступности UserService ответ отдается без блока user
func (s *Service) fetchUserInfo(ctx context.Context, userID uuid.UUID) *models.UserInfo {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		s.logger.Warn("fetchUserInfo: failed to get user id=%s: %v", userID, err)
		return nil
	}

	return &models.UserInfo{
		ID:         user.ID,
		FullName:   user.FullName,
		Email:      user.Email,
		IsBusiness: user.IsBusiness,
	}
}
