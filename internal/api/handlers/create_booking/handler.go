package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoworkingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CoworkingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CoworkingService/pkg/tz"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidInterval      = "некорректный интервал бронирования"
	msgSpotNotFound         = "место не найдено"
	msgSpotUnavailable      = "место недоступно для бронирования"
	msgOptionNotFound       = "опция не найдена"
	msgOptionWrongCoworking = "опция принадлежит другому коворкингу"
	msgOverlapWithAlt       = "интервал занят, предложено альтернативное место"
	msgOverlapNoAlt         = "интервал занят, свободных мест нет"
)

type Handler struct {
	useCase   CreateBookingUseCase
	suggester AlternativeSuggester
	converter *tz.Converter
	logger    Logger
}

func NewHandler(useCase CreateBookingUseCase, suggester AlternativeSuggester, converter *tz.Converter, logger Logger) *Handler {
	return &Handler{
		useCase:   useCase,
		suggester: suggester,
		converter: converter,
		logger:    logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrBookingOverlap):
			h.respondConflict(w, r, &req)

		case errors.Is(err, createBooking.ErrInvalidInterval), errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid interval: user_id=%s, spot_id=%s", userID, req.SpotID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrSpotNotFound):
			h.logger.Warn("POST /bookings - Spot not found: spot_id=%s", req.SpotID)
			handlers.RespondNotFound(w, msgSpotNotFound)

		case errors.Is(err, createBooking.ErrSpotUnavailable):
			h.logger.Warn("POST /bookings - Spot unavailable: spot_id=%s", req.SpotID)
			handlers.RespondError(w, http.StatusConflict, msgSpotUnavailable)

		case errors.Is(err, createBooking.ErrOptionNotFound):
			h.logger.Warn("POST /bookings - Option not found: user_id=%s, spot_id=%s", userID, req.SpotID)
			handlers.RespondNotFound(w, msgOptionNotFound)

		case errors.Is(err, createBooking.ErrOptionWrongCoworking):
			h.logger.Warn("POST /bookings - Option from another coworking: user_id=%s, spot_id=%s", userID, req.SpotID)
			handlers.RespondBadRequest(w, msgOptionWrongCoworking)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, spot_id=%s, error=%v",
				userID, req.SpotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, spot_id=%s",
		result.ID, userID, req.SpotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.converter))
}

// respondConflict отвечает 409, дополняя ответ альтернативным местом,
// если такое нашлось. Сбой подбора не меняет статус ответа
func (h *Handler) respondConflict(w http.ResponseWriter, r *http.Request, req *CreateBookingRequest) {
	h.logger.Warn("POST /bookings - Interval overlaps: spot_id=%s", req.SpotID)

	alternative, err := h.suggester.SuggestAlternativeForSpot(r.Context(), req.SpotID, req.TimeFrom.UTC(), req.TimeUntil.UTC())
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to suggest alternative for spot_id=%s: %v", req.SpotID, err)
		alternative = nil
	}

	resp := ConflictResponse{Message: msgOverlapNoAlt}
	if alternative != nil {
		resp.Message = msgOverlapWithAlt
		resp.AlternativeSpot = alternative
	}

	handlers.RespondJSON(w, http.StatusConflict, resp)
}
