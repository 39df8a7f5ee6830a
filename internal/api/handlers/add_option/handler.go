package add_option

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoworkingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoworkingService/internal/service/bookings"
	"github.com/m04kA/SMC-CoworkingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgBookingNotFound      = "бронирование не найдено"
	msgOptionNotFound       = "опция не найдена"
	msgForbidden            = "доступ запрещен"
	msgOptionWrongCoworking = "опция принадлежит другому коворкингу"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/options
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := uuid.Parse(vars["bookingId"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/options - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/options - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddOptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/options - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddOption(r.Context(), bookingID, &models.AddOptionRequest{
		UserID:   userID,
		OptionID: req.OptionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/options - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrOptionNotFound):
			h.logger.Warn("POST /bookings/{id}/options - Option not found: option_id=%s", req.OptionID)
			handlers.RespondNotFound(w, msgOptionNotFound)

		case errors.Is(err, bookings.ErrAccessDenied), errors.Is(err, bookings.ErrUserNotFound):
			h.logger.Warn("POST /bookings/{id}/options - Access denied: booking_id=%s, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrOptionWrongCoworking):
			h.logger.Warn("POST /bookings/{id}/options - Option from another coworking: booking_id=%s, option_id=%s",
				bookingID, req.OptionID)
			handlers.RespondBadRequest(w, msgOptionWrongCoworking)

		default:
			h.logger.Error("POST /bookings/{id}/options - Failed to add option: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/options - Option added successfully: booking_id=%s, option_id=%s",
		bookingID, req.OptionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
