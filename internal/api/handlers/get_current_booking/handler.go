package get_current_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoworkingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoworkingService/internal/service/bookings"
)

const (
	msgInvalidSpotID = "некорректный ID места"
	msgMissingUserID = "отсутствует ID пользователя"
	msgSpotNotFound  = "место не найдено"
	msgNoCurrent     = "на месте сейчас нет активного бронирования"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/spots/{spotId}/current-booking
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	spotID, err := uuid.Parse(vars["spotId"])
	if err != nil {
		h.logger.Warn("GET /spots/{spotId}/current-booking - Invalid spot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpotID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /spots/{spotId}/current-booking - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := h.service.GetCurrentBookingForSpot(r.Context(), spotID, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrNoCurrentBooking):
			h.logger.Info("GET /spots/{spotId}/current-booking - No current booking: spot_id=%s", spotID)
			handlers.RespondNotFound(w, msgNoCurrent)

		case errors.Is(err, bookings.ErrSpotNotFound):
			h.logger.Warn("GET /spots/{spotId}/current-booking - Spot not found: spot_id=%s", spotID)
			handlers.RespondNotFound(w, msgSpotNotFound)

		case errors.Is(err, bookings.ErrAccessDenied), errors.Is(err, bookings.ErrUserNotFound):
			h.logger.Warn("GET /spots/{spotId}/current-booking - Access denied: spot_id=%s, user_id=%s", spotID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /spots/{spotId}/current-booking - Failed to get current booking: spot_id=%s, error=%v",
				spotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spots/{spotId}/current-booking - Current booking retrieved: spot_id=%s, booking_id=%s",
		spotID, booking.ID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
