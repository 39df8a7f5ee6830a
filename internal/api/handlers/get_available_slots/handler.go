package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoworkingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CoworkingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidSpotID    = "некорректный ID места"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidExclude   = "некорректный ID исключаемого бронирования"
	msgSpotNotFound     = "место не найдено"
	msgCoworkingMissing = "коворкинг не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/spots/{spotId}/available-slots?date=YYYY-MM-DD&excludeBookingId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	spotID, err := uuid.Parse(vars["spotId"])
	if err != nil {
		h.logger.Warn("GET /spots/{spotId}/available-slots - Invalid spot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpotID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /spots/{spotId}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Опциональное исключение бронирования (для переноса)
	var excludeBookingID *uuid.UUID
	if raw := r.URL.Query().Get("excludeBookingId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.logger.Warn("GET /spots/{spotId}/available-slots - Invalid exclude booking ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidExclude)
			return
		}
		excludeBookingID = &id
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		SpotID:           spotID,
		Date:             date,
		ExcludeBookingID: excludeBookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrSpotNotFound):
			h.logger.Warn("GET /spots/{spotId}/available-slots - Spot not found: spot_id=%s", spotID)
			handlers.RespondNotFound(w, msgSpotNotFound)

		case errors.Is(err, getAvailableSlots.ErrCoworkingNotFound):
			h.logger.Warn("GET /spots/{spotId}/available-slots - Coworking not found: spot_id=%s", spotID)
			handlers.RespondNotFound(w, msgCoworkingMissing)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /spots/{spotId}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /spots/{spotId}/available-slots - Failed to get slots: spot_id=%s, error=%v", spotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spots/{spotId}/available-slots - Slots retrieved successfully: spot_id=%s, count=%d",
		spotID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
