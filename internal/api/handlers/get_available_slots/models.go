package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CoworkingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP model свободного интервала
type SlotResponse struct {
	TimeFrom  string `json:"timeFrom"`  // ISO 8601, часовой пояс клиента
	TimeUntil string `json:"timeUntil"` // ISO 8601, часовой пояс клиента
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	SpotID uuid.UUID      `json:"spotId"`
	Date   string         `json:"date"` // YYYY-MM-DD
	Slots  []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			TimeFrom:  slot.TimeFrom.Format(time.RFC3339),
			TimeUntil: slot.TimeUntil.Format(time.RFC3339),
		})
	}

	return &AvailableSlotsResponse{
		SpotID: resp.SpotID,
		Date:   resp.Date.Format(domain.DateFormat),
		Slots:  slots,
	}
}
