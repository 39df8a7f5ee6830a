package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-CoworkingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CoworkingService/pkg/tz"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SpotID    uuid.UUID   `json:"spotId"`
	TimeFrom  time.Time   `json:"timeFrom"`  // ISO 8601
	TimeUntil time.Time   `json:"timeUntil"` // ISO 8601
	Options   []uuid.UUID `json:"options,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"userId"`
	SpotID    uuid.UUID   `json:"spotId"`
	TimeFrom  string      `json:"timeFrom"`
	TimeUntil string      `json:"timeUntil"`
	Status    string      `json:"status"`
	Options   []uuid.UUID `json:"options"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
}

// ConflictResponse HTTP response model для занятого интервала
// AlternativeSpot заполняется, когда в коворкинге нашлось свободное место
type ConflictResponse struct {
	Message         string               `json:"message"`
	AlternativeSpot *models.SpotResponse `json:"alternativeSpot,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID uuid.UUID) *createBooking.Request {
	return &createBooking.Request{
		UserID:    userID,
		SpotID:    r.SpotID,
		TimeFrom:  r.TimeFrom.UTC(),
		TimeUntil: r.TimeUntil.UTC(),
		Options:   r.Options,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Времена отдаются в клиентском часовом поясе
func FromUseCaseResponse(resp *createBooking.Response, conv *tz.Converter) *BookingResponse {
	options := resp.Options
	if options == nil {
		options = []uuid.UUID{}
	}

	return &BookingResponse{
		ID:        resp.ID,
		UserID:    resp.UserID,
		SpotID:    resp.SpotID,
		TimeFrom:  conv.ToClient(resp.TimeFrom).Format(time.RFC3339),
		TimeUntil: conv.ToClient(resp.TimeUntil).Format(time.RFC3339),
		Status:    resp.Status,
		Options:   options,
		CreatedAt: conv.ToClient(resp.CreatedAt).Format(time.RFC3339),
		UpdatedAt: conv.ToClient(resp.UpdatedAt).Format(time.RFC3339),
	}
}
