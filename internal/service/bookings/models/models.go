package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	"github.com/m04kA/SMC-CoworkingService/pkg/tz"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID uuid.UUID `json:"userId"`
}

// RescheduleBookingRequest запрос на перенос бронирования
type RescheduleBookingRequest struct {
	UserID    uuid.UUID `json:"userId"`
	TimeFrom  time.Time `json:"timeFrom"`
	TimeUntil time.Time `json:"timeUntil"`
}

// AddOptionRequest запрос на добавление опции к бронированию
type AddOptionRequest struct {
	UserID   uuid.UUID `json:"userId"`
	OptionID uuid.UUID `json:"optionId"`
}

// ListBookingsRequest запрос на постраничный список всех бронирований
type ListBookingsRequest struct {
	UserID  uuid.UUID `json:"userId"`
	Page    int       `json:"page"`
	PerPage int       `json:"perPage"`
}

// Response модели

// BookingResponse ответ с данными бронирования
// Времена отдаются в часовом поясе клиента, статус — эффективный
// на момент запроса
type BookingResponse struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"userId"`
	SpotID    uuid.UUID   `json:"spotId"`
	TimeFrom  string      `json:"timeFrom"`  // ISO 8601, часовой пояс клиента
	TimeUntil string      `json:"timeUntil"` // ISO 8601, часовой пояс клиента
	Status    string      `json:"status"`
	Options   []uuid.UUID `json:"options"`

	// Данные места и коворкинга (заполняются, когда известны)
	SpotName      string     `json:"spotName,omitempty"`
	CoworkingID   *uuid.UUID `json:"coworkingId,omitempty"`
	CoworkingName string     `json:"coworkingName,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserInfo данные пользователя из UserService
type UserInfo struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	IsBusiness bool      `json:"isBusiness"`
}

// BookingDetailsResponse ответ с бронированием и данными владельца
type BookingDetailsResponse struct {
	BookingResponse
	User *UserInfo `json:"user,omitempty"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// PaginatedBookingsResponse ответ с постраничным списком бронирований
type PaginatedBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Page     int               `json:"page"`
	PerPage  int               `json:"perPage"`
	Total    int64             `json:"total"`
}

// SpotResponse ответ с данными места (используется при подборе альтернативы)
type SpotResponse struct {
	ID          uuid.UUID `json:"id"`
	CoworkingID uuid.UUID `json:"coworkingId"`
	Name        string    `json:"name"`
	Position    int       `json:"position"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// Статус вычисляется на момент now, времена переводятся в пояс клиента
func FromDomainBooking(b *domain.Booking, now time.Time, conv *tz.Converter) *BookingResponse {
	if b == nil {
		return nil
	}

	options := b.Options
	if options == nil {
		options = []uuid.UUID{}
	}

	return &BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		SpotID:    b.SpotID,
		TimeFrom:  conv.ToClient(b.TimeFrom).Format(time.RFC3339),
		TimeUntil: conv.ToClient(b.TimeUntil).Format(time.RFC3339),
		Status:    string(b.EffectiveStatus(now)),
		Options:   options,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, now time.Time, conv *tz.Converter) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now, conv); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainSpot конвертирует domain модель места в DTO
func FromDomainSpot(s *domain.Spot) *SpotResponse {
	if s == nil {
		return nil
	}

	return &SpotResponse{
		ID:          s.ID,
		CoworkingID: s.CoworkingID,
		Name:        s.Name,
		Position:    s.Position,
	}
}
