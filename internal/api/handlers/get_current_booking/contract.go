package get_current_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingService/internal/service/bookings/models"
)

type BookingService interface {
	GetCurrentBookingForSpot(ctx context.Context, spotID uuid.UUID, userID uuid.UUID) (*models.BookingDetailsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
