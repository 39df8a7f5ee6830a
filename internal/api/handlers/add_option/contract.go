package add_option

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingService/internal/service/bookings/models"
)

type BookingService interface {
	AddOption(ctx context.Context, bookingID uuid.UUID, req *models.AddOptionRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
