package list_bookings

import (
	"context"

	"github.com/m04kA/SMC-CoworkingService/internal/service/bookings/models"
)

type BookingService interface {
	GetAllPaginated(ctx context.Context, req *models.ListBookingsRequest) (*models.PaginatedBookingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
