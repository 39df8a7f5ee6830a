package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-CoworkingService/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// AlternativeSuggester подбирает свободное место взамен занятого
type AlternativeSuggester interface {
	SuggestAlternativeForSpot(ctx context.Context, spotID uuid.UUID, from, until time.Time) (*models.SpotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
