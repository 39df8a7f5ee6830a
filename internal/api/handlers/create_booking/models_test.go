package create_booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	createBooking "github.com/m04kA/SMC-CoworkingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CoworkingService/pkg/tz"
)

func TestFromUseCaseResponse_RendersClientTimezone(t *testing.T) {
	resp := &createBooking.Response{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		SpotID:    uuid.New(),
		TimeFrom:  time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		TimeUntil: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Status:    "active",
		CreatedAt: time.Date(2026, 3, 9, 15, 30, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 9, 15, 30, 0, 0, time.UTC),
	}

	out := FromUseCaseResponse(resp, tz.New(3))

	assert.Equal(t, "2026-03-10T13:00:00+03:00", out.TimeFrom)
	assert.Equal(t, "2026-03-10T15:00:00+03:00", out.TimeUntil)
	assert.Equal(t, "2026-03-09T18:30:00+03:00", out.CreatedAt)
	assert.Equal(t, "2026-03-09T18:30:00+03:00", out.UpdatedAt)
}

func TestFromUseCaseResponse_NilOptionsSerializedAsEmpty(t *testing.T) {
	out := FromUseCaseResponse(&createBooking.Response{Status: "active"}, tz.New(0))

	assert.NotNil(t, out.Options)
	assert.Empty(t, out.Options)
}
