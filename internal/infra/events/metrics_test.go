package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

type publishRecord struct {
	event  string
	failed bool
}

type fakeObserver struct {
	records []publishRecord
}

func (f *fakeObserver) ObserveEventPublished(event string, err error) {
	f.records = append(f.records, publishRecord{event: event, failed: err != nil})
}

func TestMetricsBus_RecordsSuccessfulPublish(t *testing.T) {
	observer := &fakeObserver{}
	bus := WithMetrics(NewMemoryBus(), observer)

	err := bus.Publish(context.Background(), domain.BookingCreated{BookingID: uuid.New()})

	require.NoError(t, err)
	require.Len(t, observer.records, 1)
	assert.Equal(t, domain.EventNameBookingCreated, observer.records[0].event)
	assert.False(t, observer.records[0].failed)
}

func TestMetricsBus_RecordsFailedPublish(t *testing.T) {
	observer := &fakeObserver{}
	inner := NewMemoryBus()
	require.NoError(t, inner.Close())
	bus := WithMetrics(inner, observer)

	err := bus.Publish(context.Background(), domain.BookingCancelled{BookingID: uuid.New()})

	assert.ErrorIs(t, err, ErrClosed)
	require.Len(t, observer.records, 1)
	assert.Equal(t, domain.EventNameBookingCancelled, observer.records[0].event)
	assert.True(t, observer.records[0].failed)
}
