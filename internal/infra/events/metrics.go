package events

import (
	"context"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// PublishObserver записывает исход публикации события
type PublishObserver interface {
	ObserveEventPublished(event string, err error)
}

// MetricsBus decorates a Bus, recording every publish attempt and its
// outcome. Transparent otherwise.
type MetricsBus struct {
	bus      Bus
	observer PublishObserver
}

// WithMetrics оборачивает шину сбором метрик публикаций
func WithMetrics(bus Bus, observer PublishObserver) *MetricsBus {
	return &MetricsBus{bus: bus, observer: observer}
}

// Publish публикует событие и фиксирует исход в метриках
func (b *MetricsBus) Publish(ctx context.Context, event domain.Event) error {
	err := b.bus.Publish(ctx, event)
	b.observer.ObserveEventPublished(event.EventName(), err)
	return err
}

// Close закрывает обернутую шину
func (b *MetricsBus) Close() error {
	return b.bus.Close()
}
