// Package events шина доменных событий
// Публикация fire-and-forget: отказ доставки логируется вызывающей стороной
// и никогда не проваливает операцию бронирования
package events

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

var (
	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("events: failed to publish event")

	// ErrClosed возвращается при публикации через закрытую шину
	ErrClosed = errors.New("events: bus is closed")
)

// Bus publishes domain events. Implementations: in-memory (tests,
// single-process deployments) and RabbitMQ. Selected once at startup.
type Bus interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}

// Handler reacts to a domain event (in-memory bus only).
type Handler func(event domain.Event)
