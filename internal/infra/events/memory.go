package events

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// MemoryBus in-process pub/sub. Handlers run synchronously on the
// publishing goroutine; subscribers decide their own concurrency.
type MemoryBus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
	closed      bool
}

// NewMemoryBus создает пустую шину в памяти
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subscribers: make(map[string][]Handler)}
}

// Subscribe регистрирует обработчик для события с именем eventName
func (b *MemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventName] = append(b.subscribers[eventName], handler)
}

// Publish доставляет событие всем подписчикам его имени
func (b *MemoryBus) Publish(_ context.Context, event domain.Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrClosed
	}
	handlers := append([]Handler(nil), b.subscribers[event.EventName()]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}

	return nil
}

// Close останавливает шину; дальнейшие публикации возвращают ErrClosed
func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}
