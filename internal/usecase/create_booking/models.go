package create_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    uuid.UUID   // ID пользователя
	SpotID    uuid.UUID   // ID места
	TimeFrom  time.Time   // Начало интервала (UTC)
	TimeUntil time.Time   // Конец интервала (UTC)
	Options   []uuid.UUID // Дополнительные опции (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        uuid.UUID   // ID созданного бронирования
	UserID    uuid.UUID   // ID пользователя
	SpotID    uuid.UUID   // ID места
	TimeFrom  time.Time   // Начало интервала
	TimeUntil time.Time   // Конец интервала
	Status    string      // Статус бронирования
	Options   []uuid.UUID // Опции бронирования

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
