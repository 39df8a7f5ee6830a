package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// Request модель запроса на получение свободных интервалов
type Request struct {
	SpotID uuid.UUID // ID места
	Date   time.Time // Календарная дата в часовом поясе клиента (без времени)

	// ExcludeBookingID исключает бронирование из расчета занятости.
	// Используется при переносе: собственное бронирование не должно
	// блокировать свои же новые границы
	ExcludeBookingID *uuid.UUID
}

// Response модель ответа со списком свободных интервалов
type Response struct {
	SpotID uuid.UUID         // ID места
	Date   time.Time         // Дата, на которую запрашивались интервалы
	Slots  []domain.TimeSlot // Свободные интервалы в порядке возрастания
}
