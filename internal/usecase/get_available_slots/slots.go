package get_available_slots

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// computeFreeSlots вычисляет свободные интервалы внутри рабочего окна
// [opening, closing) методом заметающего курсора: бронирования сортируются
// по началу, курсор перескакивает через каждое занятое окно, промежутки
// между курсором и началом следующего бронирования — свободные интервалы.
// Бронирование с ID exclude не учитывается как занятое
func computeFreeSlots(
	opening, closing time.Time,
	bookings []*domain.Booking,
	exclude *uuid.UUID,
) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)

	if !opening.Before(closing) {
		return slots
	}

	// Отбираем бронирования, реально пересекающие окно
	occupied := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if exclude != nil && b.ID == *exclude {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if b.OverlapsInterval(opening, closing) {
			occupied = append(occupied, b)
		}
	}

	// Репозиторий возвращает бронирования по возрастанию time_from,
	// но алгоритм не должен зависеть от порядка выборки
	sort.SliceStable(occupied, func(i, j int) bool {
		return occupied[i].TimeFrom.Before(occupied[j].TimeFrom)
	})

	cursor := opening

	for _, b := range occupied {
		if b.TimeFrom.After(cursor) {
			slots = append(slots, domain.TimeSlot{TimeFrom: cursor, TimeUntil: b.TimeFrom})
		}
		if b.TimeUntil.After(cursor) {
			cursor = b.TimeUntil
		}
	}

	if cursor.Before(closing) {
		slots = append(slots, domain.TimeSlot{TimeFrom: cursor, TimeUntil: closing})
	}

	return slots
}
