package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.SpotID == uuid.Nil {
		return fmt.Errorf("%w: spotID is required", ErrInvalidInput)
	}

	if req.TimeFrom.IsZero() || req.TimeUntil.IsZero() {
		return fmt.Errorf("%w: timeFrom and timeUntil are required", ErrInvalidInput)
	}

	return nil
}

// validateInterval проверяет корректность интервала бронирования.
// Интервал валидируется ДО обращения к хранилищу: некорректный интервал
// не должен стоить ни одного запроса к БД
func validateInterval(from, until time.Time, now time.Time) error {
	if !from.Before(until) {
		return fmt.Errorf("%w: timeFrom must be strictly before timeUntil", ErrInvalidInterval)
	}

	if until.Before(now) {
		return fmt.Errorf("%w: interval is entirely in the past", ErrInvalidInterval)
	}

	return nil
}
