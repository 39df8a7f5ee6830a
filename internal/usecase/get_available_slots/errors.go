package get_available_slots

import "errors"

var (
	// ErrSpotNotFound возвращается, когда место не найдено
	ErrSpotNotFound = errors.New("get_available_slots: spot not found")

	// ErrCoworkingNotFound возвращается, когда коворкинг не найден
	ErrCoworkingNotFound = errors.New("get_available_slots: coworking not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
