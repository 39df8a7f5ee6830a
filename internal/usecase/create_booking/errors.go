package create_booking

import "errors"

var (
	// ErrInvalidInterval возвращается при некорректном интервале бронирования
	ErrInvalidInterval = errors.New("create_booking: invalid booking interval")

	// ErrSpotNotFound возвращается, когда место не найдено
	ErrSpotNotFound = errors.New("create_booking: spot not found")

	// ErrSpotUnavailable возвращается, когда место недоступно для бронирования
	ErrSpotUnavailable = errors.New("create_booking: spot is unavailable")

	// ErrOptionNotFound возвращается, когда опция не найдена
	ErrOptionNotFound = errors.New("create_booking: option not found")

	// ErrOptionWrongCoworking возвращается, когда опция принадлежит другому коворкингу
	ErrOptionWrongCoworking = errors.New("create_booking: option belongs to another coworking")

	// ErrBookingOverlap возвращается, когда интервал пересекается с активным бронированием
	ErrBookingOverlap = errors.New("create_booking: interval overlaps an active booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
