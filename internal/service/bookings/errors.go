package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSpotNotFound возвращается, когда место не найдено
	ErrSpotNotFound = errors.New("spot not found")

	// ErrCoworkingNotFound возвращается, когда коворкинг не найден
	ErrCoworkingNotFound = errors.New("coworking not found")

	// ErrOptionNotFound возвращается, когда опция не найдена
	ErrOptionNotFound = errors.New("option not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrBookingOverlap возвращается, когда новые границы пересекаются с чужим активным бронированием
	ErrBookingOverlap = errors.New("interval overlaps an active booking")

	// ErrInvalidInterval возвращается при некорректном интервале бронирования
	ErrInvalidInterval = errors.New("invalid booking interval")

	// ErrOptionWrongCoworking возвращается, когда опция принадлежит другому коворкингу
	ErrOptionWrongCoworking = errors.New("option belongs to another coworking")

	// ErrNoCurrentBooking возвращается, когда на месте сейчас нет активного бронирования
	// Это ожидаемый исход, а не сбой
	ErrNoCurrentBooking = errors.New("no current booking for spot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
