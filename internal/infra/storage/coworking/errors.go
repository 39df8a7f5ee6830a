package coworking

import "errors"

var (
	// ErrCoworkingNotFound возвращается, когда коворкинг не найден
	ErrCoworkingNotFound = errors.New("coworking.repository: coworking not found")

	// ErrSpotNotFound возвращается, когда место не найдено
	ErrSpotNotFound = errors.New("coworking.repository: spot not found")

	// ErrOptionNotFound возвращается, когда опция не найдена
	ErrOptionNotFound = errors.New("coworking.repository: option not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("coworking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("coworking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("coworking.repository: failed to scan row")
)
