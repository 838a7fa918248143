package create_booking

import "errors"

var (
	// ErrCarNotFound возвращается, когда машина не найдена
	ErrCarNotFound = errors.New("create_booking: car not found")

	// ErrCarUnavailable возвращается, когда машина на обслуживании или период уже занят
	ErrCarUnavailable = errors.New("create_booking: car is not available for the selected dates")

	// ErrInvalidDateRange возвращается, если дата возврата не позже даты получения
	ErrInvalidDateRange = errors.New("create_booking: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
