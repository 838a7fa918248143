package check_availability

import "errors"

var (
	// ErrCarNotFound возвращается, когда машина не найдена
	ErrCarNotFound = errors.New("check_availability: car not found")

	// ErrInvalidDateRange возвращается, если дата возврата не позже даты получения
	ErrInvalidDateRange = errors.New("check_availability: invalid date range")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
