package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrCarNotFound возвращается, когда машина бронирования не найдена
	ErrCarNotFound = errors.New("bookings: car not found")

	// ErrInvalidTransition возвращается, если переход недопустим из текущего статуса
	ErrInvalidTransition = errors.New("bookings: invalid status transition")

	// ErrConflictingApproval возвращается, если период уже занят другим одобренным бронированием
	ErrConflictingApproval = errors.New("bookings: conflicting approved booking exists")

	// ErrCarUnavailable возвращается, если машина на обслуживании
	ErrCarUnavailable = errors.New("bookings: car is unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
