package pricing

import "errors"

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = errors.New("pricing: car not found")

	// ErrRuleNotFound возвращается, когда ценовое правило не найдено
	ErrRuleNotFound = errors.New("pricing: pricing rule not found")

	// ErrInvalidDateRange возвращается, если дата возврата не позже даты получения
	ErrInvalidDateRange = errors.New("pricing: return date must be after pickup date")

	// ErrInvalidInput возвращается при некорректных данных правила
	ErrInvalidInput = errors.New("pricing: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing: internal error")
)
