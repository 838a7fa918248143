package fleet

import "errors"

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = errors.New("fleet: car not found")

	// ErrCarAlreadyExists возвращается при создании машины с занятым ID
	ErrCarAlreadyExists = errors.New("fleet: car already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("fleet: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("fleet: internal error")
)
