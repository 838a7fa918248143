package lock

import "errors"

var (
	// ErrLockTimeout возвращается, если лок не удалось взять за отведенное время
	ErrLockTimeout = errors.New("lock: timeout acquiring lock")

	// ErrLockBackend возвращается при ошибке хранилища локов
	ErrLockBackend = errors.New("lock: backend error")
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
