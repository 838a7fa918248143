package check_availability

import "time"

// Request модель запроса проверки доступности
type Request struct {
	CarID      string    // ID машины
	PickupDate time.Time // Дата получения
	ReturnDate time.Time // Дата возврата (не входит в период)
}

// Response модель ответа
type Response struct {
	CarID      string
	PickupDate time.Time
	ReturnDate time.Time
	Available  bool
	Conflicts  []string // ID бронирований, пересекающихся с периодом
}
