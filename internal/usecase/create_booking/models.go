package create_booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на создание бронирования
type Request struct {
	CarID      string    // ID машины
	CustomerID string    // ID клиента
	PickupDate time.Time // Дата получения
	ReturnDate time.Time // Дата возврата
	Location   string    // Точка выдачи
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          string          // ID созданного бронирования (uuid)
	CarID       string          // ID машины
	CustomerID  string          // ID клиента
	PickupDate  time.Time       // Дата получения
	ReturnDate  time.Time       // Дата возврата
	TotalAmount decimal.Decimal // Стоимость на момент создания
	Status      string          // Статус бронирования
	Location    string          // Точка выдачи

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
