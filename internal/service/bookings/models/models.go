package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ReasonRequest тело запросов на отклонение и отмену
type ReasonRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          string          `json:"id"`
	CarID       string          `json:"carId"`
	CustomerID  string          `json:"customerId"`
	PickupDate  string          `json:"pickupDate"` // "2025-10-15"
	ReturnDate  string          `json:"returnDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	Location    string          `json:"location"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// StatsResponse статистика бронирований
type StatsResponse struct {
	Total    int             `json:"total"`
	ByStatus map[string]int  `json:"byStatus"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CarID:              b.CarID,
		CustomerID:         b.CustomerID,
		PickupDate:         b.PickupDate.Format(domain.DateFormat),
		ReturnDate:         b.ReturnDate.Format(domain.DateFormat),
		TotalAmount:        b.TotalAmount,
		Status:             string(b.Status),
		Location:           b.Location,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainStats конвертирует статистику в DTO; статусы без бронирований выводятся с нулем
func FromDomainStats(stats *domain.BookingStats) *StatsResponse {
	resp := &StatsResponse{
		Total:    stats.Total,
		ByStatus: make(map[string]int, len(domain.AllStatuses)),
		Revenue:  stats.Revenue,
	}
	for _, status := range domain.AllStatuses {
		resp.ByStatus[string(status)] = stats.ByStatus[status]
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(strings.ToLower(strings.TrimSpace(status)))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainBookingStatuses разбирает список статусов через запятую: "pending,approved"
func ToDomainBookingStatuses(raw string) ([]domain.BookingStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	statuses := make([]domain.BookingStatus, 0, len(parts))
	for _, part := range parts {
		status, err := ToDomainBookingStatus(part)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
