package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// allowedTransitions полная таблица переходов; статусы без записи терминальные
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCompleted, StatusCancelled},
}

// IsValid returns true if the status is one of the known booking statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal returns true if no transition leaves this status
func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// CanTransitionTo проверяет переход по таблице
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Booking represents a car rental booking
// Окно аренды полуоткрытое: [PickupDate, ReturnDate)
type Booking struct {
	ID          string
	CarID       string
	CustomerID  string
	PickupDate  time.Time
	ReturnDate  time.Time
	TotalAmount decimal.Decimal
	Status      BookingStatus
	Location    string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps returns true if the booking window intersects [pickup, ret)
func (b *Booking) Overlaps(pickup, ret time.Time) bool {
	return RangesOverlap(b.PickupDate, b.ReturnDate, pickup, ret)
}

// IsActive returns true if the booking still holds or may hold the car
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// RangesOverlap пересечение полуоткрытых интервалов; касание границ пересечением не считается
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// HasOverlap returns true if any of the bookings intersects [pickup, ret)
func HasOverlap(bookings []*Booking, pickup, ret time.Time) bool {
	for _, b := range bookings {
		if b.Overlaps(pickup, ret) {
			return true
		}
	}
	return false
}

// BlockingStatuses статусы, которые занимают машину на свой период
func BlockingStatuses(strict bool) []BookingStatus {
	if strict {
		return []BookingStatus{StatusPending, StatusApproved}
	}
	return []BookingStatus{StatusApproved}
}

// BookingsFilter фильтр списка бронирований
type BookingsFilter struct {
	CarID      *string
	CustomerID *string
	Statuses   []BookingStatus
	// From/To оставляют бронирования, пересекающиеся с [From, To)
	From *time.Time
	To   *time.Time
}

// Match проверяет бронирование на соответствие фильтру
func (f BookingsFilter) Match(b *Booking) bool {
	if f.CarID != nil && b.CarID != *f.CarID {
		return false
	}
	if f.CustomerID != nil && b.CustomerID != *f.CustomerID {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if b.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.From != nil && !b.ReturnDate.After(*f.From) {
		return false
	}
	if f.To != nil && !b.PickupDate.Before(*f.To) {
		return false
	}
	return true
}

// BookingStats сводка для панели администратора
type BookingStats struct {
	Total    int
	ByStatus map[BookingStatus]int
	// Revenue сумма approved и completed бронирований
	Revenue decimal.Decimal
}

// NewBookingStats считает статистику по списку бронирований
func NewBookingStats(bookings []*Booking) BookingStats {
	stats := BookingStats{
		ByStatus: make(map[BookingStatus]int, len(AllStatuses)),
		Revenue:  decimal.Zero,
	}
	for _, b := range bookings {
		stats.Total++
		stats.ByStatus[b.Status]++
		if b.Status == StatusApproved || b.Status == StatusCompleted {
			stats.Revenue = stats.Revenue.Add(b.TotalAmount)
		}
	}
	return stats
}
