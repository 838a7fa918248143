package domain

import "time"

// EventType тип события жизненного цикла бронирования
type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingApproved  EventType = "booking.approved"
	EventBookingRejected  EventType = "booking.rejected"
	EventBookingCancelled EventType = "booking.cancelled"
	EventBookingCompleted EventType = "booking.completed"
)

// BookingEvent публикуется после каждого успешного перехода
type BookingEvent struct {
	Type       EventType     `json:"type"`
	BookingID  string        `json:"bookingId"`
	CarID      string        `json:"carId"`
	CustomerID string        `json:"customerId"`
	From       BookingStatus `json:"from,omitempty"`
	To         BookingStatus `json:"to"`
	Reason     *string       `json:"reason,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// EventTypeFor тип события для целевого статуса
func EventTypeFor(to BookingStatus) EventType {
	switch to {
	case StatusApproved:
		return EventBookingApproved
	case StatusRejected:
		return EventBookingRejected
	case StatusCancelled:
		return EventBookingCancelled
	case StatusCompleted:
		return EventBookingCompleted
	}
	return EventBookingCreated
}

// NewBookingEvent собирает событие по бронированию после перехода
func NewBookingEvent(b *Booking, from BookingStatus, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       EventTypeFor(b.Status),
		BookingID:  b.ID,
		CarID:      b.CarID,
		CustomerID: b.CustomerID,
		From:       from,
		To:         b.Status,
		Reason:     b.CancellationReason,
		OccurredAt: at,
	}
}
