package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/booking"
)

// BookingRepository журнал бронирований в памяти процесса
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: make(map[string]*domain.Booking)}
}

func (r *BookingRepository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	r.bookings[booking.ID] = cloneBooking(booking)
	return booking, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return cloneBooking(booking), nil
}

func (r *BookingRepository) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if filter.Match(b) {
			bookings = append(bookings, cloneBooking(b))
		}
	}

	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].PickupDate.Equal(bookings[j].PickupDate) {
			return bookings[i].PickupDate.Before(bookings[j].PickupDate)
		}
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *BookingRepository) UpdateStatus(
	_ context.Context,
	id string,
	from, to domain.BookingStatus,
	reason *string,
	at time.Time,
) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	if booking.Status != from {
		return nil, bookingRepo.ErrStatusConflict
	}

	booking.Status = to
	booking.UpdatedAt = at
	if reason != nil && (to == domain.StatusRejected || to == domain.StatusCancelled) {
		text := *reason
		booking.CancellationReason = &text
	}
	if to == domain.StatusCancelled {
		cancelledAt := at
		booking.CancelledAt = &cancelledAt
	}

	return cloneBooking(booking), nil
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	cp := *b
	if b.CancellationReason != nil {
		reason := *b.CancellationReason
		cp.CancellationReason = &reason
	}
	if b.CancelledAt != nil {
		at := *b.CancelledAt
		cp.CancelledAt = &at
	}
	return &cp
}
