package update_booking_status

import (
	"context"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

type BookingService interface {
	Approve(ctx context.Context, id string) (*domain.Booking, error)
	Reject(ctx context.Context, id string, reason *string) (*domain.Booking, error)
	Cancel(ctx context.Context, id string, reason *string) (*domain.Booking, error)
	Complete(ctx context.Context, id string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
