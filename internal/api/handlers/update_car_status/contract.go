package update_car_status

import (
	"context"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

type FleetService interface {
	SetStatus(ctx context.Context, id string, status domain.CarStatus) (*domain.Car, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
