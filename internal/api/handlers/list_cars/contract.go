package list_cars

import (
	"context"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

type FleetService interface {
	ListCars(ctx context.Context, filter domain.CarsFilter) ([]*domain.Car, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
