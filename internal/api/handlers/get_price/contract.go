package get_price

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
)

type PricingService interface {
	Quote(ctx context.Context, carID string, pickup, ret time.Time) (*pricing.Quote, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
