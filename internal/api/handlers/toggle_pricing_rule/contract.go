package toggle_pricing_rule

import (
	"context"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

type PricingService interface {
	ToggleRule(ctx context.Context, id int64) (*domain.PricingRule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
