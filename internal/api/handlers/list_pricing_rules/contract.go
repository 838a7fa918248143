package list_pricing_rules

import (
	"context"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

type PricingService interface {
	ListRules(ctx context.Context, activeOnly bool) ([]*domain.PricingRule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
