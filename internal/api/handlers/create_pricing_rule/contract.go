package create_pricing_rule

import (
	"context"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

type PricingService interface {
	CreateRule(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
