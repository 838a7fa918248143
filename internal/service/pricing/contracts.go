package pricing

import (
	"context"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

// CarRepository интерфейс репозитория автомобилей
type CarRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Car, error)
}

// RuleRepository интерфейс репозитория ценовых правил
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error)
	GetByID(ctx context.Context, id int64) (*domain.PricingRule, error)
	List(ctx context.Context, filter domain.PricingRulesFilter) ([]*domain.PricingRule, error)
	SetActive(ctx context.Context, id int64, active bool) (*domain.PricingRule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
