package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	carRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/car"
	pricingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/pricing"
)

// Service калькулятор стоимости и управление ценовыми правилами
type Service struct {
	carRepo  CarRepository
	ruleRepo RuleRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса цен
func NewService(carRepo CarRepository, ruleRepo RuleRepository, logger Logger) *Service {
	return &Service{
		carRepo:  carRepo,
		ruleRepo: ruleRepo,
		logger:   logger,
	}
}

// ComputePrice возвращает итоговую стоимость аренды машины на период
func (s *Service) ComputePrice(ctx context.Context, carID string, pickup, ret time.Time) (decimal.Decimal, error) {
	q, err := s.Quote(ctx, carID, pickup, ret)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Total, nil
}

// Quote возвращает расчет стоимости с примененными правилами
func (s *Service) Quote(ctx context.Context, carID string, pickup, ret time.Time) (*Quote, error) {
	if pickup.IsZero() || ret.IsZero() || !ret.After(pickup) {
		return nil, ErrInvalidDateRange
	}

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			return nil, ErrCarNotFound
		}
		s.logger.Error("Quote: failed to get car id=%s: %v", carID, err)
		return nil, fmt.Errorf("%w: Quote - get car: %v", ErrInternal, err)
	}

	rules, err := s.ruleRepo.List(ctx, domain.PricingRulesFilter{ActiveOnly: true})
	if err != nil {
		s.logger.Error("Quote: failed to list pricing rules: %v", err)
		return nil, fmt.Errorf("%w: Quote - list rules: %v", ErrInternal, err)
	}

	q := Calculate(car, rules, pickup, ret)
	s.logger.Info("Quote: car=%s days=%d rate=%s total=%s", carID, q.Days, q.BaseRate.StringFixed(moneyPlaces), q.Total.StringFixed(moneyPlaces))

	return &q, nil
}

// ListRules возвращает правила, при activeOnly только активные
func (s *Service) ListRules(ctx context.Context, activeOnly bool) ([]*domain.PricingRule, error) {
	rules, err := s.ruleRepo.List(ctx, domain.PricingRulesFilter{ActiveOnly: activeOnly})
	if err != nil {
		s.logger.Error("ListRules: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRules - repository error: %v", ErrInternal, err)
	}
	return rules, nil
}

// CreateRule проверяет и сохраняет новое правило
func (s *Service) CreateRule(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	if err := validateRule(rule); err != nil {
		s.logger.Warn("CreateRule: validation failed: %v", err)
		return nil, err
	}

	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("CreateRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRule: created rule id=%d type=%s category=%s", created.ID, created.Type, created.Category)
	return created, nil
}

// ToggleRule инвертирует признак активности правила
func (s *Service) ToggleRule(ctx context.Context, id int64) (*domain.PricingRule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pricingRepo.ErrRuleNotFound) {
			return nil, ErrRuleNotFound
		}
		s.logger.Error("ToggleRule: failed to get rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ToggleRule - get rule: %v", ErrInternal, err)
	}

	updated, err := s.ruleRepo.SetActive(ctx, id, !rule.IsActive)
	if err != nil {
		if errors.Is(err, pricingRepo.ErrRuleNotFound) {
			return nil, ErrRuleNotFound
		}
		s.logger.Error("ToggleRule: failed to update rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ToggleRule - set active: %v", ErrInternal, err)
	}

	s.logger.Info("ToggleRule: rule id=%d active=%t", id, updated.IsActive)
	return updated, nil
}

func validateRule(rule *domain.PricingRule) error {
	if rule.Name == "" || len(rule.Name) > domain.MaxRuleNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxRuleNameLength)
	}
	if !rule.Type.IsValid() {
		return fmt.Errorf("%w: unknown rule type %q", ErrInvalidInput, rule.Type)
	}
	if rule.Category == "" {
		rule.Category = domain.CategoryAll
	}
	if !rule.IsGlobal() && !domain.CarCategory(rule.Category).IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, rule.Category)
	}
	if rule.Value.IsNegative() {
		return fmt.Errorf("%w: value must not be negative", ErrInvalidInput)
	}
	if rule.IsPercentage && rule.Type != domain.RuleTypeBase && rule.Value.GreaterThan(decimal.NewFromInt(domain.MaxPercentage)) {
		return fmt.Errorf("%w: percentage must not exceed %d", ErrInvalidInput, domain.MaxPercentage)
	}
	if rule.Type == domain.RuleTypeBase && rule.Value.IsZero() {
		return fmt.Errorf("%w: base rate must be positive", ErrInvalidInput)
	}
	return nil
}
