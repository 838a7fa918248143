package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RuleType тип ценового правила
type RuleType string

const (
	RuleTypeBase     RuleType = "base"
	RuleTypeSeasonal RuleType = "seasonal"
	RuleTypeDiscount RuleType = "discount"
)

// IsValid returns true if the rule type is known
func (t RuleType) IsValid() bool {
	switch t {
	case RuleTypeBase, RuleTypeSeasonal, RuleTypeDiscount:
		return true
	}
	return false
}

// CategoryAll правило применяется ко всем категориям
const CategoryAll = "All"

// PricingRule represents an admin-defined pricing rule
type PricingRule struct {
	ID           int64
	Name         string
	Type         RuleType
	Category     string // категория автомобиля или "All"
	Value        decimal.Decimal
	IsPercentage bool
	StartDate    *time.Time // nil = без нижней границы
	EndDate      *time.Time // nil = без верхней границы
	IsActive     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGlobal returns true if the rule applies to every category
func (r *PricingRule) IsGlobal() bool {
	return r.Category == CategoryAll
}

// AppliesTo returns true if the rule targets the category exactly or is global
func (r *PricingRule) AppliesTo(category CarCategory) bool {
	return r.IsGlobal() || r.Category == string(category)
}

// Covers проверяет, попадает ли дата в окно действия правила (границы включительно, по дням)
// Окно с началом позже конца считается переходящим через новый год и сравнивается без учета года
func (r *PricingRule) Covers(t time.Time) bool {
	day := truncateDay(t)

	if r.StartDate != nil && r.EndDate != nil && r.StartDate.After(*r.EndDate) {
		md := monthDay(day)
		return md >= monthDay(*r.StartDate) || md <= monthDay(*r.EndDate)
	}

	if r.StartDate != nil && day.Before(truncateDay(*r.StartDate)) {
		return false
	}
	if r.EndDate != nil && day.After(truncateDay(*r.EndDate)) {
		return false
	}
	return true
}

// Apply применяет правило к сумме: seasonal увеличивает, discount уменьшает
func (r *PricingRule) Apply(amount decimal.Decimal) decimal.Decimal {
	delta := r.Value
	if r.IsPercentage {
		delta = amount.Mul(r.Value).Div(hundred)
	}
	if r.Type == RuleTypeDiscount {
		return amount.Sub(delta)
	}
	return amount.Add(delta)
}

// PricingRulesFilter фильтр списка правил
type PricingRulesFilter struct {
	ActiveOnly bool
	Type       *RuleType
}

var hundred = decimal.NewFromInt(100)

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func monthDay(t time.Time) int {
	t = t.UTC()
	return int(t.Month())*100 + t.Day()
}
