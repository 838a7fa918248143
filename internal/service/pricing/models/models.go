package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
)

// Request модели

// CreateRuleRequest тело запроса на создание ценового правила
// Даты окна в формате YYYY-MM-DD, пустая граница = без ограничения
type CreateRuleRequest struct {
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Category     string          `json:"category"`
	Value        decimal.Decimal `json:"value"`
	IsPercentage bool            `json:"isPercentage"`
	StartDate    string          `json:"startDate,omitempty"`
	EndDate      string          `json:"endDate,omitempty"`
	IsActive     *bool           `json:"isActive,omitempty"`
}

// ToDomain конвертирует запрос в domain модель; по умолчанию правило активно
func (r *CreateRuleRequest) ToDomain() (*domain.PricingRule, error) {
	rule := &domain.PricingRule{
		Name:         r.Name,
		Type:         domain.RuleType(r.Type),
		Category:     r.Category,
		Value:        r.Value,
		IsPercentage: r.IsPercentage,
		IsActive:     true,
	}
	if r.IsActive != nil {
		rule.IsActive = *r.IsActive
	}

	var err error
	if rule.StartDate, err = parseOptionalDate(r.StartDate); err != nil {
		return nil, err
	}
	if rule.EndDate, err = parseOptionalDate(r.EndDate); err != nil {
		return nil, err
	}
	return rule, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Response модели

// RuleResponse ответ с данными ценового правила
type RuleResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Category     string          `json:"category"`
	Value        decimal.Decimal `json:"value"`
	IsPercentage bool            `json:"isPercentage"`
	StartDate    *string         `json:"startDate,omitempty"`
	EndDate      *string         `json:"endDate,omitempty"`
	IsActive     bool            `json:"isActive"`
}

// RuleListResponse ответ со списком правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// QuoteResponse расчет стоимости аренды
type QuoteResponse struct {
	CarID      string          `json:"carId"`
	PickupDate string          `json:"pickupDate"`
	ReturnDate string          `json:"returnDate"`
	Days       int             `json:"days"`
	BaseRate   decimal.Decimal `json:"baseRate"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Total      decimal.Decimal `json:"total"`
	Applied    []RuleResponse  `json:"appliedRules"`
}

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.PricingRule) *RuleResponse {
	if r == nil {
		return nil
	}
	resp := &RuleResponse{
		ID:           r.ID,
		Name:         r.Name,
		Type:         string(r.Type),
		Category:     r.Category,
		Value:        r.Value,
		IsPercentage: r.IsPercentage,
		IsActive:     r.IsActive,
	}
	if r.StartDate != nil {
		s := r.StartDate.Format(domain.DateFormat)
		resp.StartDate = &s
	}
	if r.EndDate != nil {
		s := r.EndDate.Format(domain.DateFormat)
		resp.EndDate = &s
	}
	return resp
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(rules []*domain.PricingRule) *RuleListResponse {
	resp := &RuleListResponse{Rules: make([]RuleResponse, 0, len(rules))}
	for _, r := range rules {
		if ruleResp := FromDomainRule(r); ruleResp != nil {
			resp.Rules = append(resp.Rules, *ruleResp)
		}
	}
	return resp
}

// FromQuote конвертирует расчет в DTO; примененные правила в порядке base, seasonal, discount
func FromQuote(carID string, pickup, ret time.Time, q *pricing.Quote) *QuoteResponse {
	resp := &QuoteResponse{
		CarID:      carID,
		PickupDate: pickup.Format(domain.DateFormat),
		ReturnDate: ret.Format(domain.DateFormat),
		Days:       q.Days,
		BaseRate:   q.BaseRate,
		Subtotal:   q.Subtotal,
		Total:      q.Total,
		Applied:    make([]RuleResponse, 0, 3),
	}
	for _, rule := range []*domain.PricingRule{q.Base, q.Seasonal, q.Discount} {
		if ruleResp := FromDomainRule(rule); ruleResp != nil {
			resp.Applied = append(resp.Applied, *ruleResp)
		}
	}
	return resp
}
