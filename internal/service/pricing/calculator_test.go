package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

func date(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func money(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestRentalDays(t *testing.T) {
	assert.Equal(t, 3, RentalDays(date("2026-03-01"), date("2026-03-04")))
	assert.Equal(t, 1, RentalDays(date("2026-03-01"), date("2026-03-01").Add(2*time.Hour)))
	assert.Equal(t, 2, RentalDays(date("2026-03-01"), date("2026-03-02").Add(time.Minute)))
}

func TestCalculate_NoRules(t *testing.T) {
	car := &domain.Car{Category: domain.CategorySedan, DailyRate: money("100")}

	q := Calculate(car, nil, date("2026-03-01"), date("2026-03-04"))

	assert.Equal(t, 3, q.Days)
	assert.Equal(t, "300.00", q.Total.StringFixed(2))
	assert.Nil(t, q.Discount)
}

func TestCalculate_PercentageDiscountForAll(t *testing.T) {
	car := &domain.Car{Category: domain.CategoryCompact, DailyRate: money("50")}
	rules := []*domain.PricingRule{{
		ID:           1,
		Type:         domain.RuleTypeDiscount,
		Category:     domain.CategoryAll,
		Value:        money("15"),
		IsPercentage: true,
		StartDate:    datePtr("2026-05-01"),
		EndDate:      datePtr("2026-06-30"),
		IsActive:     true,
	}}

	q := Calculate(car, rules, date("2026-06-01"), date("2026-06-05"))

	assert.Equal(t, 4, q.Days)
	assert.True(t, q.Total.Equal(money("170")), q.Total.String())
	assert.Equal(t, int64(1), q.Discount.ID)
}

func TestCalculate_BestDiscountWins(t *testing.T) {
	car := &domain.Car{Category: domain.CategorySUV, DailyRate: money("100")}
	rules := []*domain.PricingRule{
		{ID: 1, Type: domain.RuleTypeDiscount, Category: domain.CategoryAll, Value: money("10"), IsPercentage: true, IsActive: true},
		{ID: 2, Type: domain.RuleTypeDiscount, Category: "SUV", Value: money("50"), IsActive: true},
		{ID: 3, Type: domain.RuleTypeDiscount, Category: domain.CategoryAll, Value: money("40"), IsPercentage: true, IsActive: false},
		{ID: 4, Type: domain.RuleTypeDiscount, Category: "Sedan", Value: money("90"), IsPercentage: true, IsActive: true},
	}

	// 4 дня * 100 = 400; -10% = 360, -50 = 350 -> побеждает фиксированная скидка
	q := Calculate(car, rules, date("2026-06-01"), date("2026-06-05"))

	assert.Equal(t, int64(2), q.Discount.ID)
	assert.True(t, q.Total.Equal(money("350")))
}

func TestCalculate_DiscountOutsideWindowIgnored(t *testing.T) {
	car := &domain.Car{Category: domain.CategorySUV, DailyRate: money("100")}
	rules := []*domain.PricingRule{
		{ID: 1, Type: domain.RuleTypeDiscount, Category: domain.CategoryAll, Value: money("20"), IsPercentage: true, StartDate: datePtr("2026-07-01"), IsActive: true},
	}

	q := Calculate(car, rules, date("2026-06-01"), date("2026-06-03"))

	assert.Nil(t, q.Discount)
	assert.True(t, q.Total.Equal(money("200")))
}

func TestCalculate_BaseRuleOverride(t *testing.T) {
	car := &domain.Car{Category: domain.CategorySUV, DailyRate: money("100")}
	rules := []*domain.PricingRule{
		{ID: 5, Type: domain.RuleTypeBase, Category: domain.CategoryAll, Value: money("70"), IsActive: true},
		{ID: 7, Type: domain.RuleTypeBase, Category: "SUV", Value: money("90"), IsActive: true},
		{ID: 6, Type: domain.RuleTypeBase, Category: "SUV", Value: money("80"), IsActive: true},
	}

	q := Calculate(car, rules, date("2026-06-01"), date("2026-06-03"))

	assert.Equal(t, int64(6), q.Base.ID)
	assert.True(t, q.BaseRate.Equal(money("80")))
	assert.True(t, q.Total.Equal(money("160")))

	sedan := &domain.Car{Category: domain.CategorySedan, DailyRate: money("100")}
	q = Calculate(sedan, rules, date("2026-06-01"), date("2026-06-03"))
	assert.Equal(t, int64(5), q.Base.ID)
	assert.True(t, q.Total.Equal(money("140")))
}

func TestCalculate_SeasonalThenDiscount(t *testing.T) {
	car := &domain.Car{Category: domain.CategorySedan, DailyRate: money("100")}
	rules := []*domain.PricingRule{
		{ID: 1, Type: domain.RuleTypeSeasonal, Category: domain.CategoryAll, Value: money("10"), IsPercentage: true, StartDate: datePtr("2026-06-01"), EndDate: datePtr("2026-08-31"), IsActive: true},
		{ID: 2, Type: domain.RuleTypeSeasonal, Category: domain.CategoryAll, Value: money("5"), IsActive: true},
		{ID: 3, Type: domain.RuleTypeDiscount, Category: domain.CategoryAll, Value: money("50"), IsPercentage: true, IsActive: true},
	}

	// 2 дня * 100 = 200; +10% = 220 (больше чем +5); -50% = 110
	q := Calculate(car, rules, date("2026-07-01"), date("2026-07-03"))

	assert.Equal(t, int64(1), q.Seasonal.ID)
	assert.True(t, q.Total.Equal(money("110")), q.Total.String())
}

func TestCalculate_FlooredAtZero(t *testing.T) {
	car := &domain.Car{Category: domain.CategoryCompact, DailyRate: money("20")}
	rules := []*domain.PricingRule{
		{ID: 1, Type: domain.RuleTypeDiscount, Category: domain.CategoryAll, Value: money("500"), IsActive: true},
	}

	q := Calculate(car, rules, date("2026-06-01"), date("2026-06-02"))

	assert.True(t, q.Total.IsZero())
}

func TestCalculate_RoundsToCents(t *testing.T) {
	car := &domain.Car{Category: domain.CategoryCompact, DailyRate: money("33.33")}
	rules := []*domain.PricingRule{
		{ID: 1, Type: domain.RuleTypeDiscount, Category: domain.CategoryAll, Value: money("7.5"), IsPercentage: true, IsActive: true},
	}

	// 3 * 33.33 = 99.99; -7.5% = 92.49075
	q := Calculate(car, rules, date("2026-06-01"), date("2026-06-04"))

	assert.Equal(t, "92.49", q.Total.StringFixed(2))
}

func TestCalculate_Deterministic(t *testing.T) {
	car := &domain.Car{Category: domain.CategorySUV, DailyRate: money("123.45")}
	rules := []*domain.PricingRule{
		{ID: 2, Type: domain.RuleTypeDiscount, Category: domain.CategoryAll, Value: money("10"), IsActive: true},
		{ID: 1, Type: domain.RuleTypeDiscount, Category: "SUV", Value: money("10"), IsActive: true},
	}

	first := Calculate(car, rules, date("2026-06-01"), date("2026-06-08"))
	for i := 0; i < 10; i++ {
		again := Calculate(car, rules, date("2026-06-01"), date("2026-06-08"))
		assert.True(t, first.Total.Equal(again.Total))
		assert.Equal(t, first.Discount.ID, again.Discount.ID)
	}
	// одинаковый эффект: побеждает точная категория
	assert.Equal(t, int64(1), first.Discount.ID)
}
