package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

const (
	hoursPerDay = 24 * time.Hour
	moneyPlaces = 2
)

// Quote расчет стоимости аренды с промежуточными значениями
type Quote struct {
	Days     int
	BaseRate decimal.Decimal
	Subtotal decimal.Decimal
	Base     *domain.PricingRule
	Seasonal *domain.PricingRule
	Discount *domain.PricingRule
	Total    decimal.Decimal
}

// RentalDays количество дней аренды, неполный день считается целым
func RentalDays(pickup, ret time.Time) int {
	d := ret.Sub(pickup)
	days := int(d / hoursPerDay)
	if d%hoursPerDay != 0 {
		days++
	}
	return days
}

// Calculate считает стоимость аренды по правилам
//
// 1. dailyRate машины заменяется base правилом ее категории (или правилом "All", если точного нет)
// 2. subtotal = days * rate
// 3. применяется одна сезонная надбавка, самая большая из подходящих
// 4. применяется одна скидка, дающая наименьшую сумму
// 5. результат не меньше нуля и округлен до центов
//
// Неактивные правила и правила других категорий игнорируются. Окно seasonal/discount
// правила должно содержать дату получения.
func Calculate(car *domain.Car, rules []*domain.PricingRule, pickup, ret time.Time) Quote {
	q := Quote{
		Days:     RentalDays(pickup, ret),
		BaseRate: car.DailyRate,
	}

	if base := pickBaseRule(car.Category, rules); base != nil {
		q.Base = base
		if base.IsPercentage {
			q.BaseRate = car.DailyRate.Mul(base.Value).Div(decimal.NewFromInt(100))
		} else {
			q.BaseRate = base.Value
		}
	}

	q.Subtotal = q.BaseRate.Mul(decimal.NewFromInt(int64(q.Days)))
	amount := q.Subtotal

	if seasonal := pickWindowRule(domain.RuleTypeSeasonal, car.Category, rules, pickup, amount); seasonal != nil {
		q.Seasonal = seasonal
		amount = seasonal.Apply(amount)
	}

	if discount := pickWindowRule(domain.RuleTypeDiscount, car.Category, rules, pickup, amount); discount != nil {
		q.Discount = discount
		amount = discount.Apply(amount)
	}

	if amount.IsNegative() {
		amount = decimal.Zero
	}
	q.Total = amount.Round(moneyPlaces)

	return q
}

// pickBaseRule точное совпадение категории важнее "All"; при равенстве берется меньший ID
func pickBaseRule(category domain.CarCategory, rules []*domain.PricingRule) *domain.PricingRule {
	var exact, global *domain.PricingRule
	for _, r := range rules {
		if !r.IsActive || r.Type != domain.RuleTypeBase {
			continue
		}
		switch {
		case r.Category == string(category):
			if exact == nil || r.ID < exact.ID {
				exact = r
			}
		case r.IsGlobal():
			if global == nil || r.ID < global.ID {
				global = r
			}
		}
	}
	if exact != nil {
		return exact
	}
	return global
}

// pickWindowRule выбирает одно правило типа ruleType с наибольшим эффектом на amount:
// для seasonal максимальная сумма, для discount минимальная
// При равном эффекте побеждает правило точной категории, затем меньший ID
func pickWindowRule(
	ruleType domain.RuleType,
	category domain.CarCategory,
	rules []*domain.PricingRule,
	pickup time.Time,
	amount decimal.Decimal,
) *domain.PricingRule {
	var best *domain.PricingRule
	var bestAmount decimal.Decimal

	for _, r := range rules {
		if !r.IsActive || r.Type != ruleType || !r.AppliesTo(category) || !r.Covers(pickup) {
			continue
		}

		candidate := r.Apply(amount)
		if best == nil {
			best, bestAmount = r, candidate
			continue
		}

		cmp := candidate.Cmp(bestAmount)
		if ruleType == domain.RuleTypeDiscount {
			cmp = -cmp
		}
		if cmp > 0 || (cmp == 0 && moreSpecific(r, best)) {
			best, bestAmount = r, candidate
		}
	}

	return best
}

func moreSpecific(a, b *domain.PricingRule) bool {
	if a.IsGlobal() != b.IsGlobal() {
		return !a.IsGlobal()
	}
	return a.ID < b.ID
}
