package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	pricingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/pricing"
)

// PricingRepository ценовые правила в памяти процесса
type PricingRepository struct {
	mu     sync.RWMutex
	rules  map[int64]*domain.PricingRule
	nextID int64
}

// NewPricingRepository создает репозиторий; правилам без ID назначается следующий свободный
func NewPricingRepository(rules ...*domain.PricingRule) *PricingRepository {
	r := &PricingRepository{rules: make(map[int64]*domain.PricingRule, len(rules))}
	for _, rule := range rules {
		if rule.ID > r.nextID {
			r.nextID = rule.ID
		}
	}
	for _, rule := range rules {
		cp := *rule
		if cp.ID == 0 {
			r.nextID++
			cp.ID = r.nextID
		}
		r.rules[cp.ID] = &cp
	}
	return r
}

func (r *PricingRepository) Create(_ context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()
	rule.ID = r.nextID
	rule.CreatedAt = now
	rule.UpdatedAt = now

	cp := *rule
	r.rules[rule.ID] = &cp
	return rule, nil
}

func (r *PricingRepository) GetByID(_ context.Context, id int64) (*domain.PricingRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[id]
	if !ok {
		return nil, pricingRepo.ErrRuleNotFound
	}
	cp := *rule
	return &cp, nil
}

func (r *PricingRepository) List(_ context.Context, filter domain.PricingRulesFilter) ([]*domain.PricingRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]*domain.PricingRule, 0, len(r.rules))
	for _, rule := range r.rules {
		if filter.ActiveOnly && !rule.IsActive {
			continue
		}
		if filter.Type != nil && rule.Type != *filter.Type {
			continue
		}
		cp := *rule
		rules = append(rules, &cp)
	}

	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules, nil
}

func (r *PricingRepository) SetActive(_ context.Context, id int64, active bool) (*domain.PricingRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[id]
	if !ok {
		return nil, pricingRepo.ErrRuleNotFound
	}
	rule.IsActive = active
	rule.UpdatedAt = time.Now().UTC()

	cp := *rule
	return &cp, nil
}
