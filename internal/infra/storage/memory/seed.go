package memory

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

// Seed начальные данные автопарка для in-memory хранилища
type Seed struct {
	Cars         []SeedCar  `yaml:"cars"`
	PricingRules []SeedRule `yaml:"pricing_rules"`
}

type SeedCar struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Category  string `yaml:"category"`
	DailyRate string `yaml:"daily_rate"`
	Status    string `yaml:"status"`
	Seats     int    `yaml:"seats"`
	Year      int    `yaml:"year"`
	Location  string `yaml:"location"`
}

type SeedRule struct {
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	Category     string `yaml:"category"`
	Value        string `yaml:"value"`
	IsPercentage bool   `yaml:"is_percentage"`
	StartDate    string `yaml:"start_date"`
	EndDate      string `yaml:"end_date"`
	IsActive     bool   `yaml:"is_active"`
}

// LoadSeed читает YAML файл с машинами и правилами
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed разбирает YAML
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("seed: parse yaml: %w", err)
	}
	return &seed, nil
}

// DomainCars конвертирует машины в доменные модели, проверяя перечислимые поля
func (s *Seed) DomainCars() ([]*domain.Car, error) {
	cars := make([]*domain.Car, 0, len(s.Cars))
	for _, c := range s.Cars {
		rate, err := decimal.NewFromString(c.DailyRate)
		if err != nil {
			return nil, fmt.Errorf("seed: car %s: invalid daily_rate %q: %w", c.ID, c.DailyRate, err)
		}

		category := domain.CarCategory(c.Category)
		if !category.IsValid() {
			return nil, fmt.Errorf("seed: car %s: unknown category %q", c.ID, c.Category)
		}

		status := domain.CarStatus(c.Status)
		if c.Status == "" {
			status = domain.CarStatusAvailable
		}
		if !status.IsValid() {
			return nil, fmt.Errorf("seed: car %s: unknown status %q", c.ID, c.Status)
		}

		cars = append(cars, &domain.Car{
			ID:        c.ID,
			Name:      c.Name,
			Category:  category,
			DailyRate: rate,
			Status:    status,
			Seats:     c.Seats,
			Year:      c.Year,
			Location:  c.Location,
		})
	}
	return cars, nil
}

// DomainRules конвертирует ценовые правила в доменные модели
func (s *Seed) DomainRules() ([]*domain.PricingRule, error) {
	rules := make([]*domain.PricingRule, 0, len(s.PricingRules))
	for _, r := range s.PricingRules {
		value, err := decimal.NewFromString(r.Value)
		if err != nil {
			return nil, fmt.Errorf("seed: rule %q: invalid value %q: %w", r.Name, r.Value, err)
		}

		ruleType := domain.RuleType(r.Type)
		if !ruleType.IsValid() {
			return nil, fmt.Errorf("seed: rule %q: unknown type %q", r.Name, r.Type)
		}

		start, err := parseOptionalDate(r.StartDate)
		if err != nil {
			return nil, fmt.Errorf("seed: rule %q: start_date: %w", r.Name, err)
		}
		end, err := parseOptionalDate(r.EndDate)
		if err != nil {
			return nil, fmt.Errorf("seed: rule %q: end_date: %w", r.Name, err)
		}

		category := r.Category
		if category == "" {
			category = domain.CategoryAll
		}

		rules = append(rules, &domain.PricingRule{
			Name:         r.Name,
			Type:         ruleType,
			Category:     category,
			Value:        value,
			IsPercentage: r.IsPercentage,
			StartDate:    start,
			EndDate:      end,
			IsActive:     r.IsActive,
		})
	}
	return rules, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
