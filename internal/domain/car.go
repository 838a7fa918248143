package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CarCategory категория автомобиля
type CarCategory string

const (
	CategorySedan    CarCategory = "Sedan"
	CategorySUV      CarCategory = "SUV"
	CategorySports   CarCategory = "Sports"
	CategoryElectric CarCategory = "Electric"
	CategoryCompact  CarCategory = "Compact"
	CategoryLuxury   CarCategory = "Luxury"
)

// Categories все известные категории
var Categories = []CarCategory{
	CategorySedan,
	CategorySUV,
	CategorySports,
	CategoryElectric,
	CategoryCompact,
	CategoryLuxury,
}

// IsValid returns true if the category is one of the known categories
func (c CarCategory) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CarStatus состояние автомобиля в автопарке
type CarStatus string

const (
	CarStatusAvailable   CarStatus = "available"
	CarStatusRented      CarStatus = "rented"
	CarStatusMaintenance CarStatus = "maintenance"
)

// IsValid returns true if the status is one of the known car statuses
func (s CarStatus) IsValid() bool {
	switch s {
	case CarStatusAvailable, CarStatusRented, CarStatusMaintenance:
		return true
	}
	return false
}

// Car represents a rentable vehicle of the fleet
type Car struct {
	ID        string
	Name      string
	Category  CarCategory
	DailyRate decimal.Decimal
	Status    CarStatus
	Seats     int
	Year      int
	Location  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InMaintenance returns true if the car cannot be booked at all
func (c *Car) InMaintenance() bool {
	return c.Status == CarStatusMaintenance
}

// CarsFilter фильтр списка автомобилей, nil поля не применяются
type CarsFilter struct {
	Category     *CarCategory
	Status       *CarStatus
	Location     *string
	MinSeats     *int
	MaxDailyRate *decimal.Decimal
}

// Match проверяет автомобиль на соответствие фильтру
func (f CarsFilter) Match(c *Car) bool {
	if f.Category != nil && c.Category != *f.Category {
		return false
	}
	if f.Status != nil && c.Status != *f.Status {
		return false
	}
	if f.Location != nil && c.Location != *f.Location {
		return false
	}
	if f.MinSeats != nil && c.Seats < *f.MinSeats {
		return false
	}
	if f.MaxDailyRate != nil && c.DailyRate.GreaterThan(*f.MaxDailyRate) {
		return false
	}
	return true
}
