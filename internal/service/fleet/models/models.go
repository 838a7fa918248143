package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

var (
	// ErrInvalidCategory возвращается при неизвестной категории
	ErrInvalidCategory = errors.New("invalid car category")

	// ErrInvalidStatus возвращается при неизвестном статусе машины
	ErrInvalidStatus = errors.New("invalid car status")
)

// Request модели

// CarRequest тело запросов на создание и изменение машины
type CarRequest struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	DailyRate decimal.Decimal `json:"dailyRate"`
	Status    string          `json:"status,omitempty"`
	Seats     int             `json:"seats"`
	Year      int             `json:"year"`
	Location  string          `json:"location"`
}

// ToDomain конвертирует запрос в domain модель; пустой статус остается пустым
func (r *CarRequest) ToDomain() *domain.Car {
	return &domain.Car{
		ID:        r.ID,
		Name:      r.Name,
		Category:  domain.CarCategory(r.Category),
		DailyRate: r.DailyRate,
		Status:    domain.CarStatus(r.Status),
		Seats:     r.Seats,
		Year:      r.Year,
		Location:  r.Location,
	}
}

// UpdateStatusRequest смена статуса машины
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// CarResponse ответ с данными машины
type CarResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	DailyRate decimal.Decimal `json:"dailyRate"`
	Status    string          `json:"status"`
	Seats     int             `json:"seats"`
	Year      int             `json:"year"`
	Location  string          `json:"location"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CarListResponse ответ со списком машин
type CarListResponse struct {
	Cars []CarResponse `json:"cars"`
}

// FromDomainCar конвертирует domain модель в DTO
func FromDomainCar(c *domain.Car) *CarResponse {
	if c == nil {
		return nil
	}
	return &CarResponse{
		ID:        c.ID,
		Name:      c.Name,
		Category:  string(c.Category),
		DailyRate: c.DailyRate,
		Status:    string(c.Status),
		Seats:     c.Seats,
		Year:      c.Year,
		Location:  c.Location,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromDomainCarList конвертирует список domain моделей в DTO
func FromDomainCarList(cars []*domain.Car) *CarListResponse {
	resp := &CarListResponse{Cars: make([]CarResponse, 0, len(cars))}
	for _, c := range cars {
		if carResp := FromDomainCar(c); carResp != nil {
			resp.Cars = append(resp.Cars, *carResp)
		}
	}
	return resp
}

// ToDomainCategory конвертирует строку в domain.CarCategory с валидацией
func ToDomainCategory(category string) (domain.CarCategory, error) {
	c := domain.CarCategory(category)
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// ToDomainCarStatus конвертирует строку в domain.CarStatus с валидацией
func ToDomainCarStatus(status string) (domain.CarStatus, error) {
	s := domain.CarStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
