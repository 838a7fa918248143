package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	carRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/car"
)

// CarRepository автопарк в памяти процесса
// Возвращает те же ошибки, что и postgres репозиторий
type CarRepository struct {
	mu   sync.RWMutex
	cars map[string]*domain.Car
}

// NewCarRepository создает репозиторий с начальным набором машин
func NewCarRepository(cars ...*domain.Car) *CarRepository {
	r := &CarRepository{cars: make(map[string]*domain.Car, len(cars))}
	for _, c := range cars {
		cp := *c
		r.cars[c.ID] = &cp
	}
	return r
}

func (r *CarRepository) Create(_ context.Context, car *domain.Car) (*domain.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cars[car.ID]; exists {
		return nil, carRepo.ErrDuplicateCar
	}

	now := time.Now().UTC()
	car.CreatedAt = now
	car.UpdatedAt = now

	cp := *car
	r.cars[car.ID] = &cp
	return car, nil
}

func (r *CarRepository) GetByID(_ context.Context, id string) (*domain.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	car, ok := r.cars[id]
	if !ok {
		return nil, carRepo.ErrCarNotFound
	}
	cp := *car
	return &cp, nil
}

func (r *CarRepository) List(_ context.Context, filter domain.CarsFilter) ([]*domain.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cars := make([]*domain.Car, 0, len(r.cars))
	for _, car := range r.cars {
		if filter.Match(car) {
			cp := *car
			cars = append(cars, &cp)
		}
	}

	sort.Slice(cars, func(i, j int) bool { return cars[i].ID < cars[j].ID })
	return cars, nil
}

func (r *CarRepository) Update(_ context.Context, car *domain.Car) (*domain.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.cars[car.ID]
	if !ok {
		return nil, carRepo.ErrCarNotFound
	}

	car.CreatedAt = existing.CreatedAt
	car.UpdatedAt = time.Now().UTC()

	cp := *car
	r.cars[car.ID] = &cp
	return car, nil
}

func (r *CarRepository) UpdateStatus(_ context.Context, id string, status domain.CarStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	car, ok := r.cars[id]
	if !ok {
		return carRepo.ErrCarNotFound
	}
	car.Status = status
	car.UpdatedAt = time.Now().UTC()
	return nil
}
