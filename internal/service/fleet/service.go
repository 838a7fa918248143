package fleet

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	carRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/car"
)

// Service реестр автопарка
type Service struct {
	carRepo CarRepository
	logger  Logger
}

// NewService создает новый экземпляр сервиса автопарка
func NewService(carRepo CarRepository, logger Logger) *Service {
	return &Service{
		carRepo: carRepo,
		logger:  logger,
	}
}

// GetCar получает автомобиль по ID
func (s *Service) GetCar(ctx context.Context, id string) (*domain.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetCar", id, err)
	}
	return car, nil
}

// ListCars возвращает автомобили по фильтру
func (s *Service) ListCars(ctx context.Context, filter domain.CarsFilter) ([]*domain.Car, error) {
	if filter.Category != nil && !filter.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *filter.Category)
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *filter.Status)
	}

	cars, err := s.carRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListCars: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCars - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListCars: found %d cars", len(cars))
	return cars, nil
}

// SetStatus меняет статус автомобиля (available, rented, maintenance)
func (s *Service) SetStatus(ctx context.Context, id string, status domain.CarStatus) (*domain.Car, error) {
	if !status.IsValid() {
		s.logger.Warn("SetStatus: invalid status=%s for car=%s", status, id)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	if err := s.carRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, s.mapRepoError("SetStatus", id, err)
	}

	s.logger.Info("SetStatus: car=%s status=%s", id, status)
	return s.GetCar(ctx, id)
}

// CreateCar добавляет автомобиль в автопарк
func (s *Service) CreateCar(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	if car.Status == "" {
		car.Status = domain.CarStatusAvailable
	}
	if err := validateCar(car); err != nil {
		s.logger.Warn("CreateCar: validation failed: %v", err)
		return nil, err
	}

	created, err := s.carRepo.Create(ctx, car)
	if err != nil {
		if errors.Is(err, carRepo.ErrDuplicateCar) {
			return nil, ErrCarAlreadyExists
		}
		s.logger.Error("CreateCar: repository error for car=%s: %v", car.ID, err)
		return nil, fmt.Errorf("%w: CreateCar - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateCar: created car=%s category=%s", created.ID, created.Category)
	return created, nil
}

// UpdateCar перезаписывает редактируемые поля существующего автомобиля
func (s *Service) UpdateCar(ctx context.Context, id string, car *domain.Car) (*domain.Car, error) {
	car.ID = id
	if err := validateCar(car); err != nil {
		s.logger.Warn("UpdateCar: validation failed for car=%s: %v", id, err)
		return nil, err
	}

	updated, err := s.carRepo.Update(ctx, car)
	if err != nil {
		return nil, s.mapRepoError("UpdateCar", id, err)
	}

	s.logger.Info("UpdateCar: updated car=%s", id)
	return updated, nil
}

func (s *Service) mapRepoError(op, id string, err error) error {
	if errors.Is(err, carRepo.ErrCarNotFound) {
		s.logger.Warn("%s: car=%s not found", op, id)
		return ErrCarNotFound
	}
	s.logger.Error("%s: repository error for car=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validateCar(car *domain.Car) error {
	if car.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if car.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !car.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, car.Category)
	}
	if !car.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, car.Status)
	}
	if !car.DailyRate.IsPositive() {
		return fmt.Errorf("%w: daily rate must be positive", ErrInvalidInput)
	}
	if car.Seats <= 0 {
		return fmt.Errorf("%w: seats must be positive", ErrInvalidInput)
	}
	return nil
}
