package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	carRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/car"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	carRepo      CarRepository
	availability AvailabilityChecker
	pricing      PriceCalculator
	locker       CarLocker
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	carRepo CarRepository,
	availability AvailabilityChecker,
	pricing PriceCalculator,
	locker CarLocker,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		carRepo:      carRepo,
		availability: availability,
		pricing:      pricing,
		locker:       locker,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и запись идут под локом машины в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%s, car=%s, pickup=%s, return=%s",
		req.CustomerID, req.CarID, req.PickupDate.Format(domain.DateFormat), req.ReturnDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Машина существует и не на обслуживании
	if err := uc.checkCar(ctx, req.CarID); err != nil {
		return nil, err
	}

	// 3. Лок машины
	unlock, err := uc.locker.Lock(ctx, req.CarID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to lock car=%s: %v", req.CarID, err)
		return nil, fmt.Errorf("%w: failed to lock car: %v", ErrInternal, err)
	}
	defer unlock()

	var result *domain.Booking

	// 4. Повторная проверка, расчет цены и запись в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Статус машины мог измениться, пока ждали лок
		if err := uc.checkCar(txCtx, req.CarID); err != nil {
			return err
		}

		// 4.2. Период не занят
		available, err := uc.availability.IsAvailable(txCtx, req.CarID, req.PickupDate, req.ReturnDate)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
		}
		if !available {
			uc.logger.Warn("CreateBooking: car=%s is already booked for %s..%s", req.CarID,
				req.PickupDate.Format(domain.DateFormat), req.ReturnDate.Format(domain.DateFormat))
			return fmt.Errorf("%w: dates overlap an existing booking", ErrCarUnavailable)
		}

		// 4.3. Цена по правилам на дату получения
		total, err := uc.pricing.ComputePrice(txCtx, req.CarID, req.PickupDate, req.ReturnDate)
		if err != nil {
			switch {
			case errors.Is(err, pricing.ErrCarNotFound):
				return ErrCarNotFound
			case errors.Is(err, pricing.ErrInvalidDateRange):
				return fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
			}
			uc.logger.Error("CreateBooking: failed to compute price: %v", err)
			return fmt.Errorf("%w: failed to compute price: %v", ErrInternal, err)
		}

		// 4.4. Сохраняем бронирование
		booking := &domain.Booking{
			ID:          uuid.NewString(),
			CarID:       req.CarID,
			CustomerID:  req.CustomerID,
			PickupDate:  req.PickupDate,
			ReturnDate:  req.ReturnDate,
			TotalAmount: total,
			Status:      domain.StatusPending,
			Location:    req.Location,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, total=%s", result.ID, result.TotalAmount.StringFixed(2))

	if err := uc.publisher.Publish(ctx, domain.NewBookingEvent(result, "", uc.timeProvider.Now())); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%s: %v", result.ID, err)
	}

	return &Response{
		ID:          result.ID,
		CarID:       result.CarID,
		CustomerID:  result.CustomerID,
		PickupDate:  result.PickupDate,
		ReturnDate:  result.ReturnDate,
		TotalAmount: result.TotalAmount,
		Status:      string(result.Status),
		Location:    result.Location,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

func (uc *UseCase) checkCar(ctx context.Context, carID string) error {
	car, err := uc.carRepo.GetByID(ctx, carID)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			uc.logger.Warn("CreateBooking: car id=%s not found", carID)
			return ErrCarNotFound
		}
		uc.logger.Error("CreateBooking: failed to get car id=%s: %v", carID, err)
		return fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
	}

	if car.InMaintenance() {
		uc.logger.Warn("CreateBooking: car id=%s is in maintenance", carID)
		return fmt.Errorf("%w: car is in maintenance", ErrCarUnavailable)
	}
	return nil
}
