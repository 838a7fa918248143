package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	carRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/car"
)

// UseCase проверка доступности машины на период
type UseCase struct {
	bookingRepo BookingRepository
	carRepo     CarRepository
	strict      bool
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
// strict: pending бронирования тоже занимают машину
func NewUseCase(bookingRepo BookingRepository, carRepo CarRepository, strict bool, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		strict:      strict,
		logger:      logger,
	}
}

// IsAvailable true, если ни одно блокирующее бронирование машины не пересекается с [pickup, ret)
// Внутри транзакции чтение идет с блокировкой строк
func (uc *UseCase) IsAvailable(ctx context.Context, carID string, pickup, ret time.Time) (bool, error) {
	if err := validateRange(pickup, ret); err != nil {
		return false, err
	}

	conflicts, err := uc.conflicts(ctx, carID, pickup, ret)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// Execute проверяет существование машины и возвращает пересекающиеся бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: car=%s, pickup=%s, return=%s",
		req.CarID, req.PickupDate.Format(domain.DateFormat), req.ReturnDate.Format(domain.DateFormat))

	if err := validateRange(req.PickupDate, req.ReturnDate); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	if _, err := uc.carRepo.GetByID(ctx, req.CarID); err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			uc.logger.Warn("CheckAvailability: car id=%s not found", req.CarID)
			return nil, ErrCarNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get car id=%s: %v", req.CarID, err)
		return nil, fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
	}

	conflicts, err := uc.conflicts(ctx, req.CarID, req.PickupDate, req.ReturnDate)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(conflicts))
	for _, b := range conflicts {
		ids = append(ids, b.ID)
	}

	uc.logger.Info("CheckAvailability: car=%s, %d conflicting bookings", req.CarID, len(ids))

	return &Response{
		CarID:      req.CarID,
		PickupDate: req.PickupDate,
		ReturnDate: req.ReturnDate,
		Available:  len(ids) == 0,
		Conflicts:  ids,
	}, nil
}

func (uc *UseCase) conflicts(ctx context.Context, carID string, pickup, ret time.Time) ([]*domain.Booking, error) {
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		CarID:    &carID,
		Statuses: domain.BlockingStatuses(uc.strict),
		From:     &pickup,
		To:       &ret,
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings for car=%s: %v", carID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	result := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Overlaps(pickup, ret) {
			result = append(result, b)
		}
	}
	return result, nil
}
