package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/car"
)

// Service жизненный цикл бронирований: одобрение, отклонение, отмена, завершение
type Service struct {
	bookingRepo  BookingRepository
	carRepo      CarRepository
	locker       CarLocker
	txManager    TransactionManager
	publisher    EventPublisher
	transitions  TransitionRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	carRepo CarRepository,
	locker CarLocker,
	txManager TransactionManager,
	publisher EventPublisher,
	transitions TransitionRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		carRepo:      carRepo,
		locker:       locker,
		txManager:    txManager,
		publisher:    publisher,
		transitions:  transitions,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// guardFunc дополнительная проверка перехода, выполняется под локом машины
type guardFunc func(ctx context.Context, booking *domain.Booking) error

// Approve одобряет pending бронирование, если период не занят другим одобренным
// Статус машины не меняется
func (s *Service) Approve(ctx context.Context, id string) (*domain.Booking, error) {
	return s.transition(ctx, "Approve", id, domain.StatusApproved, nil, s.approveGuard)
}

// Reject отклоняет pending бронирование
func (s *Service) Reject(ctx context.Context, id string, reason *string) (*domain.Booking, error) {
	reason, err := normalizeReason(reason)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, "Reject", id, domain.StatusRejected, reason, nil)
}

// Cancel отменяет pending или approved бронирование; период одобренного освобождается
func (s *Service) Cancel(ctx context.Context, id string, reason *string) (*domain.Booking, error) {
	reason, err := normalizeReason(reason)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, "Cancel", id, domain.StatusCancelled, reason, nil)
}

// Complete завершает одобренное бронирование после даты возврата
func (s *Service) Complete(ctx context.Context, id string) (*domain.Booking, error) {
	return s.transition(ctx, "Complete", id, domain.StatusCompleted, nil, s.completeGuard)
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// List получает бронирования по фильтру
func (s *Service) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	for _, status := range filter.Statuses {
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
		}
	}
	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		return nil, fmt.Errorf("%w: 'to' must be after 'from'", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d bookings", len(bookings))
	return bookings, nil
}

// Stats количество бронирований по статусам и выручка
func (s *Service) Stats(ctx context.Context) (*domain.BookingStats, error) {
	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{})
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	stats := domain.NewBookingStats(bookings)
	return &stats, nil
}

// CompleteFinished завершает все одобренные бронирования с прошедшей датой возврата
// Ошибки по отдельным бронированиям логируются и не прерывают обход
func (s *Service) CompleteFinished(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	approved, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		Statuses: []domain.BookingStatus{domain.StatusApproved},
	})
	if err != nil {
		s.logger.Error("CompleteFinished: repository error: %v", err)
		return 0, fmt.Errorf("%w: CompleteFinished - repository error: %v", ErrInternal, err)
	}

	completed := 0
	for _, b := range approved {
		if b.ReturnDate.After(now) {
			continue
		}
		if ctx.Err() != nil {
			return completed, ctx.Err()
		}
		if _, err := s.Complete(ctx, b.ID); err != nil {
			s.logger.Warn("CompleteFinished: booking id=%s skipped: %v", b.ID, err)
			continue
		}
		completed++
	}

	if completed > 0 {
		s.logger.Info("CompleteFinished: completed %d bookings", completed)
	}
	return completed, nil
}

// transition общий путь перехода статуса
//
// 1. читает бронирование, чтобы узнать машину
// 2. берет лок машины
// 3. в сериализуемой транзакции перечитывает бронирование, сверяет переход с таблицей, вызывает guard
// 4. пишет новый статус условным обновлением (from -> to)
// 5. после коммита публикует событие и обновляет метрику
func (s *Service) transition(
	ctx context.Context,
	op string,
	id string,
	to domain.BookingStatus,
	reason *string,
	guard guardFunc,
) (*domain.Booking, error) {
	s.logger.Info("%s: booking id=%s", op, id)

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, booking.CarID)
	if err != nil {
		s.logger.Error("%s: failed to lock car=%s: %v", op, booking.CarID, err)
		return nil, fmt.Errorf("%w: %s - lock car: %v", ErrInternal, op, err)
	}
	defer unlock()

	var (
		from   domain.BookingStatus
		result *domain.Booking
	)

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: %s - reread booking: %v", ErrInternal, op, err)
		}

		if !current.Status.CanTransitionTo(to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
		}

		if guard != nil {
			if err := guard(txCtx, current); err != nil {
				return err
			}
		}

		from = current.Status
		updated, err := s.bookingRepo.UpdateStatus(txCtx, id, current.Status, to, reason, s.timeProvider.Now())
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: status of booking %s changed concurrently", ErrInvalidTransition, id)
			}
			return fmt.Errorf("%w: %s - update status: %v", ErrInternal, op, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		s.logTransitionError(op, id, err)
		return nil, err
	}

	s.transitions.RecordTransition(string(from), string(to))
	s.publish(ctx, domain.NewBookingEvent(result, from, s.timeProvider.Now()))

	s.logger.Info("%s: booking id=%s %s -> %s", op, id, from, to)
	return result, nil
}

// approveGuard машина не на обслуживании и нет другого одобренного бронирования на пересекающийся период
func (s *Service) approveGuard(ctx context.Context, booking *domain.Booking) error {
	car, err := s.carRepo.GetByID(ctx, booking.CarID)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			return ErrCarNotFound
		}
		return fmt.Errorf("%w: Approve - get car: %v", ErrInternal, err)
	}
	if car.InMaintenance() {
		return fmt.Errorf("%w: car %s is in maintenance", ErrCarUnavailable, car.ID)
	}

	approved, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		CarID:    &booking.CarID,
		Statuses: []domain.BookingStatus{domain.StatusApproved},
		From:     &booking.PickupDate,
		To:       &booking.ReturnDate,
	})
	if err != nil {
		return fmt.Errorf("%w: Approve - list approved bookings: %v", ErrInternal, err)
	}

	for _, other := range approved {
		if other.ID != booking.ID && other.Overlaps(booking.PickupDate, booking.ReturnDate) {
			return fmt.Errorf("%w: overlaps booking %s", ErrConflictingApproval, other.ID)
		}
	}
	return nil
}

// completeGuard завершить можно только после окончания периода аренды
func (s *Service) completeGuard(_ context.Context, booking *domain.Booking) error {
	if booking.ReturnDate.After(s.timeProvider.Now()) {
		return fmt.Errorf("%w: rental period not finished (return date %s)",
			ErrInvalidTransition, booking.ReturnDate.Format(domain.DateFormat))
	}
	return nil
}

// publish отправляет событие; ошибка публикации не отменяет переход
func (s *Service) publish(ctx context.Context, event domain.BookingEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish: failed to publish %s for booking id=%s: %v", event.Type, event.BookingID, err)
	}
}

func (s *Service) logTransitionError(op, id string, err error) {
	switch {
	case errors.Is(err, ErrInternal):
		s.logger.Error("%s: booking id=%s: %v", op, id, err)
	default:
		s.logger.Warn("%s: booking id=%s rejected: %v", op, id, err)
	}
}

// normalizeReason пустая причина считается отсутствующей
func normalizeReason(reason *string) (*string, error) {
	if reason == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return &trimmed, nil
}
