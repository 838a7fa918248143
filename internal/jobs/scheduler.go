package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInvalidSchedule возвращается при некорректном cron выражении
var ErrInvalidSchedule = errors.New("jobs: invalid cron schedule")

// DefaultRunTimeout ограничение на один проход задачи
const DefaultRunTimeout = time.Minute

// BookingCompleter завершает одобренные бронирования с прошедшей датой возврата
type BookingCompleter interface {
	CompleteFinished(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler периодические задачи сервиса
type Scheduler struct {
	cron      *cron.Cron
	completer BookingCompleter
	timeout   time.Duration
	logger    Logger
}

// NewScheduler создает планировщик (UTC, точность до секунд) и регистрирует задачу завершения бронирований
func NewScheduler(completeSpec string, completer BookingCompleter, logger Logger) (*Scheduler, error) {
	cronLog := cronLogger{logger: logger}

	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
		cron.WithChain(
			cron.Recover(cronLog),
			cron.SkipIfStillRunning(cronLog),
		),
	)

	s := &Scheduler{
		cron:      c,
		completer: completer,
		timeout:   DefaultRunTimeout,
		logger:    logger,
	}

	if _, err := s.cron.AddFunc(completeSpec, s.CompleteFinishedBookings); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, completeSpec, err)
	}

	logger.Info("Scheduler: registered CompleteFinishedBookings with schedule %q", completeSpec)
	return s, nil
}

// CompleteFinishedBookings один проход завершения бронирований
func (s *Scheduler) CompleteFinishedBookings() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	completed, err := s.completer.CompleteFinished(ctx)
	if err != nil {
		s.logger.Error("CompleteFinishedBookings: failed after %d bookings: %v", completed, err)
		return
	}

	s.logger.Info("CompleteFinishedBookings: completed=%d, took=%s", completed, time.Since(start))
}

// Start запускает планировщик
func (s *Scheduler) Start() {
	s.logger.Info("Scheduler: starting")
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения запущенных задач
func (s *Scheduler) Stop(ctx context.Context) error {
	s.logger.Info("Scheduler: stopping")
	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.logger.Info("Scheduler: stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger адаптер cron.Logger поверх printf логгера
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info("cron: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
