package bookings

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/lock"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarRentalService/pkg/logger"
	"github.com/m04kA/SMC-CarRentalService/pkg/metrics"
	"github.com/m04kA/SMC-CarRentalService/pkg/txmanager"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]domain.EventType, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

type testEnv struct {
	service   *Service
	bookings  *memory.BookingRepository
	cars      *memory.CarRepository
	publisher *recordingPublisher
	metrics   *metrics.Metrics
}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	cars := memory.NewCarRepository(
		&domain.Car{ID: "1", Name: "Toyota Camry", Category: domain.CategorySedan, DailyRate: decimal.NewFromInt(50), Status: domain.CarStatusAvailable},
		&domain.Car{ID: "2", Name: "Ford Explorer", Category: domain.CategorySUV, DailyRate: decimal.NewFromInt(80), Status: domain.CarStatusMaintenance},
	)
	bookings := memory.NewBookingRepository()
	publisher := &recordingPublisher{}
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())

	svc := NewService(bookings, cars, lock.NewKeyedMutex(), txmanager.Noop{}, publisher, m, logger.Nop{})
	svc.timeProvider = fixedClock{now: now}

	return &testEnv{service: svc, bookings: bookings, cars: cars, publisher: publisher, metrics: m}
}

func (e *testEnv) addBooking(t *testing.T, id, carID, pickup, ret string, status domain.BookingStatus) {
	t.Helper()
	_, err := e.bookings.Create(context.Background(), &domain.Booking{
		ID:          id,
		CarID:       carID,
		CustomerID:  "customer-1",
		PickupDate:  day(pickup),
		ReturnDate:  day(ret),
		TotalAmount: decimal.NewFromInt(100),
		Status:      status,
		Location:    "Downtown",
	})
	require.NoError(t, err)
}

func TestService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("pending booking without conflicts is approved", func(t *testing.T) {
		env := newTestEnv(t, day("2024-06-01"))
		env.addBooking(t, "b1", "1", "2024-06-10", "2024-06-15", domain.StatusPending)

		got, err := env.service.Approve(ctx, "b1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, got.Status)
		assert.Equal(t, []domain.EventType{domain.EventBookingApproved}, env.publisher.types())
		assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.BookingTransitions.WithLabelValues("pending", "approved")))

		car, err := env.cars.GetByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, domain.CarStatusAvailable, car.Status)
	})

	t.Run("overlapping approved booking blocks approval", func(t *testing.T) {
		env := newTestEnv(t, day("2024-06-01"))
		env.addBooking(t, "b1", "1", "2024-06-10", "2024-06-15", domain.StatusApproved)
		env.addBooking(t, "b2", "1", "2024-06-14", "2024-06-18", domain.StatusPending)

		_, err := env.service.Approve(ctx, "b2")
		assert.ErrorIs(t, err, ErrConflictingApproval)

		stored, err := env.bookings.GetByID(ctx, "b2")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, stored.Status)
		assert.Empty(t, env.publisher.types())
	})

	t.Run("adjacent periods do not conflict", func(t *testing.T) {
		env := newTestEnv(t, day("2024-06-01"))
		env.addBooking(t, "b1", "1", "2024-06-10", "2024-06-15", domain.StatusApproved)
		env.addBooking(t, "b2", "1", "2024-06-15", "2024-06-18", domain.StatusPending)

		_, err := env.service.Approve(ctx, "b2")
		assert.NoError(t, err)
	})

	t.Run("car in maintenance", func(t *testing.T) {
		env := newTestEnv(t, day("2024-06-01"))
		env.addBooking(t, "b1", "2", "2024-06-10", "2024-06-15", domain.StatusPending)

		_, err := env.service.Approve(ctx, "b1")
		assert.ErrorIs(t, err, ErrCarUnavailable)
	})

	t.Run("already approved", func(t *testing.T) {
		env := newTestEnv(t, day("2024-06-01"))
		env.addBooking(t, "b1", "1", "2024-06-10", "2024-06-15", domain.StatusApproved)

		_, err := env.service.Approve(ctx, "b1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown booking", func(t *testing.T) {
		env := newTestEnv(t, day("2024-06-01"))

		_, err := env.service.Approve(ctx, "missing")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_Approve_Concurrent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, day("2024-06-01"))
	env.addBooking(t, "b1", "1", "2024-06-10", "2024-06-15", domain.StatusPending)
	env.addBooking(t, "b2", "1", "2024-06-12", "2024-06-20", domain.StatusPending)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{"b1", "b2"} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = env.service.Approve(ctx, id)
		}(i, id)
	}
	wg.Wait()

	succeeded, conflicted := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrConflictingApproval):
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
}

func TestService_Reject(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, day("2024-06-01"))
	env.addBooking(t, "b1", "1", "2024-06-10", "2024-06-15", domain.StatusPending)

	got, err := env.service.Reject(ctx, "b1", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, got.Status)
	assert.Nil(t, got.CancellationReason)

	_, err = env.service.Reject(ctx, "b1", nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, []domain.EventType{domain.EventBookingRejected}, env.publisher.types())
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("approved booking frees the period", func(t *testing.T) {
		env := newTestEnv(t, day("2024-06-01"))
		env.addBooking(t, "b1", "1", "2024-06-10", "2024-06-15", domain.StatusApproved)
		env.addBooking(t, "b2", "1", "2024-06-10", "2024-06-15", domain.StatusPending)

		reason := "  plans changed "
		got, err := env.service.Cancel(ctx, "b1", &reason)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, got.Status)
		require.NotNil(t, got.CancellationReason)
		assert.Equal(t, "plans changed", *got.CancellationReason)
		require.NotNil(t, got.CancelledAt)

		_, err = env.service.Approve(ctx, "b2")
		assert.NoError(t, err)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		env := newTestEnv(t, day("2024-06-01"))
		env.addBooking(t, "b1", "1", "2024-05-10", "2024-05-15", domain.StatusCompleted)

		_, err := env.service.Cancel(ctx, "b1", nil)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("reason too long", func(t *testing.T) {
		env := newTestEnv(t, day("2024-06-01"))
		env.addBooking(t, "b1", "1", "2024-06-10", "2024-06-15", domain.StatusPending)

		reason := strings.Repeat("x", domain.MaxCancellationReasonLength+1)

		_, err := env.service.Cancel(ctx, "b1", &reason)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("after return date", func(t *testing.T) {
		env := newTestEnv(t, day("2024-06-20"))
		env.addBooking(t, "b1", "1", "2024-06-10", "2024-06-15", domain.StatusApproved)

		got, err := env.service.Complete(ctx, "b1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, got.Status)
	})

	t.Run("before return date", func(t *testing.T) {
		env := newTestEnv(t, day("2024-06-12"))
		env.addBooking(t, "b1", "1", "2024-06-10", "2024-06-15", domain.StatusApproved)

		_, err := env.service.Complete(ctx, "b1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("pending cannot be completed", func(t *testing.T) {
		env := newTestEnv(t, day("2024-06-20"))
		env.addBooking(t, "b1", "1", "2024-06-10", "2024-06-15", domain.StatusPending)

		_, err := env.service.Complete(ctx, "b1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestService_CompleteFinished(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, day("2024-06-16"))
	env.addBooking(t, "done", "1", "2024-06-10", "2024-06-15", domain.StatusApproved)
	env.addBooking(t, "running", "1", "2024-06-15", "2024-06-20", domain.StatusApproved)
	env.addBooking(t, "pending", "1", "2024-06-01", "2024-06-05", domain.StatusPending)

	completed, err := env.service.CompleteFinished(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)

	done, err := env.bookings.GetByID(ctx, "done")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.Status)

	running, err := env.bookings.GetByID(ctx, "running")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, running.Status)
}

func TestService_PublishFailureDoesNotFailTransition(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, day("2024-06-01"))
	env.publisher.err = errors.New("broker down")
	env.addBooking(t, "b1", "1", "2024-06-10", "2024-06-15", domain.StatusPending)

	got, err := env.service.Approve(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
}

func TestService_ListAndStats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, day("2024-06-01"))
	env.addBooking(t, "b1", "1", "2024-06-10", "2024-06-15", domain.StatusApproved)
	env.addBooking(t, "b2", "1", "2024-06-20", "2024-06-25", domain.StatusPending)
	env.addBooking(t, "b3", "2", "2024-06-01", "2024-06-03", domain.StatusCompleted)

	carID := "1"
	list, err := env.service.List(ctx, domain.BookingsFilter{CarID: &carID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b1", list[0].ID)

	_, err = env.service.List(ctx, domain.BookingsFilter{Statuses: []domain.BookingStatus{"unknown"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	stats, err := env.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.True(t, stats.Revenue.Equal(decimal.NewFromInt(200)))
}
