package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/lock"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarRentalService/internal/service/bookings"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
	"github.com/m04kA/SMC-CarRentalService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-CarRentalService/pkg/logger"
	"github.com/m04kA/SMC-CarRentalService/pkg/metrics"
	"github.com/m04kA/SMC-CarRentalService/pkg/txmanager"
)

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

type testEnv struct {
	uc        *UseCase
	lifecycle *bookings.Service
	bookings  *memory.BookingRepository
	publisher *recordingPublisher
}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestEnv(t *testing.T, strict bool, rules ...*domain.PricingRule) *testEnv {
	t.Helper()

	cars := memory.NewCarRepository(
		&domain.Car{ID: "C1", Name: "BMW 5", Category: domain.CategoryLuxury, DailyRate: decimal.NewFromInt(100), Status: domain.CarStatusAvailable},
		&domain.Car{ID: "C2", Name: "Toyota Camry", Category: domain.CategorySedan, DailyRate: decimal.NewFromInt(50), Status: domain.CarStatusAvailable},
		&domain.Car{ID: "C3", Name: "Ford Explorer", Category: domain.CategorySUV, DailyRate: decimal.NewFromInt(80), Status: domain.CarStatusMaintenance},
	)
	bookingRepo := memory.NewBookingRepository()
	ruleRepo := memory.NewPricingRepository(rules...)
	locker := lock.NewKeyedMutex()
	publisher := &recordingPublisher{}

	availability := check_availability.NewUseCase(bookingRepo, cars, strict, logger.Nop{})
	pricer := pricing.NewService(cars, ruleRepo, logger.Nop{})

	uc := NewUseCase(bookingRepo, cars, availability, pricer, locker, txmanager.Noop{}, publisher, logger.Nop{})
	lifecycle := bookings.NewService(bookingRepo, cars, locker, txmanager.Noop{}, publisher, (*metrics.Metrics)(nil), logger.Nop{})

	return &testEnv{uc: uc, lifecycle: lifecycle, bookings: bookingRepo, publisher: publisher}
}

func TestUseCase_Execute_PriceAndOverlap(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	resp, err := env.uc.Execute(ctx, &Request{
		CarID:      "C1",
		CustomerID: "customer-1",
		PickupDate: day("2024-03-01"),
		ReturnDate: day("2024-03-04"),
		Location:   "Downtown",
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(300)), "got %s", resp.TotalAmount)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.NotEmpty(t, resp.ID)

	_, err = env.lifecycle.Approve(ctx, resp.ID)
	require.NoError(t, err)

	_, err = env.uc.Execute(ctx, &Request{
		CarID:      "C1",
		CustomerID: "customer-2",
		PickupDate: day("2024-03-03"),
		ReturnDate: day("2024-03-06"),
		Location:   "Airport",
	})
	assert.ErrorIs(t, err, ErrCarUnavailable)
}

func TestUseCase_Execute_Discount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false, &domain.PricingRule{
		ID:           1,
		Name:         "Summer sale",
		Type:         domain.RuleTypeDiscount,
		Category:     domain.CategoryAll,
		Value:        decimal.NewFromInt(15),
		IsPercentage: true,
		IsActive:     true,
	})

	resp, err := env.uc.Execute(ctx, &Request{
		CarID:      "C2",
		CustomerID: "customer-1",
		PickupDate: day("2024-06-01"),
		ReturnDate: day("2024-06-05"),
		Location:   "Downtown",
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(170)), "got %s", resp.TotalAmount)
}

func TestUseCase_Execute_PolicyForPending(t *testing.T) {
	ctx := context.Background()

	req := func(customer string) *Request {
		return &Request{
			CarID:      "C2",
			CustomerID: customer,
			PickupDate: day("2024-07-01"),
			ReturnDate: day("2024-07-03"),
			Location:   "Downtown",
		}
	}

	t.Run("optimistic allows overlapping pending", func(t *testing.T) {
		env := newTestEnv(t, false)
		_, err := env.uc.Execute(ctx, req("a"))
		require.NoError(t, err)
		_, err = env.uc.Execute(ctx, req("b"))
		assert.NoError(t, err)
	})

	t.Run("strict blocks overlapping pending", func(t *testing.T) {
		env := newTestEnv(t, true)
		_, err := env.uc.Execute(ctx, req("a"))
		require.NoError(t, err)
		_, err = env.uc.Execute(ctx, req("b"))
		assert.ErrorIs(t, err, ErrCarUnavailable)
	})
}

func TestUseCase_Execute_ConcurrentStrict(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)

	const workers = 5
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.uc.Execute(ctx, &Request{
				CarID:      "C2",
				CustomerID: "customer",
				PickupDate: day("2024-08-01"),
				ReturnDate: day("2024-08-05"),
				Location:   "Downtown",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrCarUnavailable)
	}
	assert.Equal(t, 1, succeeded)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "return before pickup",
			req:     Request{CarID: "C1", CustomerID: "c", PickupDate: day("2024-03-05"), ReturnDate: day("2024-03-01"), Location: "x"},
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "empty range",
			req:     Request{CarID: "C1", CustomerID: "c", PickupDate: day("2024-03-05"), ReturnDate: day("2024-03-05"), Location: "x"},
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "missing customer",
			req:     Request{CarID: "C1", PickupDate: day("2024-03-01"), ReturnDate: day("2024-03-05"), Location: "x"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing location",
			req:     Request{CarID: "C1", CustomerID: "c", PickupDate: day("2024-03-01"), ReturnDate: day("2024-03-05"), Location: "  "},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown car",
			req:     Request{CarID: "nope", CustomerID: "c", PickupDate: day("2024-03-01"), ReturnDate: day("2024-03-05"), Location: "x"},
			wantErr: ErrCarNotFound,
		},
		{
			name:    "car in maintenance",
			req:     Request{CarID: "C3", CustomerID: "c", PickupDate: day("2024-03-01"), ReturnDate: day("2024-03-05"), Location: "x"},
			wantErr: ErrCarUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := env.uc.Execute(ctx, &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	list, err := env.bookings.List(ctx, domain.BookingsFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUseCase_Execute_PublishesCreatedEvent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)
	env.publisher.err = errors.New("broker down")

	resp, err := env.uc.Execute(ctx, &Request{
		CarID:      "C2",
		CustomerID: "customer-1",
		PickupDate: day("2024-09-01"),
		ReturnDate: day("2024-09-02"),
		Location:   "Downtown",
	})
	require.NoError(t, err)

	require.Len(t, env.publisher.events, 1)
	event := env.publisher.events[0]
	assert.Equal(t, domain.EventBookingCreated, event.Type)
	assert.Equal(t, resp.ID, event.BookingID)
	assert.Equal(t, domain.StatusPending, event.To)
}
