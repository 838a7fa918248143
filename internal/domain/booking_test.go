package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBookingStatus_Transitions(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		ok   bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusApproved, StatusCompleted, true},
		{StatusApproved, StatusCancelled, true},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusCancelled, StatusApproved, false},
		{StatusCompleted, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
}

func TestRangesOverlap(t *testing.T) {
	a1, a2 := day("2025-03-01"), day("2025-03-04")

	assert.True(t, RangesOverlap(a1, a2, day("2025-03-03"), day("2025-03-05")))
	assert.True(t, RangesOverlap(a1, a2, day("2025-02-01"), day("2025-04-01")))
	// касание границ не пересечение
	assert.False(t, RangesOverlap(a1, a2, day("2025-03-04"), day("2025-03-06")))
	assert.False(t, RangesOverlap(a1, a2, day("2025-02-25"), day("2025-03-01")))
}

func TestHasOverlap(t *testing.T) {
	bookings := []*Booking{
		{PickupDate: day("2025-03-01"), ReturnDate: day("2025-03-04")},
		{PickupDate: day("2025-03-10"), ReturnDate: day("2025-03-12")},
	}

	assert.True(t, HasOverlap(bookings, day("2025-03-11"), day("2025-03-15")))
	assert.False(t, HasOverlap(bookings, day("2025-03-04"), day("2025-03-10")))
	assert.False(t, HasOverlap(nil, day("2025-03-04"), day("2025-03-10")))
}

func TestBlockingStatuses(t *testing.T) {
	assert.Equal(t, []BookingStatus{StatusApproved}, BlockingStatuses(false))
	assert.ElementsMatch(t, []BookingStatus{StatusPending, StatusApproved}, BlockingStatuses(true))
}

func TestBookingsFilter_Match(t *testing.T) {
	carID := "1"
	other := "2"
	from, to := day("2025-03-03"), day("2025-03-10")
	b := &Booking{
		CarID:      "1",
		CustomerID: "alice",
		Status:     StatusApproved,
		PickupDate: day("2025-03-01"),
		ReturnDate: day("2025-03-04"),
	}

	assert.True(t, BookingsFilter{}.Match(b))
	assert.True(t, BookingsFilter{CarID: &carID, Statuses: []BookingStatus{StatusApproved}}.Match(b))
	assert.False(t, BookingsFilter{CarID: &other}.Match(b))
	assert.False(t, BookingsFilter{Statuses: []BookingStatus{StatusPending}}.Match(b))
	assert.True(t, BookingsFilter{From: &from, To: &to}.Match(b))

	late := day("2025-03-04")
	assert.False(t, BookingsFilter{From: &late}.Match(b))
}

func TestNewBookingStats(t *testing.T) {
	stats := NewBookingStats([]*Booking{
		{Status: StatusApproved, TotalAmount: decimal.NewFromInt(300)},
		{Status: StatusCompleted, TotalAmount: decimal.NewFromInt(170)},
		{Status: StatusPending, TotalAmount: decimal.NewFromInt(50)},
		{Status: StatusCancelled, TotalAmount: decimal.NewFromInt(1000)},
	})

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[StatusApproved])
	assert.Equal(t, 1, stats.ByStatus[StatusPending])
	assert.True(t, stats.Revenue.Equal(decimal.NewFromInt(470)))
}
