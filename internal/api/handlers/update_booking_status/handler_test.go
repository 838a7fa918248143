package update_booking_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/events"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/lock"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarRentalService/internal/service/bookings"
	"github.com/m04kA/SMC-CarRentalService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CarRentalService/pkg/logger"
	"github.com/m04kA/SMC-CarRentalService/pkg/metrics"
	"github.com/m04kA/SMC-CarRentalService/pkg/txmanager"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()

	cars := memory.NewCarRepository(&domain.Car{
		ID: "1", Name: "Toyota Camry", Category: domain.CategorySedan,
		DailyRate: decimal.NewFromInt(50), Status: domain.CarStatusAvailable,
	})
	repo := memory.NewBookingRepository()
	for _, b := range []*domain.Booking{
		{ID: "b1", CarID: "1", PickupDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ReturnDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Status: domain.StatusPending},
		{ID: "b2", CarID: "1", PickupDate: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), ReturnDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Status: domain.StatusPending},
	} {
		_, err := repo.Create(context.Background(), b)
		require.NoError(t, err)
	}

	svc := bookings.NewService(repo, cars, lock.NewKeyedMutex(), txmanager.Noop{},
		events.NewLogPublisher(logger.Nop{}), (*metrics.Metrics)(nil), logger.Nop{})

	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/{action}", NewHandler(svc, logger.Nop{}).Handle).Methods(http.MethodPatch)
	return r
}

func patch(r http.Handler, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPatch, path, nil)
	} else {
		req = httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Transitions(t *testing.T) {
	r := newRouter(t)

	rec := patch(r, "/bookings/b1/approve", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "approved", resp.Status)

	rec = patch(r, "/bookings/b2/approve", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	var errBody handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.Equal(t, http.StatusConflict, errBody.Code)

	rec = patch(r, "/bookings/b1/cancel", `{"reason":"changed plans"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "changed plans", *resp.CancellationReason)

	rec = patch(r, "/bookings/b2/approve", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_Errors(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown booking", "/bookings/missing/approve", "", http.StatusNotFound},
		{"unknown action", "/bookings/b1/archive", "", http.StatusBadRequest},
		{"bad body", "/bookings/b1/reject", `{"reason":`, http.StatusBadRequest},
		{"complete pending", "/bookings/b1/complete", "", http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(r, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	rec := patch(r, "/bookings/b1/reject", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = patch(r, "/bookings/b1/reject", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}
