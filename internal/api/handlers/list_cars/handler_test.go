package list_cars

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarRentalService/internal/service/fleet"
	"github.com/m04kA/SMC-CarRentalService/internal/service/fleet/models"
	"github.com/m04kA/SMC-CarRentalService/pkg/logger"
)

func TestHandler_List(t *testing.T) {
	repo := memory.NewCarRepository(
		&domain.Car{ID: "1", Name: "Toyota Camry", Category: domain.CategorySedan, DailyRate: decimal.NewFromInt(50), Status: domain.CarStatusAvailable, Seats: 5, Location: "Downtown"},
		&domain.Car{ID: "2", Name: "Ford Explorer", Category: domain.CategorySUV, DailyRate: decimal.NewFromInt(80), Status: domain.CarStatusAvailable, Seats: 7, Location: "Airport"},
		&domain.Car{ID: "3", Name: "Porsche 911", Category: domain.CategorySports, DailyRate: decimal.NewFromInt(200), Status: domain.CarStatusMaintenance, Seats: 2, Location: "Downtown"},
	)
	h := NewHandler(fleet.NewService(repo, logger.Nop{}), logger.Nop{})

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"all", "", []string{"1", "2", "3"}},
		{"by category", "?category=SUV", []string{"2"}},
		{"by status", "?status=available", []string{"1", "2"}},
		{"by seats and rate", "?minSeats=5&maxDailyRate=60", []string{"1"}},
		{"by location", "?location=Downtown", []string{"1", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cars"+tt.query, nil))
			require.Equal(t, http.StatusOK, rec.Code)

			var resp models.CarListResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			ids := make([]string, 0, len(resp.Cars))
			for _, c := range resp.Cars {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestHandler_ListInvalidParams(t *testing.T) {
	h := NewHandler(fleet.NewService(memory.NewCarRepository(), logger.Nop{}), logger.Nop{})

	for _, query := range []string{"?category=Truck", "?status=stolen", "?minSeats=many", "?maxDailyRate=cheap"} {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cars"+query, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}
