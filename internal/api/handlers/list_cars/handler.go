package list_cars

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/service/fleet"
	"github.com/m04kA/SMC-CarRentalService/internal/service/fleet/models"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service FleetService
	logger  Logger
}

func NewHandler(service FleetService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/cars
// Query params: category, status, location, minSeats, maxDailyRate (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, err := ToDomainFilter(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /cars - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	cars, err := h.service.ListCars(r.Context(), filter)
	if err != nil {
		if errors.Is(err, fleet.ErrInvalidInput) {
			h.logger.Warn("GET /cars - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /cars - Failed to list cars: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /cars - Cars retrieved successfully: count=%d", len(cars))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainCarList(cars))
}
