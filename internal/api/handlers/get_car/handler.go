package get_car

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/service/fleet"
	"github.com/m04kA/SMC-CarRentalService/internal/service/fleet/models"
)

const (
	msgNotFound = "автомобиль не найден"
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

// Handle GET /api/v1/cars/{carId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["carId"]

	car, err := h.service.GetCar(r.Context(), carID)
	if err != nil {
		if errors.Is(err, fleet.ErrCarNotFound) {
			h.logger.Warn("GET /cars/{id} - Car not found: car_id=%s", carID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /cars/{id} - Failed to get car: car_id=%s, error=%v", carID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /cars/{id} - Car retrieved successfully: car_id=%s", carID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainCar(car))
}
