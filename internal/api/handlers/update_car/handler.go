package update_car

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/service/fleet"
	"github.com/m04kA/SMC-CarRentalService/internal/service/fleet/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные автомобиля"
	msgNotFound           = "автомобиль не найден"
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

// Handle PUT /api/v1/cars/{carId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["carId"]

	var req models.CarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /cars/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Статус меняется отдельным запросом; без статуса в теле сохраняем текущий
	car := req.ToDomain()
	if car.Status == "" {
		existing, err := h.service.GetCar(r.Context(), carID)
		if err != nil {
			h.respondServiceError(w, carID, err)
			return
		}
		car.Status = existing.Status
	}

	updated, err := h.service.UpdateCar(r.Context(), carID, car)
	if err != nil {
		h.respondServiceError(w, carID, err)
		return
	}

	h.logger.Info("PUT /cars/{id} - Car updated successfully: car_id=%s", carID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainCar(updated))
}

func (h *Handler) respondServiceError(w http.ResponseWriter, carID string, err error) {
	switch {
	case errors.Is(err, fleet.ErrCarNotFound):
		h.logger.Warn("PUT /cars/{id} - Car not found: car_id=%s", carID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, fleet.ErrInvalidInput):
		h.logger.Warn("PUT /cars/{id} - Invalid data: car_id=%s, error=%v", carID, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	default:
		h.logger.Error("PUT /cars/{id} - Failed to update car: car_id=%s, error=%v", carID, err)
		handlers.RespondInternalError(w)
	}
}
