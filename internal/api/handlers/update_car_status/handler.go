package update_car_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/api/middleware"
	"github.com/m04kA/SMC-CarRentalService/internal/service/fleet"
	"github.com/m04kA/SMC-CarRentalService/internal/service/fleet/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус автомобиля"
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

// Handle PATCH /api/v1/cars/{carId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["carId"]

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /cars/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	status, err := models.ToDomainCarStatus(req.Status)
	if err != nil {
		h.logger.Warn("PATCH /cars/{id}/status - Invalid status: car_id=%s, status=%q", carID, req.Status)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	car, err := h.service.SetStatus(r.Context(), carID, status)
	if err != nil {
		switch {
		case errors.Is(err, fleet.ErrCarNotFound):
			h.logger.Warn("PATCH /cars/{id}/status - Car not found: car_id=%s", carID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, fleet.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /cars/{id}/status - Failed to update status: car_id=%s, error=%v", carID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /cars/{id}/status - Status updated: car_id=%s, status=%s, user=%s",
		carID, car.Status, middleware.UserIDOrAnonymous(r.Context()))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainCar(car))
}
