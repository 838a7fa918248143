package create_car

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/service/fleet"
	"github.com/m04kA/SMC-CarRentalService/internal/service/fleet/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные автомобиля"
	msgAlreadyExists      = "автомобиль с таким ID уже существует"
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

// Handle POST /api/v1/cars
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cars - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	car, err := h.service.CreateCar(r.Context(), req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, fleet.ErrInvalidInput):
			h.logger.Warn("POST /cars - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, fleet.ErrCarAlreadyExists):
			h.logger.Warn("POST /cars - Car already exists: car_id=%s", req.ID)
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /cars - Failed to create car: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cars - Car created successfully: car_id=%s", car.ID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainCar(car))
}
