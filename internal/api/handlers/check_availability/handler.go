package check_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-CarRentalService/internal/usecase/check_availability"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange = "дата возврата должна быть позже даты получения"
	msgCarNotFound      = "автомобиль не найден"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/cars/{carId}/availability?pickupDate=&returnDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["carId"]
	query := r.URL.Query()

	req, err := ToUseCaseRequest(carID, query.Get("pickupDate"), query.Get("returnDate"))
	if err != nil {
		h.logger.Warn("GET /cars/{id}/availability - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidDateRange):
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, checkAvailability.ErrCarNotFound):
			handlers.RespondNotFound(w, msgCarNotFound)

		default:
			h.logger.Error("GET /cars/{id}/availability - Failed to check availability: car_id=%s, error=%v", carID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /cars/{id}/availability - car_id=%s, available=%t", carID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
