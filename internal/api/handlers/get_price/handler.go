package get_price

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing/models"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange = "дата возврата должна быть позже даты получения"
	msgCarNotFound      = "автомобиль не найден"
)

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/cars/{carId}/price?pickupDate=&returnDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["carId"]
	query := r.URL.Query()

	pickup, err := handlers.ParseDate(query.Get("pickupDate"))
	if err != nil {
		h.logger.Warn("GET /cars/{id}/price - Invalid pickupDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	ret, err := handlers.ParseDate(query.Get("returnDate"))
	if err != nil {
		h.logger.Warn("GET /cars/{id}/price - Invalid returnDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	quote, err := h.service.Quote(r.Context(), carID, pickup, ret)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrInvalidDateRange):
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, pricing.ErrCarNotFound):
			handlers.RespondNotFound(w, msgCarNotFound)

		default:
			h.logger.Error("GET /cars/{id}/price - Failed to compute price: car_id=%s, error=%v", carID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /cars/{id}/price - car_id=%s, days=%d, total=%s", carID, quote.Days, quote.Total.StringFixed(2))
	handlers.RespondJSON(w, http.StatusOK, models.FromQuote(carID, pickup, ret, quote))
}
