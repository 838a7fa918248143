package create_pricing_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidData        = "некорректные данные ценового правила"
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

// Handle POST /api/v1/pricing-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pricing-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	rule, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("POST /pricing-rules - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	created, err := h.service.CreateRule(r.Context(), rule)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidInput) {
			h.logger.Warn("POST /pricing-rules - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		h.logger.Error("POST /pricing-rules - Failed to create rule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /pricing-rules - Rule created successfully: rule_id=%d, type=%s", created.ID, created.Type)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainRule(created))
}
