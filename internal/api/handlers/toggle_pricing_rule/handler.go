package toggle_pricing_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing/models"
)

const (
	msgInvalidRuleID = "некорректный ID правила"
	msgNotFound      = "ценовое правило не найдено"
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

// Handle PATCH /api/v1/pricing-rules/{ruleId}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.ParseInt(mux.Vars(r)["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /pricing-rules/{id}/toggle - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	rule, err := h.service.ToggleRule(r.Context(), ruleID)
	if err != nil {
		if errors.Is(err, pricing.ErrRuleNotFound) {
			h.logger.Warn("PATCH /pricing-rules/{id}/toggle - Rule not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("PATCH /pricing-rules/{id}/toggle - Failed to toggle rule: rule_id=%d, error=%v", ruleID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /pricing-rules/{id}/toggle - rule_id=%d, active=%t", ruleID, rule.IsActive)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainRule(rule))
}
