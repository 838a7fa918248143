package list_pricing_rules

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/service/pricing/models"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
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

// Handle GET /api/v1/pricing-rules
// Query params: active (опционально, true - только активные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if v := r.URL.Query().Get("active"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			h.logger.Warn("GET /pricing-rules - Invalid active value: %q", v)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		activeOnly = parsed
	}

	rules, err := h.service.ListRules(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("GET /pricing-rules - Failed to list rules: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /pricing-rules - Rules retrieved successfully: count=%d", len(rules))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainRuleList(rules))
}
