package update_booking_status

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/api/middleware"
	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/service/bookings"
	"github.com/m04kA/SMC-CarRentalService/internal/service/bookings/models"
)

const (
	ActionApprove  = "approve"
	ActionReject   = "reject"
	ActionCancel   = "cancel"
	ActionComplete = "complete"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgUnknownAction       = "неизвестное действие"
	msgInvalidInput        = "некорректные данные запроса"
	msgNotFound            = "бронирование не найдено"
	msgInvalidTransition   = "переход статуса недопустим"
	msgConflictingApproval = "на эти даты уже есть одобренное бронирование"
	msgCarUnavailable      = "автомобиль недоступен"
	msgCarNotFound         = "автомобиль бронирования не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/{action}
// action: approve, reject, cancel, complete; reject и cancel принимают {"reason": "..."}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID := vars["bookingId"]
	action := vars["action"]

	var req models.ReasonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/%s - Invalid request body: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.apply(r.Context(), action, bookingID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, errUnknownAction):
			handlers.RespondBadRequest(w, msgUnknownAction)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/%s - Booking not found: booking_id=%s", action, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCarNotFound):
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/%s - Invalid transition: booking_id=%s, error=%v", action, bookingID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrConflictingApproval):
			handlers.RespondConflict(w, msgConflictingApproval)

		case errors.Is(err, bookings.ErrCarUnavailable):
			handlers.RespondConflict(w, msgCarUnavailable)

		default:
			h.logger.Error("PATCH /bookings/{id}/%s - Failed: booking_id=%s, error=%v", action, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/%s - booking_id=%s, status=%s, user=%s",
		action, bookingID, booking.Status, middleware.UserIDOrAnonymous(r.Context()))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}

var errUnknownAction = errors.New("unknown action")

func (h *Handler) apply(ctx context.Context, action, id string, reason *string) (*domain.Booking, error) {
	switch action {
	case ActionApprove:
		return h.service.Approve(ctx, id)
	case ActionReject:
		return h.service.Reject(ctx, id, reason)
	case ActionCancel:
		return h.service.Cancel(ctx, id, reason)
	case ActionComplete:
		return h.service.Complete(ctx, id)
	}
	return nil, errUnknownAction
}
