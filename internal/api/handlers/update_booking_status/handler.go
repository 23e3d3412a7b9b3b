package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	updateStatus "github.com/m04kA/SMC-MarketplaceService/internal/usecase/update_booking_status"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgOnlyWorker         = "переход доступен только мастеру"
	msgOnlyCustomer       = "переход доступен только заказчику"
	msgInvalidTransition  = "переход в указанный статус невозможен"
	msgPaymentRequired    = "завершение бронирования возможно только через оплату"
	msgSlotConflict       = "время бронирования уже занято"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase UpdateBookingStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, actorID))
	if err != nil {
		h.respondUseCaseError(w, bookingID, actorID, req.Status, err)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status updated: booking_id=%d, status=%s, actor_id=%d",
		bookingID, result.Status, actorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, bookingID, actorID int64, target string, err error) {
	switch {
	case errors.Is(err, updateStatus.ErrBookingNotFound):
		h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, updateStatus.ErrOnlyWorker):
		h.logger.Warn("PATCH /bookings/{id}/status - Worker-only transition: booking_id=%d, actor_id=%d, target=%s",
			bookingID, actorID, target)
		handlers.RespondForbidden(w, msgOnlyWorker)

	case errors.Is(err, updateStatus.ErrOnlyCustomer):
		h.logger.Warn("PATCH /bookings/{id}/status - Customer-only transition: booking_id=%d, actor_id=%d, target=%s",
			bookingID, actorID, target)
		handlers.RespondForbidden(w, msgOnlyCustomer)

	case errors.Is(err, updateStatus.ErrAccessDenied):
		h.logger.Warn("PATCH /bookings/{id}/status - Access denied: booking_id=%d, actor_id=%d", bookingID, actorID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, updateStatus.ErrPaymentRequired):
		h.logger.Warn("PATCH /bookings/{id}/status - Completed attempted without payment: booking_id=%d, actor_id=%d",
			bookingID, actorID)
		handlers.RespondForbidden(w, msgPaymentRequired)

	case errors.Is(err, updateStatus.ErrInvalidTransition):
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid transition: booking_id=%d, target=%s", bookingID, target)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, updateStatus.ErrSlotConflict):
		h.logger.Warn("PATCH /bookings/{id}/status - Slot conflict: booking_id=%d", bookingID)
		handlers.RespondConflict(w, msgSlotConflict)

	case errors.Is(err, updateStatus.ErrInvalidInput):
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid input: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("PATCH /bookings/{id}/status - Failed to update status: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
