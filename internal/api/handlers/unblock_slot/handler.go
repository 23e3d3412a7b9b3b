package unblock_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	blockSlot "github.com/m04kA/SMC-MarketplaceService/internal/usecase/block_slot"
)

const (
	msgInvalidWorkerID = "некорректный ID мастера"
	msgInvalidSlotID   = "некорректный ID слота"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "мастер управляет только собственным расписанием"
	msgNotFound        = "блокировка не найдена"
)

type Handler struct {
	useCase UnblockSlotUseCase
	logger  Logger
}

func NewHandler(useCase UnblockSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/workers/{workerId}/availability/{slotId}
// Снимает только ручные блокировки: booked-слоты освобождаются отменой бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	workerID, err := strconv.ParseInt(vars["workerId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /workers/{id}/availability/{slotId} - Invalid worker ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /workers/{id}/availability/{slotId} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /workers/{id}/availability/{slotId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.useCase.Unblock(r.Context(), workerID, actorID, slotID); err != nil {
		switch {
		case errors.Is(err, blockSlot.ErrAccessDenied):
			h.logger.Warn("DELETE /workers/{id}/availability/{slotId} - Access denied: worker_id=%d, actor_id=%d",
				workerID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, blockSlot.ErrSlotNotFound):
			h.logger.Warn("DELETE /workers/{id}/availability/{slotId} - Slot not found: worker_id=%d, slot_id=%d",
				workerID, slotID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /workers/{id}/availability/{slotId} - Failed to unblock: worker_id=%d, slot_id=%d, error=%v",
				workerID, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /workers/{id}/availability/{slotId} - Slot unblocked: worker_id=%d, slot_id=%d", workerID, slotID)
	w.WriteHeader(http.StatusNoContent)
}
