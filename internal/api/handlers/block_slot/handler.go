package block_slot

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
	msgInvalidWorkerID    = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "мастер управляет только собственным расписанием"
	msgAlreadyBlocked     = "этот интервал уже заблокирован"
	msgDateInPast         = "дата блокировки уже прошла"
	msgInvalidInput       = "некорректные данные блокировки"
)

type Handler struct {
	useCase BlockSlotUseCase
	logger  Logger
}

func NewHandler(useCase BlockSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/workers/{workerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	workerID, err := strconv.ParseInt(vars["workerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /workers/{id}/availability - Invalid worker ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /workers/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BlockSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /workers/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(workerID, actorID)
	if err != nil {
		h.logger.Warn("POST /workers/{id}/availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, blockSlot.ErrAccessDenied):
			h.logger.Warn("POST /workers/{id}/availability - Access denied: worker_id=%d, actor_id=%d", workerID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, blockSlot.ErrSlotAlreadyBlocked):
			h.logger.Warn("POST /workers/{id}/availability - Already blocked: worker_id=%d", workerID)
			handlers.RespondConflict(w, msgAlreadyBlocked)

		case errors.Is(err, blockSlot.ErrInvalidDate):
			h.logger.Warn("POST /workers/{id}/availability - Date in past: worker_id=%d", workerID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, blockSlot.ErrInvalidInput):
			h.logger.Warn("POST /workers/{id}/availability - Invalid input: worker_id=%d, error=%v", workerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /workers/{id}/availability - Failed to block slot: worker_id=%d, error=%v", workerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /workers/{id}/availability - Slot blocked: slot_id=%d, worker_id=%d", result.ID, workerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
