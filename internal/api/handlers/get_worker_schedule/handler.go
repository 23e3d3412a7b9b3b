package get_worker_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	getSlots "github.com/m04kA/SMC-MarketplaceService/internal/usecase/get_available_slots"
)

const (
	msgInvalidWorkerID = "некорректный ID мастера"
	msgInvalidPeriod   = "некорректный период, ожидается from и to в формате YYYY-MM-DD"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "расписание доступно только самому мастеру"
	msgInvalidInput    = "некорректные параметры запроса"
	msgUnavailable     = "сервис временно недоступен"
)

type Handler struct {
	useCase WorkerScheduleUseCase
	logger  Logger
}

func NewHandler(useCase WorkerScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/workers/{workerId}/availability?from=2025-10-13&to=2025-10-19
// Полное расписание с бронированиями видит только сам мастер,
// публичная доступность отдается через free-slots и availability/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	workerID, err := strconv.ParseInt(vars["workerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /workers/{id}/availability - Invalid worker ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /workers/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if actorID != workerID {
		h.logger.Warn("GET /workers/{id}/availability - Access denied: worker_id=%d, actor_id=%d", workerID, actorID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	from, err := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /workers/{id}/availability - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	to, err := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /workers/{id}/availability - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.useCase.Schedule(r.Context(), &getSlots.ScheduleRequest{
		WorkerID: workerID,
		From:     from,
		To:       to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /workers/{id}/availability - Invalid input: worker_id=%d, error=%v", workerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getSlots.ErrStorageUnavailable):
			h.logger.Error("GET /workers/{id}/availability - Storage unavailable: worker_id=%d", workerID)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("GET /workers/{id}/availability - Failed to get schedule: worker_id=%d, error=%v", workerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /workers/{id}/availability - Schedule retrieved: worker_id=%d, slots=%d, bookings=%d",
		workerID, len(result.Slots), len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
