package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	getSlots "github.com/m04kA/SMC-MarketplaceService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

const (
	msgInvalidWorkerID    = "некорректный ID мастера"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration    = "некорректная длительность"
	msgInvalidWorkHours   = "некорректный формат рабочих часов, ожидается HH:MM"
	msgInvalidGranularity = "некорректный шаг слотов"
	msgInvalidInput       = "некорректные параметры запроса"
	msgUnavailable        = "сервис временно недоступен"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/workers/{workerId}/free-slots?date=2025-10-15&duration=90
// Опционально принимает workStart, workEnd ("HH:MM") и granularity (минуты)
// Публичный маршрут: доступность мастера видна до создания бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	workerID, err := strconv.ParseInt(vars["workerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /workers/{id}/free-slots - Invalid worker ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /workers/{id}/free-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var duration *int
	if raw := r.URL.Query().Get("duration"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			h.logger.Warn("GET /workers/{id}/free-slots - Invalid duration: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		duration = &d
	}

	var workStart, workEnd *types.TimeString
	if raw := r.URL.Query().Get("workStart"); raw != "" {
		ts, err := types.NewTimeStringFromString(raw)
		if err != nil {
			h.logger.Warn("GET /workers/{id}/free-slots - Invalid workStart: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidWorkHours)
			return
		}
		workStart = &ts
	}
	if raw := r.URL.Query().Get("workEnd"); raw != "" {
		ts, err := types.NewTimeStringFromString(raw)
		if err != nil {
			h.logger.Warn("GET /workers/{id}/free-slots - Invalid workEnd: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidWorkHours)
			return
		}
		workEnd = &ts
	}

	var granularity *int
	if raw := r.URL.Query().Get("granularity"); raw != "" {
		g, err := strconv.Atoi(raw)
		if err != nil || g <= 0 {
			h.logger.Warn("GET /workers/{id}/free-slots - Invalid granularity: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidGranularity)
			return
		}
		granularity = &g
	}

	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{
		WorkerID:           workerID,
		Date:               date,
		DurationMinutes:    duration,
		WorkStart:          workStart,
		WorkEnd:            workEnd,
		GranularityMinutes: granularity,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /workers/{id}/free-slots - Invalid input: worker_id=%d, error=%v", workerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getSlots.ErrStorageUnavailable):
			h.logger.Error("GET /workers/{id}/free-slots - Storage unavailable: worker_id=%d", workerID)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("GET /workers/{id}/free-slots - Failed to get slots: worker_id=%d, error=%v", workerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /workers/{id}/free-slots - Retrieved %d slots: worker_id=%d", len(result.Slots), workerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
