package check_availability

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
	msgInvalidWorkerID = "некорректный ID мастера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime     = "некорректный формат времени, ожидается HH:MM"
	msgInvalidDuration = "некорректная длительность"
	msgInvalidInput    = "некорректные параметры запроса"
	msgUnavailable     = "сервис временно недоступен"
)

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/workers/{workerId}/availability/check?date=2025-10-15&time=10:00&duration=90
// Публичный маршрут
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	workerID, err := strconv.ParseInt(vars["workerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /workers/{id}/availability/check - Invalid worker ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /workers/{id}/availability/check - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(r.URL.Query().Get("time"))
	if err != nil {
		h.logger.Warn("GET /workers/{id}/availability/check - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	var duration *int
	if raw := r.URL.Query().Get("duration"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			h.logger.Warn("GET /workers/{id}/availability/check - Invalid duration: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		duration = &d
	}

	result, err := h.useCase.Check(r.Context(), &getSlots.CheckRequest{
		WorkerID:        workerID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /workers/{id}/availability/check - Invalid input: worker_id=%d, error=%v", workerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getSlots.ErrStorageUnavailable):
			h.logger.Error("GET /workers/{id}/availability/check - Storage unavailable: worker_id=%d", workerID)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("GET /workers/{id}/availability/check - Failed to check: worker_id=%d, error=%v", workerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /workers/{id}/availability/check - Checked: worker_id=%d, available=%t", workerID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, CheckAvailabilityResponse{
		Available: result.Available,
		Reason:    result.Reason,
	})
}
