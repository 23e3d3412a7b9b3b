package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	availabilitySvc "github.com/m04kA/SMC-MarketplaceService/internal/service/availability"
)

// UseCase use case чтения доступности мастера
type UseCase struct {
	availability AvailabilityService
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		logger:       logger,
	}
}

// Execute возвращает свободные времена начала работы мастера на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: worker=%d, date=%s", req.WorkerID, req.Date.Format(domain.DateFormat))

	if req.WorkerID <= 0 {
		return nil, fmt.Errorf("%w: workerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	slots, err := uc.availability.FreeSlots(ctx, req.WorkerID, req.Date, availabilitySvc.FreeSlotsQuery{
		DurationMinutes:    req.DurationMinutes,
		WorkStart:          req.WorkStart,
		WorkEnd:            req.WorkEnd,
		GranularityMinutes: req.GranularityMinutes,
	})
	if err != nil {
		return nil, uc.mapEngineError("GetAvailableSlots", req.WorkerID, err)
	}

	return &Response{
		WorkerID: req.WorkerID,
		Date:     req.Date,
		Slots:    slots,
	}, nil
}

// Check проверяет доступность конкретного интервала у мастера
func (uc *UseCase) Check(ctx context.Context, req *CheckRequest) (*CheckResponse, error) {
	uc.logger.Info("CheckAvailability: worker=%d, date=%s, time=%s",
		req.WorkerID, req.Date.Format(domain.DateFormat), req.StartTime)

	if req.WorkerID <= 0 {
		return nil, fmt.Errorf("%w: workerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	ok, reason, err := uc.availability.IsAvailable(ctx, req.WorkerID, req.Date, req.StartTime, req.DurationMinutes)
	if err != nil {
		return nil, uc.mapEngineError("CheckAvailability", req.WorkerID, err)
	}

	return &CheckResponse{
		Available: ok,
		Reason:    reason,
	}, nil
}

// Schedule возвращает расписание мастера за период
func (uc *UseCase) Schedule(ctx context.Context, req *ScheduleRequest) (*ScheduleResponse, error) {
	uc.logger.Info("GetWorkerSchedule: worker=%d, period=%s to %s",
		req.WorkerID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.WorkerID <= 0 {
		return nil, fmt.Errorf("%w: workerID must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}

	schedule, err := uc.availability.WorkerSchedule(ctx, req.WorkerID, req.From, req.To)
	if err != nil {
		return nil, uc.mapEngineError("GetWorkerSchedule", req.WorkerID, err)
	}

	return toScheduleResponse(req.WorkerID, req.From, req.To, schedule), nil
}

func (uc *UseCase) mapEngineError(op string, workerID int64, err error) error {
	switch {
	case errors.Is(err, availabilitySvc.ErrInvalidInput), errors.Is(err, availabilitySvc.ErrInvalidTimeRange):
		uc.logger.Warn("%s: invalid input for worker=%d: %v", op, workerID, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, availabilitySvc.ErrStorageUnavailable):
		uc.logger.Error("%s: storage unavailable for worker=%d: %v", op, workerID, err)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	default:
		uc.logger.Error("%s: engine error for worker=%d: %v", op, workerID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
