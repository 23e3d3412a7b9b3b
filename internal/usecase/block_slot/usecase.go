package block_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	availabilitySvc "github.com/m04kA/SMC-MarketplaceService/internal/service/availability"
)

// UseCase use case управления ручными блокировками расписания мастера
type UseCase struct {
	availability AvailabilityService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute блокирует интервал в расписании мастера
// Мастер управляет только собственным расписанием
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BlockSlot: worker=%d, actor=%d, date=%s, interval=%s-%s",
		req.WorkerID, req.ActorID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BlockSlot: validation failed: %v", err)
		return nil, err
	}

	if req.ActorID != req.WorkerID {
		uc.logger.Warn("BlockSlot: user=%d cannot manage schedule of worker=%d", req.ActorID, req.WorkerID)
		return nil, ErrAccessDenied
	}

	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Warn("BlockSlot: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	slot, err := uc.availability.BlockSlot(ctx, req.WorkerID, req.Date, req.StartTime, req.EndTime, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, availabilitySvc.ErrSlotAlreadyBlocked):
			return nil, ErrSlotAlreadyBlocked
		case errors.Is(err, availabilitySvc.ErrInvalidTimeRange), errors.Is(err, availabilitySvc.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("BlockSlot: engine error for worker=%d: %v", req.WorkerID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	return toResponse(slot), nil
}

// Unblock снимает ручную блокировку мастера
func (uc *UseCase) Unblock(ctx context.Context, workerID, actorID, slotID int64) error {
	uc.logger.Info("UnblockSlot: worker=%d, actor=%d, slot=%d", workerID, actorID, slotID)

	if actorID != workerID {
		uc.logger.Warn("UnblockSlot: user=%d cannot manage schedule of worker=%d", actorID, workerID)
		return ErrAccessDenied
	}

	if err := uc.availability.UnblockSlot(ctx, workerID, slotID); err != nil {
		if errors.Is(err, availabilitySvc.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		uc.logger.Error("UnblockSlot: engine error for worker=%d, slot=%d: %v", workerID, slotID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return nil
}

func validateRequest(req *Request) error {
	if req.WorkerID <= 0 {
		return fmt.Errorf("%w: workerID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	return nil
}

func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
