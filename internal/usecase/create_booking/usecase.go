package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/integrations/notifier"
	availabilitySvc "github.com/m04kA/SMC-MarketplaceService/internal/service/availability"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	availability AvailabilityService
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availability AvailabilityService,
	notify Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		availability: availability,
		notifier:     notify,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает бронирование в статусе pending
// Проверка доступности здесь рекомендательная: слот не резервируется,
// занятость окончательно проверяется при подтверждении внутри транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, worker=%d, service=%s, date=%s, time=%s",
		req.CustomerID, req.WorkerID, req.ServiceType, req.ScheduledDate.Format(domain.DateFormat), req.ScheduledTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	if isDateInPast(req.ScheduledDate, uc.timeProvider.Now()) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.ScheduledDate.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Рекомендательная проверка доступности мастера
	ok, reason, err := uc.availability.IsAvailable(ctx, req.WorkerID, req.ScheduledDate, req.ScheduledTime, req.EstimatedDuration)
	if err != nil {
		if errors.Is(err, availabilitySvc.ErrInvalidTimeRange) || errors.Is(err, availabilitySvc.ErrInvalidInput) {
			uc.logger.Warn("CreateBooking: invalid interval for worker=%d: %v", req.WorkerID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("CreateBooking: availability check failed for worker=%d: %v", req.WorkerID, err)
		return nil, fmt.Errorf("%w: availability check: %v", ErrInternal, err)
	}
	if !ok {
		uc.logger.Warn("CreateBooking: worker=%d unavailable: %s", req.WorkerID, reason)
		return nil, fmt.Errorf("%w: %s", ErrSlotUnavailable, reason)
	}

	// 4. Создаем бронирование
	booking := &domain.Booking{
		CustomerID:        req.CustomerID,
		WorkerID:          req.WorkerID,
		ServiceType:       req.ServiceType,
		JobDescription:    req.JobDescription,
		ScheduledDate:     req.ScheduledDate,
		ScheduledTime:     req.ScheduledTime,
		EstimatedDuration: req.EstimatedDuration,
		EstimatedCost:     req.EstimatedCost,
		Status:            domain.StatusPending,
		PaymentStatus:     domain.PaymentPending,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created booking id=%d, customer=%d, worker=%d",
		created.ID, created.CustomerID, created.WorkerID)

	// 5. Уведомляем мастера о новой заявке
	uc.notifier.Notify(ctx, created.WorkerID, notifier.KindBookingRequested, map[string]interface{}{
		"bookingId":   created.ID,
		"serviceType": created.ServiceType,
		"date":        created.ScheduledDate.Format(domain.DateFormat),
		"time":        created.ScheduledTime.String(),
	})

	return toResponse(created), nil
}
