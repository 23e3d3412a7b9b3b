package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MarketplaceService/internal/integrations/notifier"
	availabilitySvc "github.com/m04kA/SMC-MarketplaceService/internal/service/availability"
)

// UseCase use case смены статуса бронирования
// Единственная точка входа для всех переходов, кроме оплаты:
// ребро work_finished -> completed помечено в таблице как payment-only
// и отклоняется здесь независимо от актора
type UseCase struct {
	bookingRepo  BookingRepository
	availability AvailabilityService
	txManager    TransactionManager
	notifier     Notifier
	invoicer     Invoicer
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availability AvailabilityService,
	txManager TransactionManager,
	notify Notifier,
	invoice Invoicer,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		availability: availability,
		txManager:    txManager,
		notifier:     notify,
		invoicer:     invoice,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет переход статуса бронирования
// Проверка ребра и запись статуса выполняются в одной сериализуемой транзакции:
// бронирование перечитывается с блокировкой строки, ребро проверяется повторно
// по свежему статусу, затем применяются побочные эффекты ребра
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%d, actor=%d, target=%s",
		req.BookingID, req.ActorID, req.TargetStatus)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	// Быстрые проверки до транзакции; внутри транзакции они повторяются
	booking, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if !booking.IsParty(req.ActorID) {
		uc.logger.Warn("UpdateBookingStatus: user=%d is not a party of booking=%d", req.ActorID, req.BookingID)
		return nil, ErrAccessDenied
	}

	if err := checkEdge(booking, req.ActorID, req.TargetStatus); err != nil {
		uc.logger.Warn("UpdateBookingStatus: edge check failed for booking=%d (%s -> %s): %v",
			req.BookingID, booking.Status, req.TargetStatus, err)
		return nil, err
	}

	var updated *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Перечитываем бронирование: внутри транзакции строка блокируется FOR UPDATE
		fresh, err := uc.getBooking(txCtx, req.BookingID)
		if err != nil {
			return err
		}

		// Повторная проверка ребра по свежему статусу - конкурирующий переход
		// мог успеть первым
		if err := checkEdge(fresh, req.ActorID, req.TargetStatus); err != nil {
			return err
		}

		// Побочные эффекты ребра до записи статуса
		switch req.TargetStatus {
		case domain.StatusConfirmed:
			if _, err := uc.availability.ReserveForBooking(txCtx, fresh); err != nil {
				if errors.Is(err, availabilitySvc.ErrSlotConflict) {
					return fmt.Errorf("%w: %v", ErrSlotConflict, err)
				}
				if errors.Is(err, availabilitySvc.ErrInvalidTimeRange) {
					return fmt.Errorf("%w: %v", ErrInvalidInput, err)
				}
				return fmt.Errorf("%w: reserve slot: %v", ErrInternal, err)
			}
		case domain.StatusCancelled:
			if err := uc.availability.ReleaseForBooking(txCtx, fresh.ID); err != nil {
				return fmt.Errorf("%w: release slot: %v", ErrInternal, err)
			}
		}

		upd := buildUpdate(req, uc.timeProvider.Now())

		if err := uc.bookingRepo.ApplyTransition(txCtx, fresh.ID, upd); err != nil {
			return fmt.Errorf("%w: apply transition: %v", ErrInternal, err)
		}

		updated = applyUpdate(fresh, upd)
		return nil
	})

	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: transition failed for booking=%d: %v", req.BookingID, err)
		return nil, err
	}

	uc.logger.Info("UpdateBookingStatus: booking=%d moved to %s by user=%d",
		updated.ID, updated.Status, req.ActorID)

	// Счет выставляется один раз - по факту завершения работ
	if updated.Status == domain.StatusWorkFinished {
		uc.invoicer.IssueFromBooking(ctx, updated)
	}

	uc.notifyCounterparty(ctx, updated, req.ActorID)

	return toResponse(updated), nil
}

func (uc *UseCase) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBookingStatus: booking=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBookingStatus: repository error for booking=%d: %v", id, err)
		return nil, fmt.Errorf("%w: get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

// notifyCounterparty уведомляет вторую сторону бронирования о новом статусе
// Инициатор перехода уведомление не получает
func (uc *UseCase) notifyCounterparty(ctx context.Context, b *domain.Booking, actorID int64) {
	kind, ok := notificationKinds[b.Status]
	if !ok {
		return
	}

	payload := map[string]interface{}{
		"bookingId": b.ID,
		"status":    string(b.Status),
	}
	if b.Status == domain.StatusWorkFinished && b.FinalCost != nil {
		payload["finalCost"] = *b.FinalCost
	}

	uc.notifier.Notify(ctx, b.CounterpartyOf(actorID), kind, payload)
}

var notificationKinds = map[domain.BookingStatus]notifier.Kind{
	domain.StatusConfirmed:    notifier.KindBookingConfirmed,
	domain.StatusRejected:     notifier.KindBookingRejected,
	domain.StatusCancelled:    notifier.KindBookingCancelled,
	domain.StatusOnTheWay:     notifier.KindWorkerOnTheWay,
	domain.StatusInProgress:   notifier.KindJobStarted,
	domain.StatusWorkFinished: notifier.KindWorkFinished,
}

// checkEdge проверяет легальность перехода и право актора на него
func checkEdge(b *domain.Booking, actorID int64, target domain.BookingStatus) error {
	edge, ok := domain.FindEdge(b.Status, target)
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, target)
	}

	// Ребро оплаты закрыто для общего механизма переходов
	if edge.PaymentOnly {
		return ErrPaymentRequired
	}

	if !edge.ActorAllowed(b, actorID) {
		switch edge.Actor {
		case domain.ActorWorker:
			return ErrOnlyWorker
		case domain.ActorCustomer:
			return ErrOnlyCustomer
		default:
			return ErrAccessDenied
		}
	}

	return nil
}

// buildUpdate собирает поля, записываемые на конкретном ребре
func buildUpdate(req *Request, now time.Time) domain.BookingUpdate {
	upd := domain.BookingUpdate{Status: req.TargetStatus}

	switch req.TargetStatus {
	case domain.StatusConfirmed:
		upd.AcceptedAt = &now
	case domain.StatusRejected:
		upd.RejectedAt = &now
		upd.RejectionReason = req.Reason
	case domain.StatusCancelled:
		upd.CancelledAt = &now
		upd.CancelledBy = &req.ActorID
		upd.CancellationReason = req.Reason
	case domain.StatusWorkFinished:
		upd.WorkFinishedAt = &now
		upd.WorkerNotes = req.WorkerNotes
		upd.FinalCost = req.FinalCost
		upd.CompletionPhotos = req.CompletionPhotos
	}

	return upd
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if !req.TargetStatus.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, string(req.TargetStatus))
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	if req.WorkerNotes != nil && len(*req.WorkerNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: workerNotes exceeds %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.FinalCost != nil && *req.FinalCost <= 0 {
		return fmt.Errorf("%w: finalCost must be positive", ErrInvalidInput)
	}

	return nil
}
