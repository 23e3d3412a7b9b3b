package process_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MarketplaceService/internal/integrations/notifier"
)

// UseCase use case оплаты бронирования
// Единственный путь в статус completed: общий механизм переходов
// отклоняет ребро work_finished -> completed как payment-only
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notify Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		notifier:     notify,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проводит оплату и завершает бронирование
// Предусловия проверяются по заблокированной строке: платит заказчик,
// работы завершены, оплата еще не проводилась
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ProcessPayment: booking=%d, actor=%d, method=%s", req.BookingID, req.ActorID, req.PaymentMethod)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ProcessPayment: validation failed: %v", err)
		return nil, err
	}

	var updated *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: get booking: %v", ErrInternal, err)
		}

		if booking.CustomerID != req.ActorID {
			return ErrOnlyCustomer
		}

		if booking.Status != domain.StatusWorkFinished {
			return fmt.Errorf("%w: current status is %s", ErrWorkNotFinished, booking.Status)
		}

		if booking.IsPaid() {
			return ErrAlreadyPaid
		}

		now := uc.timeProvider.Now()
		paid := domain.PaymentPaid

		upd := domain.BookingUpdate{
			Status:        domain.StatusCompleted,
			CompletedAt:   &now,
			PaidAt:        &now,
			PaymentStatus: &paid,
			PaymentMethod: &req.PaymentMethod,
			Tip:           req.Tip,
		}

		if err := uc.bookingRepo.ApplyTransition(txCtx, booking.ID, upd); err != nil {
			return fmt.Errorf("%w: apply transition: %v", ErrInternal, err)
		}

		updated = booking
		updated.Status = domain.StatusCompleted
		updated.PaymentStatus = paid
		updated.PaymentMethod = &req.PaymentMethod
		updated.Tip = req.Tip
		updated.PaidAt = &now
		updated.CompletedAt = &now

		return nil
	})

	if err != nil {
		uc.logger.Warn("ProcessPayment: payment failed for booking=%d: %v", req.BookingID, err)
		return nil, err
	}

	uc.logger.Info("ProcessPayment: booking=%d completed and paid by user=%d", updated.ID, req.ActorID)

	// Уведомляем мастера о полученной оплате
	payload := map[string]interface{}{
		"bookingId": updated.ID,
	}
	if updated.FinalCost != nil {
		payload["amount"] = *updated.FinalCost
	}
	if updated.Tip != nil {
		payload["tip"] = *updated.Tip
	}
	uc.notifier.Notify(ctx, updated.WorkerID, notifier.KindPaymentReceived, payload)

	return toResponse(updated), nil
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if !req.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, string(req.PaymentMethod))
	}

	if req.Tip != nil && *req.Tip < 0 {
		return fmt.Errorf("%w: tip cannot be negative", ErrInvalidInput)
	}

	return nil
}
