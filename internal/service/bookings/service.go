package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Доступно только сторонам бронирования - заказчику и мастеру
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*domain.Booking, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !booking.IsParty(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// ListByUser получает историю бронирований пользователя в заданной роли
// Опционально фильтрует по статусу
func (s *Service) ListByUser(ctx context.Context, userID int64, role domain.BookingRole, status *domain.BookingStatus) ([]*domain.Booking, error) {
	s.logger.Info("ListByUser: fetching bookings for user=%d, role=%s, status=%v", userID, role, status)

	if !role.Valid() {
		s.logger.Warn("ListByUser: invalid role=%s for user=%d", role, userID)
		return nil, fmt.Errorf("%w: invalid role", ErrInvalidInput)
	}

	if status != nil && !status.Valid() {
		s.logger.Warn("ListByUser: invalid status=%s for user=%d", *status, userID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByUser(ctx, userID, role, status)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByUser: fetched %d bookings for user=%d", len(bookings), userID)
	return bookings, nil
}
