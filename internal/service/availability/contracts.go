package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// SlotRepository интерфейс репозитория слотов недоступности
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error)
	ListByWorkerAndDate(ctx context.Context, workerID int64, date time.Time) ([]*domain.AvailabilitySlot, error)
	ListByWorkerAndDateRange(ctx context.Context, workerID int64, from, to time.Time) ([]*domain.AvailabilitySlot, error)
	ExistsExact(ctx context.Context, workerID int64, date time.Time, start, end types.TimeString) (bool, error)
	DeleteBlocked(ctx context.Context, workerID, slotID int64) error
	DeleteByBookingID(ctx context.Context, bookingID int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActiveByWorkerAndDate(ctx context.Context, workerID int64, date time.Time) ([]*domain.Booking, error)
	ListActiveByWorkerAndDateRange(ctx context.Context, workerID int64, from, to time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
