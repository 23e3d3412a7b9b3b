package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/integrations/notifier"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityService интерфейс движка доступности
type AvailabilityService interface {
	IsAvailable(ctx context.Context, workerID int64, date time.Time, start types.TimeString, durationMinutes *int) (bool, string, error)
}

// Notifier интерфейс диспетчера уведомлений
type Notifier interface {
	Notify(ctx context.Context, userID int64, kind notifier.Kind, payload map[string]interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
