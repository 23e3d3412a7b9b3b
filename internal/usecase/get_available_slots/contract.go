package get_available_slots

import (
	"context"
	"time"

	availabilitySvc "github.com/m04kA/SMC-MarketplaceService/internal/service/availability"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// AvailabilityService интерфейс движка доступности
type AvailabilityService interface {
	FreeSlots(ctx context.Context, workerID int64, date time.Time, q availabilitySvc.FreeSlotsQuery) ([]types.TimeString, error)
	IsAvailable(ctx context.Context, workerID int64, date time.Time, start types.TimeString, durationMinutes *int) (bool, string, error)
	WorkerSchedule(ctx context.Context, workerID int64, from, to time.Time) (*availabilitySvc.WorkerSchedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
