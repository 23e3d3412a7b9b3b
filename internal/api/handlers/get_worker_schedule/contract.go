package get_worker_schedule

import (
	"context"

	getSlots "github.com/m04kA/SMC-MarketplaceService/internal/usecase/get_available_slots"
)

type WorkerScheduleUseCase interface {
	Schedule(ctx context.Context, req *getSlots.ScheduleRequest) (*getSlots.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
