package check_availability

import (
	"context"

	getSlots "github.com/m04kA/SMC-MarketplaceService/internal/usecase/get_available_slots"
)

type CheckAvailabilityUseCase interface {
	Check(ctx context.Context, req *getSlots.CheckRequest) (*getSlots.CheckResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
