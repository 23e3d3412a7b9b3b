package unblock_slot

import "context"

type UnblockSlotUseCase interface {
	Unblock(ctx context.Context, workerID, actorID, slotID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
