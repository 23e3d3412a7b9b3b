package block_slot

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// Request модель запроса на блокировку времени мастера
type Request struct {
	WorkerID  int64            // ID мастера из пути запроса
	ActorID   int64            // ID инициатора (из заголовка аутентификации)
	Date      time.Time        // Дата блокировки
	StartTime types.TimeString // Начало интервала
	EndTime   types.TimeString // Конец интервала
	Note      string           // Причина блокировки (опционально)
}

// Response модель ответа с созданным слотом
type Response struct {
	ID        int64
	WorkerID  int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Kind      string
	Note      string
	CreatedAt time.Time
}

func toResponse(slot *domain.AvailabilitySlot) *Response {
	return &Response{
		ID:        slot.ID,
		WorkerID:  slot.WorkerID,
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Kind:      string(slot.Kind),
		Note:      slot.Note,
		CreatedAt: slot.CreatedAt,
	}
}
