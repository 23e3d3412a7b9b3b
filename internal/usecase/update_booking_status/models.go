package update_booking_status

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// Request модель запроса на смену статуса бронирования
type Request struct {
	BookingID    int64
	ActorID      int64                // ID инициатора (из заголовка аутентификации)
	TargetStatus domain.BookingStatus // Целевой статус

	// Поля, записываемые на конкретных ребрах
	Reason           *string   // причина отмены или отказа
	WorkerNotes      *string   // заметки мастера (work_finished)
	FinalCost        *float64  // итоговая стоимость (work_finished)
	CompletionPhotos []string  // фотографии результата (work_finished)
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID                 int64
	CustomerID         int64
	WorkerID           int64
	ServiceType        string
	ScheduledDate      time.Time
	ScheduledTime      types.TimeString
	Status             string
	PaymentStatus      string
	FinalCost          *float64
	WorkerNotes        *string
	CompletionPhotos   []string
	AcceptedAt         *time.Time
	RejectedAt         *time.Time
	RejectionReason    *string
	CancelledBy        *int64
	CancellationReason *string
	CancelledAt        *time.Time
	WorkFinishedAt     *time.Time
	UpdatedAt          time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		WorkerID:           b.WorkerID,
		ServiceType:        b.ServiceType,
		ScheduledDate:      b.ScheduledDate,
		ScheduledTime:      b.ScheduledTime,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		FinalCost:          b.FinalCost,
		WorkerNotes:        b.WorkerNotes,
		CompletionPhotos:   b.CompletionPhotos,
		AcceptedAt:         b.AcceptedAt,
		RejectedAt:         b.RejectedAt,
		RejectionReason:    b.RejectionReason,
		CancelledBy:        b.CancelledBy,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		WorkFinishedAt:     b.WorkFinishedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// applyUpdate накладывает записанные поля на прочитанное бронирование,
// чтобы post-commit шаги (счет, уведомление) видели итоговое состояние
func applyUpdate(b *domain.Booking, upd domain.BookingUpdate) *domain.Booking {
	out := *b
	out.Status = upd.Status

	if upd.AcceptedAt != nil {
		out.AcceptedAt = upd.AcceptedAt
	}
	if upd.RejectedAt != nil {
		out.RejectedAt = upd.RejectedAt
	}
	if upd.CancelledAt != nil {
		out.CancelledAt = upd.CancelledAt
	}
	if upd.WorkFinishedAt != nil {
		out.WorkFinishedAt = upd.WorkFinishedAt
	}
	if upd.RejectionReason != nil {
		out.RejectionReason = upd.RejectionReason
	}
	if upd.CancellationReason != nil {
		out.CancellationReason = upd.CancellationReason
	}
	if upd.CancelledBy != nil {
		out.CancelledBy = upd.CancelledBy
	}
	if upd.WorkerNotes != nil {
		out.WorkerNotes = upd.WorkerNotes
	}
	if upd.FinalCost != nil {
		out.FinalCost = upd.FinalCost
	}
	if upd.CompletionPhotos != nil {
		out.CompletionPhotos = upd.CompletionPhotos
	}

	return &out
}
