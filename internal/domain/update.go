package domain

import "time"

// BookingUpdate набор полей, записываемых вместе со сменой статуса
// Заполняются только поля, связанные с конкретным ребром перехода;
// nil-поля не трогают существующие значения
type BookingUpdate struct {
	Status BookingStatus

	AcceptedAt     *time.Time
	RejectedAt     *time.Time
	CancelledAt    *time.Time
	WorkFinishedAt *time.Time
	CompletedAt    *time.Time
	PaidAt         *time.Time

	RejectionReason    *string
	CancellationReason *string
	CancelledBy        *int64
	WorkerNotes        *string

	FinalCost        *float64
	Tip              *float64
	CompletionPhotos []string

	PaymentStatus *PaymentStatus
	PaymentMethod *PaymentMethod
}
