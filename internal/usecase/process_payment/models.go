package process_payment

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// Request модель запроса на оплату бронирования
type Request struct {
	BookingID     int64
	ActorID       int64 // ID инициатора (из заголовка аутентификации)
	PaymentMethod domain.PaymentMethod
	Tip           *float64
}

// Response модель ответа с оплаченным бронированием
type Response struct {
	ID            int64
	CustomerID    int64
	WorkerID      int64
	Status        string
	PaymentStatus string
	PaymentMethod *string
	FinalCost     *float64
	Tip           *float64
	PaidAt        *time.Time
	CompletedAt   *time.Time
	UpdatedAt     time.Time
}

func toResponse(b *domain.Booking) *Response {
	var method *string
	if b.PaymentMethod != nil {
		m := string(*b.PaymentMethod)
		method = &m
	}

	return &Response{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		WorkerID:      b.WorkerID,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		PaymentMethod: method,
		FinalCost:     b.FinalCost,
		Tip:           b.Tip,
		PaidAt:        b.PaidAt,
		CompletedAt:   b.CompletedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
