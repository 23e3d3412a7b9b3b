package process_payment

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	processPayment "github.com/m04kA/SMC-MarketplaceService/internal/usecase/process_payment"
)

// ProcessPaymentRequest HTTP request model
type ProcessPaymentRequest struct {
	PaymentMethod string   `json:"paymentMethod"` // cash | card
	Tip           *float64 `json:"tip,omitempty"`
}

// PaymentResponse HTTP response model
type PaymentResponse struct {
	ID            int64    `json:"id"`
	Status        string   `json:"status"`
	PaymentStatus string   `json:"paymentStatus"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	FinalCost     *float64 `json:"finalCost,omitempty"`
	Tip           *float64 `json:"tip,omitempty"`
	PaidAt        *string  `json:"paidAt,omitempty"`
	CompletedAt   *string  `json:"completedAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ProcessPaymentRequest) ToUseCaseRequest(bookingID, actorID int64) *processPayment.Request {
	return &processPayment.Request{
		BookingID:     bookingID,
		ActorID:       actorID,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		Tip:           r.Tip,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *processPayment.Response) *PaymentResponse {
	return &PaymentResponse{
		ID:            resp.ID,
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		PaymentMethod: resp.PaymentMethod,
		FinalCost:     resp.FinalCost,
		Tip:           resp.Tip,
		PaidAt:        formatTime(resp.PaidAt),
		CompletedAt:   formatTime(resp.CompletedAt),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
