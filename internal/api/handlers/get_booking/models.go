package get_booking

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64    `json:"id"`
	CustomerID         int64    `json:"customerId"`
	WorkerID           int64    `json:"workerId"`
	ServiceType        string   `json:"serviceType"`
	JobDescription     string   `json:"jobDescription"`
	ScheduledDate      string   `json:"scheduledDate"`
	ScheduledTime      string   `json:"scheduledTime"`
	EstimatedDuration  *int     `json:"estimatedDuration,omitempty"`
	Status             string   `json:"status"`
	EstimatedCost      *float64 `json:"estimatedCost,omitempty"`
	FinalCost          *float64 `json:"finalCost,omitempty"`
	Tip                *float64 `json:"tip,omitempty"`
	PaymentStatus      string   `json:"paymentStatus"`
	PaymentMethod      *string  `json:"paymentMethod,omitempty"`
	PaidAt             *string  `json:"paidAt,omitempty"`
	CompletionPhotos   []string `json:"completionPhotos,omitempty"`
	WorkerNotes        *string  `json:"workerNotes,omitempty"`
	AcceptedAt         *string  `json:"acceptedAt,omitempty"`
	RejectedAt         *string  `json:"rejectedAt,omitempty"`
	RejectionReason    *string  `json:"rejectionReason,omitempty"`
	CancelledBy        *int64   `json:"cancelledBy,omitempty"`
	CancellationReason *string  `json:"cancellationReason,omitempty"`
	CancelledAt        *string  `json:"cancelledAt,omitempty"`
	WorkFinishedAt     *string  `json:"workFinishedAt,omitempty"`
	CompletedAt        *string  `json:"completedAt,omitempty"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}

// FromDomainBooking конвертирует доменную модель в HTTP response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	var method *string
	if b.PaymentMethod != nil {
		m := string(*b.PaymentMethod)
		method = &m
	}

	return &BookingResponse{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		WorkerID:           b.WorkerID,
		ServiceType:        b.ServiceType,
		JobDescription:     b.JobDescription,
		ScheduledDate:      b.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime:      b.ScheduledTime.String(),
		EstimatedDuration:  b.EstimatedDuration,
		Status:             string(b.Status),
		EstimatedCost:      b.EstimatedCost,
		FinalCost:          b.FinalCost,
		Tip:                b.Tip,
		PaymentStatus:      string(b.PaymentStatus),
		PaymentMethod:      method,
		PaidAt:             formatTime(b.PaidAt),
		CompletionPhotos:   b.CompletionPhotos,
		WorkerNotes:        b.WorkerNotes,
		AcceptedAt:         formatTime(b.AcceptedAt),
		RejectedAt:         formatTime(b.RejectedAt),
		RejectionReason:    b.RejectionReason,
		CancelledBy:        b.CancelledBy,
		CancellationReason: b.CancellationReason,
		CancelledAt:        formatTime(b.CancelledAt),
		WorkFinishedAt:     formatTime(b.WorkFinishedAt),
		CompletedAt:        formatTime(b.CompletedAt),
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
