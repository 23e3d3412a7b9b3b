package update_booking_status

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	updateStatus "github.com/m04kA/SMC-MarketplaceService/internal/usecase/update_booking_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status           string   `json:"status"`
	Reason           *string  `json:"reason,omitempty"`
	WorkerNotes      *string  `json:"workerNotes,omitempty"`
	FinalCost        *float64 `json:"finalCost,omitempty"`
	CompletionPhotos []string `json:"completionPhotos,omitempty"`
}

// BookingStatusResponse HTTP response model
type BookingStatusResponse struct {
	ID                 int64    `json:"id"`
	CustomerID         int64    `json:"customerId"`
	WorkerID           int64    `json:"workerId"`
	ServiceType        string   `json:"serviceType"`
	ScheduledDate      string   `json:"scheduledDate"`
	ScheduledTime      string   `json:"scheduledTime"`
	Status             string   `json:"status"`
	PaymentStatus      string   `json:"paymentStatus"`
	FinalCost          *float64 `json:"finalCost,omitempty"`
	WorkerNotes        *string  `json:"workerNotes,omitempty"`
	CompletionPhotos   []string `json:"completionPhotos,omitempty"`
	AcceptedAt         *string  `json:"acceptedAt,omitempty"`
	RejectedAt         *string  `json:"rejectedAt,omitempty"`
	RejectionReason    *string  `json:"rejectionReason,omitempty"`
	CancelledBy        *int64   `json:"cancelledBy,omitempty"`
	CancellationReason *string  `json:"cancellationReason,omitempty"`
	CancelledAt        *string  `json:"cancelledAt,omitempty"`
	WorkFinishedAt     *string  `json:"workFinishedAt,omitempty"`
	UpdatedAt          string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(bookingID, actorID int64) *updateStatus.Request {
	return &updateStatus.Request{
		BookingID:        bookingID,
		ActorID:          actorID,
		TargetStatus:     domain.BookingStatus(r.Status),
		Reason:           r.Reason,
		WorkerNotes:      r.WorkerNotes,
		FinalCost:        r.FinalCost,
		CompletionPhotos: r.CompletionPhotos,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *BookingStatusResponse {
	return &BookingStatusResponse{
		ID:                 resp.ID,
		CustomerID:         resp.CustomerID,
		WorkerID:           resp.WorkerID,
		ServiceType:        resp.ServiceType,
		ScheduledDate:      resp.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime:      resp.ScheduledTime.String(),
		Status:             resp.Status,
		PaymentStatus:      resp.PaymentStatus,
		FinalCost:          resp.FinalCost,
		WorkerNotes:        resp.WorkerNotes,
		CompletionPhotos:   resp.CompletionPhotos,
		AcceptedAt:         formatTime(resp.AcceptedAt),
		RejectedAt:         formatTime(resp.RejectedAt),
		RejectionReason:    resp.RejectionReason,
		CancelledBy:        resp.CancelledBy,
		CancellationReason: resp.CancellationReason,
		CancelledAt:        formatTime(resp.CancelledAt),
		WorkFinishedAt:     formatTime(resp.WorkFinishedAt),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
