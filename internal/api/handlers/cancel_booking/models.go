package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	updateStatus "github.com/m04kA/SMC-MarketplaceService/internal/usecase/update_booking_status"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID                 int64   `json:"id"`
	Status             string  `json:"status"`
	CancelledBy        *int64  `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	UpdatedAt          string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID, actorID int64) *updateStatus.Request {
	return &updateStatus.Request{
		BookingID:    bookingID,
		ActorID:      actorID,
		TargetStatus: domain.StatusCancelled,
		Reason:       r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *CancelBookingResponse {
	var cancelledAt *string
	if resp.CancelledAt != nil {
		s := resp.CancelledAt.Format(time.RFC3339)
		cancelledAt = &s
	}

	return &CancelBookingResponse{
		ID:                 resp.ID,
		Status:             resp.Status,
		CancelledBy:        resp.CancelledBy,
		CancellationReason: resp.CancellationReason,
		CancelledAt:        cancelledAt,
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
