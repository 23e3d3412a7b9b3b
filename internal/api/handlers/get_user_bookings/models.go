package get_user_bookings

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// BookingListItem элемент списка бронирований
type BookingListItem struct {
	ID                int64    `json:"id"`
	CustomerID        int64    `json:"customerId"`
	WorkerID          int64    `json:"workerId"`
	ServiceType       string   `json:"serviceType"`
	ScheduledDate     string   `json:"scheduledDate"`
	ScheduledTime     string   `json:"scheduledTime"`
	EstimatedDuration *int     `json:"estimatedDuration,omitempty"`
	Status            string   `json:"status"`
	PaymentStatus     string   `json:"paymentStatus"`
	EstimatedCost     *float64 `json:"estimatedCost,omitempty"`
	FinalCost         *float64 `json:"finalCost,omitempty"`
	CreatedAt         string   `json:"createdAt"`
}

// BookingListResponse HTTP response model
type BookingListResponse struct {
	Bookings []BookingListItem `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBookings конвертирует список доменных моделей в HTTP response
func FromDomainBookings(items []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingListItem, 0, len(items)),
		Total:    len(items),
	}

	for _, b := range items {
		resp.Bookings = append(resp.Bookings, BookingListItem{
			ID:                b.ID,
			CustomerID:        b.CustomerID,
			WorkerID:          b.WorkerID,
			ServiceType:       b.ServiceType,
			ScheduledDate:     b.ScheduledDate.Format(domain.DateFormat),
			ScheduledTime:     b.ScheduledTime.String(),
			EstimatedDuration: b.EstimatedDuration,
			Status:            string(b.Status),
			PaymentStatus:     string(b.PaymentStatus),
			EstimatedCost:     b.EstimatedCost,
			FinalCost:         b.FinalCost,
			CreatedAt:         b.CreatedAt.Format(time.RFC3339),
		})
	}

	return resp
}
