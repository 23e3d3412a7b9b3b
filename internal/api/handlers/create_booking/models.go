package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	createBooking "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	WorkerID          int64    `json:"workerId"`
	ServiceType       string   `json:"serviceType"`
	JobDescription    string   `json:"jobDescription"`
	ScheduledDate     string   `json:"scheduledDate"` // "2025-10-15"
	ScheduledTime     string   `json:"scheduledTime"` // "10:00"
	EstimatedDuration *int     `json:"estimatedDuration,omitempty"`
	EstimatedCost     *float64 `json:"estimatedCost,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64    `json:"id"`
	CustomerID        int64    `json:"customerId"`
	WorkerID          int64    `json:"workerId"`
	ServiceType       string   `json:"serviceType"`
	JobDescription    string   `json:"jobDescription"`
	ScheduledDate     string   `json:"scheduledDate"`
	ScheduledTime     string   `json:"scheduledTime"`
	EstimatedDuration *int     `json:"estimatedDuration,omitempty"`
	EstimatedCost     *float64 `json:"estimatedCost,omitempty"`
	Status            string   `json:"status"`
	PaymentStatus     string   `json:"paymentStatus"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	scheduledDate, err := time.Parse(domain.DateFormat, r.ScheduledDate)
	if err != nil {
		return nil, err
	}

	scheduledTime, err := types.NewTimeStringFromString(r.ScheduledTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:        customerID,
		WorkerID:          r.WorkerID,
		ServiceType:       r.ServiceType,
		JobDescription:    r.JobDescription,
		ScheduledDate:     scheduledDate,
		ScheduledTime:     scheduledTime,
		EstimatedDuration: r.EstimatedDuration,
		EstimatedCost:     r.EstimatedCost,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                resp.ID,
		CustomerID:        resp.CustomerID,
		WorkerID:          resp.WorkerID,
		ServiceType:       resp.ServiceType,
		JobDescription:    resp.JobDescription,
		ScheduledDate:     resp.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime:     resp.ScheduledTime.String(),
		EstimatedDuration: resp.EstimatedDuration,
		EstimatedCost:     resp.EstimatedCost,
		Status:            resp.Status,
		PaymentStatus:     resp.PaymentStatus,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}
