package get_worker_schedule

import (
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	getSlots "github.com/m04kA/SMC-MarketplaceService/internal/usecase/get_available_slots"
)

// ScheduleSlotResponse слот расписания в HTTP ответе
type ScheduleSlotResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Kind      string `json:"kind"`
	BookingID *int64 `json:"bookingId,omitempty"`
	Note      string `json:"note,omitempty"`
}

// ScheduleBookingResponse активное бронирование в HTTP ответе
type ScheduleBookingResponse struct {
	ID                int64  `json:"id"`
	CustomerID        int64  `json:"customerId"`
	ServiceType       string `json:"serviceType"`
	ScheduledDate     string `json:"scheduledDate"`
	ScheduledTime     string `json:"scheduledTime"`
	EstimatedDuration *int   `json:"estimatedDuration,omitempty"`
	Status            string `json:"status"`
}

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	WorkerID int64                     `json:"workerId"`
	From     string                    `json:"from"`
	To       string                    `json:"to"`
	Slots    []ScheduleSlotResponse    `json:"slots"`
	Bookings []ScheduleBookingResponse `json:"bookings"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.ScheduleResponse) *ScheduleResponse {
	out := &ScheduleResponse{
		WorkerID: resp.WorkerID,
		From:     resp.From.Format(domain.DateFormat),
		To:       resp.To.Format(domain.DateFormat),
		Slots:    make([]ScheduleSlotResponse, 0, len(resp.Slots)),
		Bookings: make([]ScheduleBookingResponse, 0, len(resp.Bookings)),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, ScheduleSlotResponse{
			ID:        slot.ID,
			Date:      slot.Date.Format(domain.DateFormat),
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Kind:      slot.Kind,
			BookingID: slot.BookingID,
			Note:      slot.Note,
		})
	}

	for _, b := range resp.Bookings {
		out.Bookings = append(out.Bookings, ScheduleBookingResponse{
			ID:                b.ID,
			CustomerID:        b.CustomerID,
			ServiceType:       b.ServiceType,
			ScheduledDate:     b.ScheduledDate.Format(domain.DateFormat),
			ScheduledTime:     b.ScheduledTime.String(),
			EstimatedDuration: b.EstimatedDuration,
			Status:            b.Status,
		})
	}

	return out
}
