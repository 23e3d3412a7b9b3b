package get_available_slots

import (
	"time"

	availabilitySvc "github.com/m04kA/SMC-MarketplaceService/internal/service/availability"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// Request модель запроса свободных слотов на дату
// Рабочие часы и шаг опциональны, nil - значения по умолчанию
type Request struct {
	WorkerID           int64
	Date               time.Time
	DurationMinutes    *int // nil - длительность по умолчанию
	WorkStart          *types.TimeString
	WorkEnd            *types.TimeString
	GranularityMinutes *int
}

// Response список свободных времен начала работы
type Response struct {
	WorkerID int64
	Date     time.Time
	Slots    []types.TimeString
}

// CheckRequest модель запроса проверки доступности интервала
type CheckRequest struct {
	WorkerID        int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes *int
}

// CheckResponse результат проверки доступности
type CheckResponse struct {
	Available bool
	Reason    string // пустая строка, если интервал свободен
}

// ScheduleRequest модель запроса расписания мастера за период
type ScheduleRequest struct {
	WorkerID int64
	From     time.Time
	To       time.Time
}

// ScheduleSlot слот расписания в ответе
type ScheduleSlot struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Kind      string
	BookingID *int64
	Note      string
}

// ScheduleBooking активное бронирование в ответе расписания
type ScheduleBooking struct {
	ID                int64
	CustomerID        int64
	ServiceType       string
	ScheduledDate     time.Time
	ScheduledTime     types.TimeString
	EstimatedDuration *int
	Status            string
}

// ScheduleResponse расписание мастера: слоты плюс активные бронирования
type ScheduleResponse struct {
	WorkerID int64
	From     time.Time
	To       time.Time
	Slots    []ScheduleSlot
	Bookings []ScheduleBooking
}

func toScheduleResponse(workerID int64, from, to time.Time, schedule *availabilitySvc.WorkerSchedule) *ScheduleResponse {
	resp := &ScheduleResponse{
		WorkerID: workerID,
		From:     from,
		To:       to,
		Slots:    make([]ScheduleSlot, 0, len(schedule.Slots)),
		Bookings: make([]ScheduleBooking, 0, len(schedule.Bookings)),
	}

	for _, slot := range schedule.Slots {
		resp.Slots = append(resp.Slots, ScheduleSlot{
			ID:        slot.ID,
			Date:      slot.Date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Kind:      string(slot.Kind),
			BookingID: slot.BookingID,
			Note:      slot.Note,
		})
	}

	for _, b := range schedule.Bookings {
		resp.Bookings = append(resp.Bookings, ScheduleBooking{
			ID:                b.ID,
			CustomerID:        b.CustomerID,
			ServiceType:       b.ServiceType,
			ScheduledDate:     b.ScheduledDate,
			ScheduledTime:     b.ScheduledTime,
			EstimatedDuration: b.EstimatedDuration,
			Status:            string(b.Status),
		})
	}

	return resp
}
