package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID        int64            // ID заказчика (из заголовка аутентификации)
	WorkerID          int64            // ID мастера
	ServiceType       string           // Тип услуги (plumbing, electrical, ...)
	JobDescription    string           // Описание работы
	ScheduledDate     time.Time        // Дата выполнения (без времени)
	ScheduledTime     types.TimeString // Время начала (например, "10:00")
	EstimatedDuration *int             // Оценка длительности в минутах (опционально)
	EstimatedCost     *float64         // Предварительная стоимость (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                int64
	CustomerID        int64
	WorkerID          int64
	ServiceType       string
	JobDescription    string
	ScheduledDate     time.Time
	ScheduledTime     types.TimeString
	EstimatedDuration *int
	EstimatedCost     *float64
	Status            string
	PaymentStatus     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:                b.ID,
		CustomerID:        b.CustomerID,
		WorkerID:          b.WorkerID,
		ServiceType:       b.ServiceType,
		JobDescription:    b.JobDescription,
		ScheduledDate:     b.ScheduledDate,
		ScheduledTime:     b.ScheduledTime,
		EstimatedDuration: b.EstimatedDuration,
		EstimatedCost:     b.EstimatedCost,
		Status:            string(b.Status),
		PaymentStatus:     string(b.PaymentStatus),
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}
