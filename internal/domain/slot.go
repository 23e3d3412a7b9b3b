package domain

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// SlotKind вид слота недоступности
type SlotKind string

const (
	// SlotBlocked слот, вручную заблокированный мастером (личное время и т.п.)
	SlotBlocked SlotKind = "blocked"
	// SlotBooked слот, занятый подтвержденным бронированием
	// Время жизни такого слота принадлежит ровно одному бронированию
	SlotBooked SlotKind = "booked"
)

// AvailabilitySlot интервал, в течение которого мастер недоступен для новых бронирований
// Интервал полуоткрытый: [StartTime, EndTime)
type AvailabilitySlot struct {
	ID        int64
	WorkerID  int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Kind      SlotKind
	BookingID *int64 // Заполнен только для Kind = SlotBooked
	Note      string // Опциональная заметка для ручной блокировки

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBooked returns true if the slot is owned by a booking
func (s *AvailabilitySlot) IsBooked() bool {
	return s.Kind == SlotBooked
}

// Overlaps reports whether two half-open intervals [a,b) and [c,d) intersect:
// a < d && c < b. Back-to-back intervals (b == c) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}
