package availability

import (
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// WorkerSchedule расписание мастера за период: слоты и активные бронирования
type WorkerSchedule struct {
	Slots    []*domain.AvailabilitySlot
	Bookings []*domain.Booking
}

// FreeSlotsQuery параметры подбора свободных слотов
// nil-поля заменяются значениями по умолчанию из domain
type FreeSlotsQuery struct {
	DurationMinutes    *int
	WorkStart          *types.TimeString
	WorkEnd            *types.TimeString
	GranularityMinutes *int
}
