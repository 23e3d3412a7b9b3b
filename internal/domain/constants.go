package domain

// Default scheduling values
const (
	// DefaultEstimatedDurationMinutes применяется, когда бронирование создано без
	// указания длительности. Единственное место, где этот дефолт используется -
	// вычисление интервала в availability engine
	DefaultEstimatedDurationMinutes = 60

	DefaultWorkingHoursStart = "08:00"
	DefaultWorkingHoursEnd   = "18:00"

	DefaultSlotGranularityMinutes = 60
)

// Business validation constants
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 480 // 8 hours

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых бронирование занимает расписание мастера
// Используются в проверках пересечений интервалов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusOnTheWay,
	StatusInProgress,
}

// TerminalStatuses статусы без исходящих переходов
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
}
