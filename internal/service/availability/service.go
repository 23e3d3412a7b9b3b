package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	slotRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// Service движок доступности мастера
// Отвечает за ручные блокировки, booked-слоты бронирований и проверку пересечений
type Service struct {
	slots    SlotRepository
	bookings BookingRepository
	logger   Logger
}

// NewService создает новый экземпляр движка доступности
func NewService(slots SlotRepository, bookings BookingRepository, logger Logger) *Service {
	return &Service{
		slots:    slots,
		bookings: bookings,
		logger:   logger,
	}
}

// BlockSlot создает ручную блокировку времени мастера
// Повторная блокировка точно такого же интервала возвращает ErrSlotAlreadyBlocked,
// пересекающиеся (но не идентичные) блокировки разрешены
func (s *Service) BlockSlot(ctx context.Context, workerID int64, date time.Time, start, end types.TimeString, note string) (*domain.AvailabilitySlot, error) {
	s.logger.Info("BlockSlot: worker=%d, date=%s, interval=%s-%s", workerID, date.Format(domain.DateFormat), start, end)

	if err := validateInterval(start, end); err != nil {
		s.logger.Warn("BlockSlot: invalid interval %s-%s for worker=%d: %v", start, end, workerID, err)
		return nil, err
	}

	if len(note) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	exists, err := s.slots.ExistsExact(ctx, workerID, date, start, end)
	if err != nil {
		s.logger.Error("BlockSlot: idempotency check failed for worker=%d: %v", workerID, err)
		return nil, fmt.Errorf("%w: BlockSlot - idempotency check: %v", ErrInternal, err)
	}
	if exists {
		s.logger.Warn("BlockSlot: duplicate block %s-%s for worker=%d on %s", start, end, workerID, date.Format(domain.DateFormat))
		return nil, ErrSlotAlreadyBlocked
	}

	slot := &domain.AvailabilitySlot{
		WorkerID:  workerID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Kind:      domain.SlotBlocked,
		Note:      note,
	}

	created, err := s.slots.Create(ctx, slot)
	if err != nil {
		s.logger.Error("BlockSlot: failed to create slot for worker=%d: %v", workerID, err)
		return nil, fmt.Errorf("%w: BlockSlot - create slot: %v", ErrInternal, err)
	}

	s.logger.Info("BlockSlot: created slot id=%d for worker=%d", created.ID, workerID)
	return created, nil
}

// UnblockSlot снимает ручную блокировку мастера
// Чужие и booked-слоты недоступны для снятия - возвращается ErrSlotNotFound
func (s *Service) UnblockSlot(ctx context.Context, workerID, slotID int64) error {
	s.logger.Info("UnblockSlot: worker=%d, slot=%d", workerID, slotID)

	if err := s.slots.DeleteBlocked(ctx, workerID, slotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("UnblockSlot: slot=%d not found for worker=%d", slotID, workerID)
			return ErrSlotNotFound
		}
		s.logger.Error("UnblockSlot: failed to delete slot=%d for worker=%d: %v", slotID, workerID, err)
		return fmt.Errorf("%w: UnblockSlot - delete slot: %v", ErrInternal, err)
	}

	s.logger.Info("UnblockSlot: removed slot=%d for worker=%d", slotID, workerID)
	return nil
}

// ReserveForBooking создает booked-слот под подтверждаемое бронирование
// Должен вызываться внутри транзакции подтверждения: репозитории берут
// executor из контекста, строки слотов читаются FOR UPDATE
func (s *Service) ReserveForBooking(ctx context.Context, b *domain.Booking) (*domain.AvailabilitySlot, error) {
	start, end, err := bookingInterval(b.ScheduledTime, b.EstimatedDuration)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ReserveForBooking: booking=%d, worker=%d, date=%s, interval=%s-%s",
		b.ID, b.WorkerID, b.ScheduledDate.Format(domain.DateFormat), start, end)

	reason, err := s.findConflict(ctx, b.WorkerID, b.ScheduledDate, start, end, &b.ID)
	if err != nil {
		s.logger.Error("ReserveForBooking: conflict check failed for booking=%d: %v", b.ID, err)
		return nil, fmt.Errorf("%w: ReserveForBooking - conflict check: %v", ErrInternal, err)
	}
	if reason != "" {
		s.logger.Warn("ReserveForBooking: booking=%d rejected: %s", b.ID, reason)
		return nil, fmt.Errorf("%w: %s", ErrSlotConflict, reason)
	}

	slot := &domain.AvailabilitySlot{
		WorkerID:  b.WorkerID,
		Date:      b.ScheduledDate,
		StartTime: start,
		EndTime:   end,
		Kind:      domain.SlotBooked,
		BookingID: &b.ID,
	}

	created, err := s.slots.Create(ctx, slot)
	if err != nil {
		s.logger.Error("ReserveForBooking: failed to create slot for booking=%d: %v", b.ID, err)
		return nil, fmt.Errorf("%w: ReserveForBooking - create slot: %v", ErrInternal, err)
	}

	s.logger.Info("ReserveForBooking: reserved slot id=%d for booking=%d", created.ID, b.ID)
	return created, nil
}

// ReleaseForBooking удаляет booked-слот бронирования
// Идемпотентна: повторный вызов и отмена неподтвержденного бронирования безопасны
func (s *Service) ReleaseForBooking(ctx context.Context, bookingID int64) error {
	s.logger.Info("ReleaseForBooking: booking=%d", bookingID)

	if err := s.slots.DeleteByBookingID(ctx, bookingID); err != nil {
		s.logger.Error("ReleaseForBooking: failed to release slot for booking=%d: %v", bookingID, err)
		return fmt.Errorf("%w: ReleaseForBooking - delete slot: %v", ErrInternal, err)
	}

	return nil
}

// IsAvailable проверяет, свободен ли интервал у мастера
// Возвращает ok и человекочитаемую причину отказа
// На ошибке хранилища делает один повтор, затем возвращает ErrStorageUnavailable
func (s *Service) IsAvailable(ctx context.Context, workerID int64, date time.Time, start types.TimeString, durationMinutes *int) (bool, string, error) {
	begin, end, err := bookingInterval(start, durationMinutes)
	if err != nil {
		return false, "", err
	}

	reason, err := s.findConflict(ctx, workerID, date, begin, end, nil)
	if err != nil {
		s.logger.Warn("IsAvailable: conflict check failed for worker=%d, retrying: %v", workerID, err)
		reason, err = s.findConflict(ctx, workerID, date, begin, end, nil)
	}
	if err != nil {
		s.logger.Error("IsAvailable: conflict check failed for worker=%d after retry: %v", workerID, err)
		return false, "", fmt.Errorf("%w: IsAvailable - conflict check: %v", ErrStorageUnavailable, err)
	}

	if reason != "" {
		return false, reason, nil
	}

	return true, "", nil
}

// FreeSlots возвращает свободные времена начала работы на дату
// Кандидаты идут с шагом granularity внутри рабочих часов; время начала
// подходит, если весь интервал умещается в рабочие часы и не пересекается
// с занятым временем. Рабочие часы и шаг настраиваются через запрос
func (s *Service) FreeSlots(ctx context.Context, workerID int64, date time.Time, q FreeSlotsQuery) ([]types.TimeString, error) {
	duration := domain.DefaultEstimatedDurationMinutes
	if q.DurationMinutes != nil {
		duration = *q.DurationMinutes
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	granularity := domain.DefaultSlotGranularityMinutes
	if q.GranularityMinutes != nil {
		granularity = *q.GranularityMinutes
	}
	if granularity <= 0 {
		return nil, fmt.Errorf("%w: granularity must be positive", ErrInvalidInput)
	}

	workStart := types.TimeString(domain.DefaultWorkingHoursStart)
	if q.WorkStart != nil {
		workStart = *q.WorkStart
	}
	workEnd := types.TimeString(domain.DefaultWorkingHoursEnd)
	if q.WorkEnd != nil {
		workEnd = *q.WorkEnd
	}

	startMinutes, err := workStart.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: work start: %v", ErrInvalidTimeRange, err)
	}
	endMinutes, err := workEnd.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: work end: %v", ErrInvalidTimeRange, err)
	}
	if startMinutes >= endMinutes {
		return nil, fmt.Errorf("%w: work start must be before work end", ErrInvalidTimeRange)
	}

	s.logger.Info("FreeSlots: worker=%d, date=%s, duration=%d, hours=%s-%s, step=%d",
		workerID, date.Format(domain.DateFormat), duration, workStart, workEnd, granularity)

	slots, err := s.slots.ListByWorkerAndDate(ctx, workerID, date)
	if err != nil {
		s.logger.Error("FreeSlots: failed to list slots for worker=%d: %v", workerID, err)
		return nil, fmt.Errorf("%w: FreeSlots - list slots: %v", ErrInternal, err)
	}

	activeBookings, err := s.bookings.ListActiveByWorkerAndDate(ctx, workerID, date)
	if err != nil {
		s.logger.Error("FreeSlots: failed to list bookings for worker=%d: %v", workerID, err)
		return nil, fmt.Errorf("%w: FreeSlots - list bookings: %v", ErrInternal, err)
	}

	free := make([]types.TimeString, 0)

	for offset := 0; startMinutes+offset+duration <= endMinutes; offset += granularity {
		candidateStart, err := types.FromMinutes(startMinutes + offset)
		if err != nil {
			return nil, fmt.Errorf("%w: FreeSlots - candidate start: %v", ErrInternal, err)
		}
		candidateEnd, err := types.FromMinutes(startMinutes + offset + duration)
		if err != nil {
			return nil, fmt.Errorf("%w: FreeSlots - candidate end: %v", ErrInternal, err)
		}

		if conflictReason(slots, activeBookings, candidateStart, candidateEnd, nil) == "" {
			free = append(free, candidateStart)
		}
	}

	s.logger.Info("FreeSlots: %d free slots for worker=%d on %s", len(free), workerID, date.Format(domain.DateFormat))
	return free, nil
}

// WorkerSchedule возвращает расписание мастера за период:
// все слоты плюс активные бронирования
func (s *Service) WorkerSchedule(ctx context.Context, workerID int64, from, to time.Time) (*WorkerSchedule, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range end before start", ErrInvalidInput)
	}

	s.logger.Info("WorkerSchedule: worker=%d, period=%s to %s",
		workerID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	slots, err := s.slots.ListByWorkerAndDateRange(ctx, workerID, from, to)
	if err != nil {
		s.logger.Error("WorkerSchedule: failed to list slots for worker=%d: %v", workerID, err)
		return nil, fmt.Errorf("%w: WorkerSchedule - list slots: %v", ErrInternal, err)
	}

	bookings, err := s.bookings.ListActiveByWorkerAndDateRange(ctx, workerID, from, to)
	if err != nil {
		s.logger.Error("WorkerSchedule: failed to list bookings for worker=%d: %v", workerID, err)
		return nil, fmt.Errorf("%w: WorkerSchedule - list bookings: %v", ErrInternal, err)
	}

	return &WorkerSchedule{
		Slots:    slots,
		Bookings: bookings,
	}, nil
}

// findConflict ищет пересечение интервала с занятым временем мастера
// excludeBookingID исключает само бронирование из проверки (резервирование)
// Пустая причина означает, что интервал свободен
func (s *Service) findConflict(ctx context.Context, workerID int64, date time.Time, start, end types.TimeString, excludeBookingID *int64) (string, error) {
	slots, err := s.slots.ListByWorkerAndDate(ctx, workerID, date)
	if err != nil {
		return "", fmt.Errorf("list slots: %w", err)
	}

	activeBookings, err := s.bookings.ListActiveByWorkerAndDate(ctx, workerID, date)
	if err != nil {
		return "", fmt.Errorf("list active bookings: %w", err)
	}

	return conflictReason(slots, activeBookings, start, end, excludeBookingID), nil
}

func conflictReason(slots []*domain.AvailabilitySlot, bookings []*domain.Booking, start, end types.TimeString, excludeBookingID *int64) string {
	for _, slot := range slots {
		if excludeBookingID != nil && slot.BookingID != nil && *slot.BookingID == *excludeBookingID {
			continue
		}
		if domain.Overlaps(start, end, slot.StartTime, slot.EndTime) {
			if slot.IsBooked() {
				return fmt.Sprintf("interval %s-%s is taken by another booking", slot.StartTime, slot.EndTime)
			}
			return fmt.Sprintf("interval %s-%s is blocked by the worker", slot.StartTime, slot.EndTime)
		}
	}

	for _, b := range bookings {
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		bStart, bEnd, err := bookingInterval(b.ScheduledTime, b.EstimatedDuration)
		if err != nil {
			continue
		}
		if domain.Overlaps(start, end, bStart, bEnd) {
			return fmt.Sprintf("interval %s-%s is held by an active booking", bStart, bEnd)
		}
	}

	return ""
}

// bookingInterval вычисляет полуоткрытый интервал [start, end) бронирования
// Единственное место, где живет длительность по умолчанию
// Интервал не может пересекать полночь: завернутый конец инвертирует
// интервал и выводит его из-под проверки пересечений; "24:00" допустим
// как правая граница
func bookingInterval(start types.TimeString, durationMinutes *int) (types.TimeString, types.TimeString, error) {
	startMinutes, err := start.Minutes()
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	duration := domain.DefaultEstimatedDurationMinutes
	if durationMinutes != nil {
		duration = *durationMinutes
	}
	if duration <= 0 {
		return "", "", fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	endMinutes := startMinutes + duration
	if endMinutes > types.MinutesPerDay {
		return "", "", fmt.Errorf("%w: interval crosses midnight", ErrInvalidTimeRange)
	}

	end, err := types.FromMinutes(endMinutes)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	return start, end, nil
}

func validateInterval(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidTimeRange, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidTimeRange, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidTimeRange)
	}
	return nil
}
