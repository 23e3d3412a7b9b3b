package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	slotRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-MarketplaceService/pkg/ptr"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeSlotRepo struct {
	mu       sync.Mutex
	slots    []*domain.AvailabilitySlot
	nextID   int64
	listErrs int // количество предстоящих ошибок ListByWorkerAndDate
}

func (f *fakeSlotRepo) Create(_ context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	slot.ID = f.nextID
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = slot.CreatedAt

	stored := *slot
	f.slots = append(f.slots, &stored)
	return slot, nil
}

func (f *fakeSlotRepo) ListByWorkerAndDate(_ context.Context, workerID int64, date time.Time) ([]*domain.AvailabilitySlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErrs > 0 {
		f.listErrs--
		return nil, errors.New("connection refused")
	}

	out := make([]*domain.AvailabilitySlot, 0)
	for _, s := range f.slots {
		if s.WorkerID == workerID && s.Date.Equal(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) ListByWorkerAndDateRange(_ context.Context, workerID int64, from, to time.Time) ([]*domain.AvailabilitySlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*domain.AvailabilitySlot, 0)
	for _, s := range f.slots {
		if s.WorkerID == workerID && !s.Date.Before(from) && !s.Date.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) ExistsExact(_ context.Context, workerID int64, date time.Time, start, end types.TimeString) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.slots {
		if s.WorkerID == workerID && s.Date.Equal(date) && s.StartTime == start && s.EndTime == end {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSlotRepo) DeleteBlocked(_ context.Context, workerID, slotID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, s := range f.slots {
		if s.ID == slotID && s.WorkerID == workerID && s.Kind == domain.SlotBlocked {
			f.slots = append(f.slots[:i], f.slots[i+1:]...)
			return nil
		}
	}
	return slotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) DeleteByBookingID(_ context.Context, bookingID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, s := range f.slots {
		if s.BookingID != nil && *s.BookingID == bookingID && s.Kind == domain.SlotBooked {
			f.slots = append(f.slots[:i], f.slots[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) ListActiveByWorkerAndDate(_ context.Context, workerID int64, date time.Time) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.WorkerID == workerID && b.ScheduledDate.Equal(date) && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListActiveByWorkerAndDateRange(_ context.Context, workerID int64, from, to time.Time) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.WorkerID == workerID && !b.ScheduledDate.Before(from) && !b.ScheduledDate.After(to) && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func newTestService() (*Service, *fakeSlotRepo, *fakeBookingRepo) {
	slots := &fakeSlotRepo{}
	bookings := &fakeBookingRepo{}
	return NewService(slots, bookings, nopLogger{}), slots, bookings
}

func TestBlockSlot_CreatesBlockedSlot(t *testing.T) {
	svc, slots, _ := newTestService()

	slot, err := svc.BlockSlot(context.Background(), 1, testDate, "10:00", "12:00", "lunch")

	require.NoError(t, err)
	assert.Equal(t, domain.SlotBlocked, slot.Kind)
	assert.Nil(t, slot.BookingID)
	assert.Equal(t, "lunch", slot.Note)
	assert.Len(t, slots.slots, 1)
}

func TestBlockSlot_DuplicateExactIntervalRejected(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.BlockSlot(ctx, 1, testDate, "10:00", "12:00", "")
	require.NoError(t, err)

	_, err = svc.BlockSlot(ctx, 1, testDate, "10:00", "12:00", "")
	assert.ErrorIs(t, err, ErrSlotAlreadyBlocked)
}

func TestBlockSlot_OverlappingButDifferentIntervalAllowed(t *testing.T) {
	svc, slots, _ := newTestService()
	ctx := context.Background()

	_, err := svc.BlockSlot(ctx, 1, testDate, "10:00", "12:00", "")
	require.NoError(t, err)

	// Наложение ручных блокировок разрешено, запрещен только точный дубликат
	_, err = svc.BlockSlot(ctx, 1, testDate, "11:00", "13:00", "")
	require.NoError(t, err)
	assert.Len(t, slots.slots, 2)
}

func TestBlockSlot_InvalidRange(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.BlockSlot(ctx, 1, testDate, "12:00", "10:00", "")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.BlockSlot(ctx, 1, testDate, "10:00", "10:00", "")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestUnblockSlot(t *testing.T) {
	svc, slots, _ := newTestService()
	ctx := context.Background()

	slot, err := svc.BlockSlot(ctx, 1, testDate, "10:00", "12:00", "")
	require.NoError(t, err)

	require.NoError(t, svc.UnblockSlot(ctx, 1, slot.ID))
	assert.Empty(t, slots.slots)

	assert.ErrorIs(t, svc.UnblockSlot(ctx, 1, slot.ID), ErrSlotNotFound)
}

func TestUnblockSlot_CannotRemoveForeignOrBookedSlot(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	slot, err := svc.BlockSlot(ctx, 1, testDate, "10:00", "12:00", "")
	require.NoError(t, err)

	// Чужой мастер
	assert.ErrorIs(t, svc.UnblockSlot(ctx, 2, slot.ID), ErrSlotNotFound)

	// Booked-слот снимается только отменой бронирования
	booked, err := svc.ReserveForBooking(ctx, &domain.Booking{
		ID:            77,
		WorkerID:      1,
		ScheduledDate: testDate,
		ScheduledTime: "14:00",
		Status:        domain.StatusPending,
	})
	require.NoError(t, err)
	assert.ErrorIs(t, svc.UnblockSlot(ctx, 1, booked.ID), ErrSlotNotFound)
}

func TestReserveForBooking_DefaultDuration(t *testing.T) {
	svc, _, _ := newTestService()

	slot, err := svc.ReserveForBooking(context.Background(), &domain.Booking{
		ID:            1,
		WorkerID:      1,
		ScheduledDate: testDate,
		ScheduledTime: "09:00",
		Status:        domain.StatusPending,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SlotBooked, slot.Kind)
	assert.Equal(t, types.TimeString("09:00"), slot.StartTime)
	assert.Equal(t, types.TimeString("10:00"), slot.EndTime)
	require.NotNil(t, slot.BookingID)
	assert.Equal(t, int64(1), *slot.BookingID)
}

func TestReserveForBooking_ConflictWithBlockedSlot(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.BlockSlot(ctx, 1, testDate, "09:00", "11:00", "")
	require.NoError(t, err)

	_, err = svc.ReserveForBooking(ctx, &domain.Booking{
		ID:            1,
		WorkerID:      1,
		ScheduledDate: testDate,
		ScheduledTime: "10:30",
		Status:        domain.StatusPending,
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestReserveForBooking_ConflictWithActiveBooking(t *testing.T) {
	svc, _, bookings := newTestService()
	ctx := context.Background()

	bookings.bookings = append(bookings.bookings, &domain.Booking{
		ID:            1,
		WorkerID:      1,
		ScheduledDate: testDate,
		ScheduledTime: "09:00",
		Status:        domain.StatusPending,
	})

	// 09:30 пересекается с активным бронированием 09:00-10:00
	_, err := svc.ReserveForBooking(ctx, &domain.Booking{
		ID:            2,
		WorkerID:      1,
		ScheduledDate: testDate,
		ScheduledTime: "09:30",
		Status:        domain.StatusPending,
	})
	assert.ErrorIs(t, err, ErrSlotConflict)

	// 10:00 впритык к 09:00-10:00 - конфликта нет, интервалы полуоткрытые
	_, err = svc.ReserveForBooking(ctx, &domain.Booking{
		ID:            3,
		WorkerID:      1,
		ScheduledDate: testDate,
		ScheduledTime: "10:00",
		Status:        domain.StatusPending,
	})
	assert.NoError(t, err)
}

func TestReserveForBooking_IgnoresOwnActiveRow(t *testing.T) {
	svc, _, bookings := newTestService()

	// Подтверждаемое бронирование само присутствует в списке активных
	// и не должно конфликтовать с собой
	self := &domain.Booking{
		ID:            5,
		WorkerID:      1,
		ScheduledDate: testDate,
		ScheduledTime: "09:00",
		Status:        domain.StatusPending,
	}
	bookings.bookings = append(bookings.bookings, self)

	_, err := svc.ReserveForBooking(context.Background(), self)
	assert.NoError(t, err)
}

func TestReserveForBooking_RejectsIntervalCrossingMidnight(t *testing.T) {
	svc, slots, _ := newTestService()
	ctx := context.Background()

	// 23:30 + 60 минут по умолчанию уходит за полночь
	_, err := svc.ReserveForBooking(ctx, &domain.Booking{
		ID:            1,
		WorkerID:      1,
		ScheduledDate: testDate,
		ScheduledTime: "23:30",
		Status:        domain.StatusPending,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.Empty(t, slots.slots)

	_, err = svc.ReserveForBooking(ctx, &domain.Booking{
		ID:                2,
		WorkerID:          1,
		ScheduledDate:     testDate,
		ScheduledTime:     "20:00",
		EstimatedDuration: ptr.Ptr(300),
		Status:            domain.StatusPending,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestReserveForBooking_LateEveningOverlapDetected(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// [22:30, 24:00) - конец ровно в полночь допустим
	slot, err := svc.ReserveForBooking(ctx, &domain.Booking{
		ID:                1,
		WorkerID:          1,
		ScheduledDate:     testDate,
		ScheduledTime:     "22:30",
		EstimatedDuration: ptr.Ptr(90),
		Status:            domain.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("24:00"), slot.EndTime)

	_, err = svc.ReserveForBooking(ctx, &domain.Booking{
		ID:            2,
		WorkerID:      1,
		ScheduledDate: testDate,
		ScheduledTime: "23:00",
		Status:        domain.StatusPending,
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestReleaseForBooking_Idempotent(t *testing.T) {
	svc, slots, _ := newTestService()
	ctx := context.Background()

	_, err := svc.ReserveForBooking(ctx, &domain.Booking{
		ID:            1,
		WorkerID:      1,
		ScheduledDate: testDate,
		ScheduledTime: "09:00",
		Status:        domain.StatusPending,
	})
	require.NoError(t, err)

	require.NoError(t, svc.ReleaseForBooking(ctx, 1))
	assert.Empty(t, slots.slots)

	// Повторное снятие и снятие несуществующего резерва безопасны
	require.NoError(t, svc.ReleaseForBooking(ctx, 1))
	require.NoError(t, svc.ReleaseForBooking(ctx, 999))
}

func TestIsAvailable(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.BlockSlot(ctx, 1, testDate, "10:00", "12:00", "")
	require.NoError(t, err)

	ok, reason, err := svc.IsAvailable(ctx, 1, testDate, "08:00", nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, reason)

	ok, reason, err = svc.IsAvailable(ctx, 1, testDate, "11:00", nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotEmpty(t, reason)

	_, _, err = svc.IsAvailable(ctx, 1, testDate, "23:30", nil)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestIsAvailable_RetriesOnceOnStorageError(t *testing.T) {
	svc, slots, _ := newTestService()
	ctx := context.Background()

	slots.listErrs = 1
	ok, _, err := svc.IsAvailable(ctx, 1, testDate, "09:00", nil)
	require.NoError(t, err)
	assert.True(t, ok)

	slots.listErrs = 2
	_, _, err = svc.IsAvailable(ctx, 1, testDate, "09:00", nil)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestFreeSlots(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Пустое расписание: часы 08:00-18:00 с шагом 60 дают 10 кандидатов
	free, err := svc.FreeSlots(ctx, 1, testDate, FreeSlotsQuery{})
	require.NoError(t, err)
	assert.Len(t, free, 10)
	assert.Equal(t, types.TimeString("08:00"), free[0])
	assert.Equal(t, types.TimeString("17:00"), free[len(free)-1])

	_, err = svc.BlockSlot(ctx, 1, testDate, "10:00", "12:00", "")
	require.NoError(t, err)

	free, err = svc.FreeSlots(ctx, 1, testDate, FreeSlotsQuery{})
	require.NoError(t, err)
	assert.Len(t, free, 8)
	assert.NotContains(t, free, types.TimeString("10:00"))
	assert.NotContains(t, free, types.TimeString("11:00"))
}

func TestFreeSlots_LongJobMustFitWorkingHours(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.BlockSlot(ctx, 1, testDate, "10:00", "12:00", "")
	require.NoError(t, err)

	// Двухчасовая работа: старт не позже 16:00 и не поверх блокировки
	free, err := svc.FreeSlots(ctx, 1, testDate, FreeSlotsQuery{DurationMinutes: ptr.Ptr(120)})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"08:00", "12:00", "13:00", "14:00", "15:00", "16:00"}, free)
}

func TestFreeSlots_CustomHoursAndGranularity(t *testing.T) {
	svc, _, _ := newTestService()

	free, err := svc.FreeSlots(context.Background(), 1, testDate, FreeSlotsQuery{
		WorkStart:          ptr.Ptr(types.TimeString("09:00")),
		WorkEnd:            ptr.Ptr(types.TimeString("12:00")),
		GranularityMinutes: ptr.Ptr(30),
	})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}, free)
}

func TestFreeSlots_InvalidScheduleParams(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.FreeSlots(ctx, 1, testDate, FreeSlotsQuery{
		WorkStart: ptr.Ptr(types.TimeString("18:00")),
		WorkEnd:   ptr.Ptr(types.TimeString("08:00")),
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.FreeSlots(ctx, 1, testDate, FreeSlotsQuery{
		WorkStart: ptr.Ptr(types.TimeString("9:00")),
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.FreeSlots(ctx, 1, testDate, FreeSlotsQuery{GranularityMinutes: ptr.Ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWorkerSchedule(t *testing.T) {
	svc, _, bookings := newTestService()
	ctx := context.Background()

	from := testDate
	to := testDate.AddDate(0, 0, 6)

	_, err := svc.BlockSlot(ctx, 1, testDate, "10:00", "12:00", "day off")
	require.NoError(t, err)

	bookings.bookings = append(bookings.bookings,
		&domain.Booking{ID: 1, WorkerID: 1, ScheduledDate: testDate.AddDate(0, 0, 1), ScheduledTime: "09:00", Status: domain.StatusConfirmed},
		&domain.Booking{ID: 2, WorkerID: 1, ScheduledDate: testDate.AddDate(0, 0, 2), ScheduledTime: "09:00", Status: domain.StatusCancelled},
		&domain.Booking{ID: 3, WorkerID: 2, ScheduledDate: testDate, ScheduledTime: "09:00", Status: domain.StatusPending},
	)

	schedule, err := svc.WorkerSchedule(ctx, 1, from, to)
	require.NoError(t, err)

	assert.Len(t, schedule.Slots, 1)
	// Отмененные и чужие бронирования в расписание не попадают
	require.Len(t, schedule.Bookings, 1)
	assert.Equal(t, int64(1), schedule.Bookings[0].ID)
}

func TestWorkerSchedule_InvalidRange(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.WorkerSchedule(context.Background(), 1, testDate, testDate.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
