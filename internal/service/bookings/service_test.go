package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingStore struct {
	items   map[int64]*domain.Booking
	listErr error
}

func (f *fakeBookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingStore) ListByUser(_ context.Context, userID int64, role domain.BookingRole, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	out := make([]*domain.Booking, 0)
	for _, b := range f.items {
		switch role {
		case domain.RoleCustomer:
			if b.CustomerID != userID {
				continue
			}
		case domain.RoleWorker:
			if b.WorkerID != userID {
				continue
			}
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func newService(bookings ...*domain.Booking) (*Service, *fakeBookingStore) {
	items := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		items[b.ID] = b
	}
	store := &fakeBookingStore{items: items}
	return NewService(store, nopLogger{}), store
}

func TestGetByID(t *testing.T) {
	svc, _ := newService(&domain.Booking{ID: 1, CustomerID: 10, WorkerID: 20, Status: domain.StatusPending})
	ctx := context.Background()

	// Обе стороны бронирования видят его
	b, err := svc.GetByID(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)

	_, err = svc.GetByID(ctx, 1, 20)
	require.NoError(t, err)

	// Посторонний пользователь - нет
	_, err = svc.GetByID(ctx, 1, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, 2, 10)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListByUser(t *testing.T) {
	svc, _ := newService(
		&domain.Booking{ID: 1, CustomerID: 10, WorkerID: 20, Status: domain.StatusPending},
		&domain.Booking{ID: 2, CustomerID: 10, WorkerID: 30, Status: domain.StatusCompleted},
		&domain.Booking{ID: 3, CustomerID: 40, WorkerID: 20, Status: domain.StatusConfirmed},
	)
	ctx := context.Background()

	asCustomer, err := svc.ListByUser(ctx, 10, domain.RoleCustomer, nil)
	require.NoError(t, err)
	assert.Len(t, asCustomer, 2)

	asWorker, err := svc.ListByUser(ctx, 20, domain.RoleWorker, nil)
	require.NoError(t, err)
	assert.Len(t, asWorker, 2)

	completed := domain.StatusCompleted
	filtered, err := svc.ListByUser(ctx, 10, domain.RoleCustomer, &completed)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(2), filtered[0].ID)
}

func TestListByUser_InvalidInput(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.ListByUser(ctx, 10, "manager", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := domain.BookingStatus("exploded")
	_, err = svc.ListByUser(ctx, 10, domain.RoleCustomer, &bad)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByUser_RepositoryError(t *testing.T) {
	svc, store := newService()
	store.listErr = errors.New("connection refused")

	_, err := svc.ListByUser(context.Background(), 10, domain.RoleCustomer, nil)
	assert.ErrorIs(t, err, ErrInternal)
}
