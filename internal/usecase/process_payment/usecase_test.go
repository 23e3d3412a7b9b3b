package process_payment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MarketplaceService/internal/integrations/notifier"
	"github.com/m04kA/SMC-MarketplaceService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingStore struct {
	mu    sync.Mutex
	items map[int64]*domain.Booking
}

func (f *fakeBookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingStore) ApplyTransition(_ context.Context, id int64, upd domain.BookingUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.items[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}

	b.Status = upd.Status
	if upd.PaymentStatus != nil {
		b.PaymentStatus = *upd.PaymentStatus
	}
	if upd.PaymentMethod != nil {
		b.PaymentMethod = upd.PaymentMethod
	}
	if upd.Tip != nil {
		b.Tip = upd.Tip
	}
	if upd.PaidAt != nil {
		b.PaidAt = upd.PaidAt
	}
	if upd.CompletedAt != nil {
		b.CompletedAt = upd.CompletedAt
	}
	return nil
}

type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type notification struct {
	userID  int64
	kind    notifier.Kind
	payload map[string]interface{}
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (f *fakeNotifier) Notify(_ context.Context, userID int64, kind notifier.Kind, payload map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, notification{userID: userID, kind: kind, payload: payload})
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

const (
	customerID = int64(10)
	workerID   = int64(20)
)

var now = time.Date(2025, 10, 15, 18, 30, 0, 0, time.UTC)

func finishedBooking() *domain.Booking {
	return &domain.Booking{
		ID:            1,
		CustomerID:    customerID,
		WorkerID:      workerID,
		Status:        domain.StatusWorkFinished,
		PaymentStatus: domain.PaymentPending,
		FinalCost:     ptr.Ptr(200.0),
	}
}

func newUseCase(bookings ...*domain.Booking) (*UseCase, *fakeBookingStore, *fakeNotifier) {
	items := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		items[b.ID] = b
	}
	store := &fakeBookingStore{items: items}
	notifs := &fakeNotifier{}

	uc := NewUseCase(store, &fakeTxManager{}, notifs, nopLogger{})
	uc.timeProvider = fixedTime{t: now}

	return uc, store, notifs
}

func TestExecute_PaymentCompletesBooking(t *testing.T) {
	uc, store, notifs := newUseCase(finishedBooking())

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:     1,
		ActorID:       customerID,
		PaymentMethod: domain.PaymentMethodCard,
		Tip:           ptr.Ptr(20.0),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
	require.NotNil(t, resp.PaymentMethod)
	assert.Equal(t, "card", *resp.PaymentMethod)
	require.NotNil(t, resp.PaidAt)
	assert.Equal(t, now, *resp.PaidAt)
	require.NotNil(t, resp.CompletedAt)
	assert.Equal(t, now, *resp.CompletedAt)

	stored, _ := store.GetByID(context.Background(), 1)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.True(t, stored.IsPaid())

	// Мастер получает уведомление с суммой и чаевыми
	require.Len(t, notifs.sent, 1)
	assert.Equal(t, workerID, notifs.sent[0].userID)
	assert.Equal(t, notifier.KindPaymentReceived, notifs.sent[0].kind)
	assert.Equal(t, 200.0, notifs.sent[0].payload["amount"])
	assert.Equal(t, 20.0, notifs.sent[0].payload["tip"])
}

func TestExecute_OnlyCustomerCanPay(t *testing.T) {
	uc, store, _ := newUseCase(finishedBooking())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:     1,
		ActorID:       workerID,
		PaymentMethod: domain.PaymentMethodCash,
	})

	assert.ErrorIs(t, err, ErrOnlyCustomer)

	stored, _ := store.GetByID(context.Background(), 1)
	assert.Equal(t, domain.StatusWorkFinished, stored.Status)
}

func TestExecute_WorkNotFinished(t *testing.T) {
	b := finishedBooking()
	b.Status = domain.StatusInProgress
	uc, _, _ := newUseCase(b)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:     1,
		ActorID:       customerID,
		PaymentMethod: domain.PaymentMethodCash,
	})

	assert.ErrorIs(t, err, ErrWorkNotFinished)
}

func TestExecute_AlreadyPaid(t *testing.T) {
	b := finishedBooking()
	b.PaymentStatus = domain.PaymentPaid
	uc, _, notifs := newUseCase(b)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:     1,
		ActorID:       customerID,
		PaymentMethod: domain.PaymentMethodCash,
	})

	assert.ErrorIs(t, err, ErrAlreadyPaid)
	assert.Empty(t, notifs.sent)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:     42,
		ActorID:       customerID,
		PaymentMethod: domain.PaymentMethodCash,
	})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc, _, _ := newUseCase(finishedBooking())
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{BookingID: 1, ActorID: customerID, PaymentMethod: "crypto"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{BookingID: 1, ActorID: customerID, PaymentMethod: domain.PaymentMethodCash, Tip: ptr.Ptr(-1.0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{BookingID: -1, ActorID: customerID, PaymentMethod: domain.PaymentMethodCash})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SecondPaymentRejected(t *testing.T) {
	uc, _, notifs := newUseCase(finishedBooking())
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{BookingID: 1, ActorID: customerID, PaymentMethod: domain.PaymentMethodCard})
	require.NoError(t, err)

	// Повторная оплата отклоняется по статусу заблокированной строки
	_, err = uc.Execute(ctx, &Request{BookingID: 1, ActorID: customerID, PaymentMethod: domain.PaymentMethodCard})
	assert.ErrorIs(t, err, ErrWorkNotFinished)
	assert.Len(t, notifs.sent, 1)
}
