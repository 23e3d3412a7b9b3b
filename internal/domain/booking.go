package domain

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending      BookingStatus = "pending"       // Waiting for worker to accept
	StatusConfirmed    BookingStatus = "confirmed"     // Worker accepted, slot reserved
	StatusOnTheWay     BookingStatus = "on_the_way"    // Worker traveling to the customer
	StatusInProgress   BookingStatus = "in_progress"   // Worker is working
	StatusWorkFinished BookingStatus = "work_finished" // Work done, awaiting payment
	StatusCompleted    BookingStatus = "completed"     // Payment received
	StatusCancelled    BookingStatus = "cancelled"
	StatusRejected     BookingStatus = "rejected"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

// Booking represents a scheduled service engagement between a customer and a worker
type Booking struct {
	ID         int64
	CustomerID int64
	WorkerID   int64

	ServiceType    string
	JobDescription string

	ScheduledDate     time.Time
	ScheduledTime     types.TimeString
	EstimatedDuration *int // minutes, nil = default (applied by the availability engine)

	Status BookingStatus

	EstimatedCost *float64
	FinalCost     *float64
	Tip           *float64
	PaymentStatus PaymentStatus
	PaymentMethod *PaymentMethod
	PaidAt        *time.Time

	CompletionPhotos []string
	WorkerNotes      *string

	AcceptedAt         *time.Time
	RejectedAt         *time.Time
	RejectionReason    *string
	CancelledBy        *int64
	CancellationReason *string
	CancelledAt        *time.Time
	WorkFinishedAt     *time.Time
	CompletedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsParty returns true if the user is the customer or the worker of this booking
func (b *Booking) IsParty(userID int64) bool {
	return b.CustomerID == userID || b.WorkerID == userID
}

// CounterpartyOf returns the other party's id relative to the acting user
// Notifications always go to the counter-party, never to the actor
func (b *Booking) CounterpartyOf(userID int64) int64 {
	if b.CustomerID == userID {
		return b.WorkerID
	}
	return b.CustomerID
}

// IsActive returns true if the booking still occupies the worker's schedule
// Active bookings participate in availability overlap checks
func (b *Booking) IsActive() bool {
	switch b.Status {
	case StatusPending, StatusConfirmed, StatusOnTheWay, StatusInProgress:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the booking has no outgoing transitions
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// IsPaid returns true if the booking has been paid
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// IsTerminal returns true for statuses with no outgoing edges
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// Valid проверяет, что статус входит в известный набор
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusOnTheWay, StatusInProgress,
		StatusWorkFinished, StatusCompleted, StatusCancelled, StatusRejected:
		return true
	default:
		return false
	}
}

// Valid проверяет, что способ оплаты входит в известный набор
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodCard
}

// BookingRole роль пользователя по отношению к бронированию
type BookingRole string

const (
	RoleCustomer BookingRole = "customer"
	RoleWorker   BookingRole = "worker"
)

// Valid проверяет, что роль входит в известный набор
func (r BookingRole) Valid() bool {
	return r == RoleCustomer || r == RoleWorker
}
