package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindEdge_AllowedTransitions(t *testing.T) {
	tests := []struct {
		name  string
		from  BookingStatus
		to    BookingStatus
		actor EdgeActor
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, ActorWorker},
		{"pending to rejected", StatusPending, StatusRejected, ActorWorker},
		{"pending to cancelled", StatusPending, StatusCancelled, ActorEither},
		{"confirmed to on_the_way", StatusConfirmed, StatusOnTheWay, ActorWorker},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, ActorEither},
		{"on_the_way to in_progress", StatusOnTheWay, StatusInProgress, ActorWorker},
		{"on_the_way to cancelled", StatusOnTheWay, StatusCancelled, ActorEither},
		{"in_progress to work_finished", StatusInProgress, StatusWorkFinished, ActorWorker},
		{"in_progress to cancelled", StatusInProgress, StatusCancelled, ActorEither},
		{"work_finished to completed", StatusWorkFinished, StatusCompleted, ActorCustomer},
		{"work_finished to cancelled", StatusWorkFinished, StatusCancelled, ActorEither},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge, ok := FindEdge(tt.from, tt.to)
			require.True(t, ok)
			assert.Equal(t, tt.actor, edge.Actor)
		})
	}
}

func TestFindEdge_ForbiddenTransitions(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
	}{
		{"pending to on_the_way", StatusPending, StatusOnTheWay},
		{"pending to completed", StatusPending, StatusCompleted},
		{"confirmed to work_finished", StatusConfirmed, StatusWorkFinished},
		{"confirmed to rejected", StatusConfirmed, StatusRejected},
		{"in_progress to completed", StatusInProgress, StatusCompleted},
		{"work_finished to in_progress", StatusWorkFinished, StatusInProgress},
		{"backwards on_the_way to confirmed", StatusOnTheWay, StatusConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := FindEdge(tt.from, tt.to)
			assert.False(t, ok)
		})
	}
}

func TestFindEdge_TerminalStatusesHaveNoOutgoingEdges(t *testing.T) {
	all := []BookingStatus{
		StatusPending, StatusConfirmed, StatusOnTheWay, StatusInProgress,
		StatusWorkFinished, StatusCompleted, StatusCancelled, StatusRejected,
	}

	for _, terminal := range TerminalStatuses {
		for _, target := range all {
			_, ok := FindEdge(terminal, target)
			assert.False(t, ok, "terminal status %s must not have edge to %s", terminal, target)
		}
	}
}

func TestFindEdge_CompletedEdgeIsPaymentOnly(t *testing.T) {
	edge, ok := FindEdge(StatusWorkFinished, StatusCompleted)

	require.True(t, ok)
	assert.True(t, edge.PaymentOnly)
	assert.Equal(t, ActorCustomer, edge.Actor)
}

func TestTransitionEdge_ActorAllowed(t *testing.T) {
	booking := &Booking{CustomerID: 1, WorkerID: 2}

	tests := []struct {
		name    string
		actor   EdgeActor
		userID  int64
		allowed bool
	}{
		{"worker edge by worker", ActorWorker, 2, true},
		{"worker edge by customer", ActorWorker, 1, false},
		{"customer edge by customer", ActorCustomer, 1, true},
		{"customer edge by worker", ActorCustomer, 2, false},
		{"either edge by customer", ActorEither, 1, true},
		{"either edge by worker", ActorEither, 2, true},
		{"either edge by stranger", ActorEither, 99, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge := TransitionEdge{Actor: tt.actor}
			assert.Equal(t, tt.allowed, edge.ActorAllowed(booking, tt.userID))
		})
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusWorkFinished.IsTerminal())
}
