package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   string
		aEnd     string
		bStart   string
		bEnd     string
		overlaps bool
	}{
		{"identical intervals", "09:00", "10:00", "09:00", "10:00", true},
		{"partial overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"contained interval", "09:00", "12:00", "10:00", "11:00", true},
		{"back to back intervals", "09:00", "10:00", "10:00", "11:00", false},
		{"back to back reversed", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint intervals", "08:00", "09:00", "11:00", "12:00", false},
		{"one minute overlap", "09:00", "10:01", "10:00", "11:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(
				types.TimeString(tt.aStart), types.TimeString(tt.aEnd),
				types.TimeString(tt.bStart), types.TimeString(tt.bEnd),
			)
			assert.Equal(t, tt.overlaps, got)

			// Пересечение симметрично
			reversed := Overlaps(
				types.TimeString(tt.bStart), types.TimeString(tt.bEnd),
				types.TimeString(tt.aStart), types.TimeString(tt.aEnd),
			)
			assert.Equal(t, tt.overlaps, reversed)
		})
	}
}

func TestBooking_IsActive(t *testing.T) {
	for _, status := range ActiveStatuses {
		b := &Booking{Status: status}
		assert.True(t, b.IsActive(), "status %s must be active", status)
	}

	for _, status := range []BookingStatus{StatusWorkFinished, StatusCompleted, StatusCancelled, StatusRejected} {
		b := &Booking{Status: status}
		assert.False(t, b.IsActive(), "status %s must not be active", status)
	}
}

func TestBooking_CounterpartyOf(t *testing.T) {
	b := &Booking{CustomerID: 10, WorkerID: 20}

	assert.Equal(t, int64(20), b.CounterpartyOf(10))
	assert.Equal(t, int64(10), b.CounterpartyOf(20))
}
