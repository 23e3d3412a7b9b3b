package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.WorkerID <= 0 {
		return fmt.Errorf("%w: workerID must be positive", ErrInvalidInput)
	}

	if req.CustomerID == req.WorkerID {
		return fmt.Errorf("%w: customer cannot book themselves", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceType) == "" {
		return fmt.Errorf("%w: serviceType is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.JobDescription) == "" {
		return fmt.Errorf("%w: jobDescription is required", ErrInvalidInput)
	}

	if req.ScheduledDate.IsZero() {
		return fmt.Errorf("%w: scheduledDate is required", ErrInvalidInput)
	}

	if req.ScheduledTime.IsZero() {
		return fmt.Errorf("%w: scheduledTime is required", ErrInvalidInput)
	}

	if err := req.ScheduledTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid scheduledTime format: %v", ErrInvalidInput, err)
	}

	if req.EstimatedDuration != nil {
		if *req.EstimatedDuration < domain.MinDurationMinutes || *req.EstimatedDuration > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: estimatedDuration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	if req.EstimatedCost != nil && *req.EstimatedCost <= 0 {
		return fmt.Errorf("%w: estimatedCost must be positive", ErrInvalidInput)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
