package get_available_slots

import (
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	getSlots "github.com/m04kA/SMC-MarketplaceService/internal/usecase/get_available_slots"
)

// FreeSlotsResponse HTTP response model
type FreeSlotsResponse struct {
	WorkerID int64    `json:"workerId"`
	Date     string   `json:"date"`
	Slots    []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *FreeSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}

	return &FreeSlotsResponse{
		WorkerID: resp.WorkerID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    slots,
	}
}
