package block_slot

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	blockSlot "github.com/m04kA/SMC-MarketplaceService/internal/usecase/block_slot"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// BlockSlotRequest HTTP request model
type BlockSlotRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00"
	Note      string `json:"note,omitempty"`
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID        int64  `json:"id"`
	WorkerID  int64  `json:"workerId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Kind      string `json:"kind"`
	Note      string `json:"note,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BlockSlotRequest) ToUseCaseRequest(workerID, actorID int64) (*blockSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &blockSlot.Request{
		WorkerID:  workerID,
		ActorID:   actorID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Note:      r.Note,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *blockSlot.Response) *SlotResponse {
	return &SlotResponse{
		ID:        resp.ID,
		WorkerID:  resp.WorkerID,
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		EndTime:   resp.EndTime.String(),
		Kind:      resp.Kind,
		Note:      resp.Note,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
