package invoicer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с InvoiceService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента InvoiceService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// IssueFromBooking выставляет счет по завершенной работе.
// Сервис счетов идемпотентен по bookingId: повторный вызов не создает дубликат.
// Ошибка выставления логируется и не откатывает переход статуса.
func (c *Client) IssueFromBooking(ctx context.Context, b *domain.Booking) {
	if b.FinalCost == nil {
		c.log.Warn("Invoice skipped, no final cost: booking_id=%d", b.ID)
		return
	}

	if err := c.issue(ctx, b); err != nil {
		c.log.Error("Invoicer unavailable, invoice deferred: booking_id=%d: %v", b.ID, err)
		return
	}

	c.log.Info("Invoice issued: booking_id=%d, amount=%.2f", b.ID, *b.FinalCost)
}

func (c *Client) issue(ctx context.Context, b *domain.Booking) error {
	url := fmt.Sprintf("%s/internal/invoices", c.baseURL)

	body, err := json.Marshal(issueInvoiceRequest{
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		WorkerID:   b.WorkerID,
		Amount:     *b.FinalCost,
		Tip:        b.Tip,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusConflict:
		// 409 - счет уже выставлен ранее, для нас это успех
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
