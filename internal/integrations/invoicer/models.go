package invoicer

// issueInvoiceRequest тело запроса на выставление счета
type issueInvoiceRequest struct {
	BookingID  int64    `json:"bookingId"`
	CustomerID int64    `json:"customerId"`
	WorkerID   int64    `json:"workerId"`
	Amount     float64  `json:"amount"`
	Tip        *float64 `json:"tip,omitempty"`
}
