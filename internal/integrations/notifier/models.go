package notifier

// Kind тип уведомления; ключи соответствуют новому статусу бронирования
type Kind string

const (
	KindBookingRequested Kind = "booking_requested"
	KindBookingConfirmed Kind = "booking_confirmed"
	KindBookingRejected  Kind = "booking_rejected"
	KindBookingCancelled Kind = "booking_cancelled"
	KindWorkerOnTheWay   Kind = "worker_on_the_way"
	KindJobStarted       Kind = "job_started"
	KindWorkFinished     Kind = "work_finished"
	KindPaymentReceived  Kind = "payment_received"
)

// notifyRequest тело запроса к NotificationDispatcher
type notifyRequest struct {
	UserID  int64                  `json:"userId"`
	Kind    Kind                   `json:"kind"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}
