package update_booking_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда пользователь не является стороной бронирования
	ErrAccessDenied = errors.New("access denied")

	// ErrOnlyWorker возвращается, когда переход доступен только мастеру
	ErrOnlyWorker = errors.New("only the worker can perform this transition")

	// ErrOnlyCustomer возвращается, когда переход доступен только клиенту
	ErrOnlyCustomer = errors.New("only the customer can perform this transition")

	// ErrInvalidTransition возвращается, когда ребра (from, to) нет в таблице переходов
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPaymentRequired возвращается при попытке достичь completed минуя оплату
	ErrPaymentRequired = errors.New("completed is reachable only through payment")

	// ErrSlotConflict возвращается, когда время бронирования занято при подтверждении
	ErrSlotConflict = errors.New("slot conflicts with existing schedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("update booking status: internal error")
)
