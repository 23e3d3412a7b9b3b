package process_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrOnlyCustomer возвращается, когда платит не заказчик бронирования
	ErrOnlyCustomer = errors.New("only the customer can pay for the booking")

	// ErrWorkNotFinished возвращается при оплате до завершения работ
	ErrWorkNotFinished = errors.New("work is not finished yet")

	// ErrAlreadyPaid возвращается при повторной оплате
	ErrAlreadyPaid = errors.New("booking is already paid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("process payment: internal error")
)
