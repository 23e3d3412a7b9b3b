package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate возвращается при попытке бронирования на прошедшую дату
	ErrInvalidDate = errors.New("booking date is in the past")

	// ErrSlotUnavailable возвращается, когда запрошенное время занято у мастера
	ErrSlotUnavailable = errors.New("requested time is unavailable")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create booking: internal error")
)
