package block_slot

import "errors"

var (
	// ErrAccessDenied возвращается, когда мастер управляет чужим расписанием
	ErrAccessDenied = errors.New("access denied")

	// ErrSlotAlreadyBlocked возвращается при повторной блокировке того же интервала
	ErrSlotAlreadyBlocked = errors.New("slot already blocked")

	// ErrSlotNotFound возвращается, когда блокировка не найдена у мастера
	ErrSlotNotFound = errors.New("availability slot not found")

	// ErrInvalidDate возвращается при блокировке на прошедшую дату
	ErrInvalidDate = errors.New("date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("block slot: internal error")
)
