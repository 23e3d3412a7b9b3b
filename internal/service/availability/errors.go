package availability

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден или принадлежит другому мастеру
	ErrSlotNotFound = errors.New("availability slot not found")

	// ErrSlotAlreadyBlocked возвращается при повторной блокировке того же интервала
	ErrSlotAlreadyBlocked = errors.New("slot already blocked")

	// ErrSlotConflict возвращается, когда интервал пересекается с занятым временем
	ErrSlotConflict = errors.New("slot conflicts with existing schedule")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStorageUnavailable возвращается, когда хранилище недоступно после повтора
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability service: internal error")
)
