package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStorageUnavailable возвращается, когда хранилище недоступно
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("get available slots: internal error")
)
