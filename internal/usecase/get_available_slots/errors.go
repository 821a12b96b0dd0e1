package get_available_slots

import "errors"

var (
	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrTreatmentNotFound возвращается, когда запрошенная процедура не найдена
	ErrTreatmentNotFound = errors.New("treatment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
