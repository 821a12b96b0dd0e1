package blockedtime

import "errors"

var (
	// ErrBlockedTimeNotFound возвращается, когда блокировка не найдена
	ErrBlockedTimeNotFound = errors.New("blocked time not found")

	// ErrBlockOverlap возвращается, когда частичный блок пересекается
	// с существующим блоком этой даты
	ErrBlockOverlap = errors.New("blocked time overlaps an existing block")

	// ErrDayFullyBlocked возвращается при попытке добавить частичный блок
	// на дату, уже закрытую целиком
	ErrDayFullyBlocked = errors.New("day is already fully blocked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
