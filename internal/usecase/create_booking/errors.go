package create_booking

import "errors"

var (
	// ErrTreatmentNotFound возвращается, когда процедура не найдена
	ErrTreatmentNotFound = errors.New("create_booking: treatment not found")

	// ErrTreatmentUnavailable возвращается, когда процедура выведена из каталога
	ErrTreatmentUnavailable = errors.New("create_booking: treatment is not available")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSalonClosed возвращается, когда салон закрыт в указанную дату
	// или цепочка процедур не помещается до закрытия
	ErrSalonClosed = errors.New("create_booking: salon is closed at this time")

	// ErrSlotNotAvailable возвращается, когда время конфликтует с другой
	// записью или блокировкой календаря
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTooLateToBook возвращается при попытке записаться ближе минимального запаса
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
