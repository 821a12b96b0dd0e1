package discounts

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrNoBirthdate возвращается, когда у клиента не указана дата рождения
	ErrNoBirthdate = errors.New("customer has no birthdate")

	// ErrNotEligible возвращается при попытке погасить ненакопленную скидку
	ErrNotEligible = errors.New("loyalty discount is not eligible")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
