package mailer

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("mailer client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Указывает, что сервис рассылки недоступен; запись при этом остаётся
	// подтверждённой - уведомление не является частью транзакции.
	ErrServiceDegraded = errors.New("mailer unavailable: graceful degradation applied")
)
