package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса почтовых уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса рассылки
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation отправляет письмо о подтверждении записи
func (c *Client) SendBookingConfirmation(ctx context.Context, confirmation *BookingConfirmation) error {
	return c.post(ctx, "/internal/mail/booking-confirmed", confirmation)
}

// SendBookingCancellation отправляет письмо об отмене записи
func (c *Client) SendBookingCancellation(ctx context.Context, cancellation *BookingCancellation) error {
	return c.post(ctx, "/internal/mail/booking-cancelled", cancellation)
}

// SendBookingConfirmationWithGracefulDegradation отправляет письмо о
// подтверждении с graceful degradation: при недоступности сервиса рассылки
// возвращает ErrServiceDegraded, подтверждение записи при этом не откатывается.
func (c *Client) SendBookingConfirmationWithGracefulDegradation(ctx context.Context, confirmation *BookingConfirmation) error {
	c.log.Info("Sending booking confirmation to email=%s, date=%s", confirmation.Email, confirmation.BookingDate)

	if err := c.SendBookingConfirmation(ctx, confirmation); err != nil {
		// Уведомление не критично для бизнес-операции, но недоступность
		// сервиса рассылки должна быть заметна в логах
		c.log.Error("Mailer unavailable, applying graceful degradation for email=%s: %v", confirmation.Email, err)
		return fmt.Errorf("%w: email=%s, error=%v", ErrServiceDegraded, confirmation.Email, err)
	}

	c.log.Info("Successfully sent booking confirmation to email=%s", confirmation.Email)
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
