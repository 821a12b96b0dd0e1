package discounts

import (
	"context"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// CounterRepository интерфейс репозитория счётчиков скидки лояльности
type CounterRepository interface {
	Get(ctx context.Context, customerID int64) (*domain.DiscountCounter, error)
	GetOrCreate(ctx context.Context, customerID int64) (*domain.DiscountCounter, error)
	Increment(ctx context.Context, customerID int64, n int) error
	Decrement(ctx context.Context, customerID int64, n int) error
	Reset(ctx context.Context, customerID int64, redeemedAt time.Time) error
	SetCount(ctx context.Context, customerID int64, count int) error
}

// BookingRepository интерфейс репозитория бронирований.
// Сервису скидок нужен только подсчёт подтверждённых процедур для сверки.
type BookingRepository interface {
	CountConfirmedTreatmentsAfter(ctx context.Context, customerID int64, since *time.Time) (int, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider стандартная реализация TimeProvider
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
