package blockedtime

import (
	"context"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// BlockedTimeRepository интерфейс репозитория блокировок календаря
type BlockedTimeRepository interface {
	Create(ctx context.Context, block *domain.BlockedTime) (*domain.BlockedTime, error)
	GetByID(ctx context.Context, id int64) (*domain.BlockedTime, error)
	ListWithFilter(ctx context.Context, filter domain.BlockedTimesFilter) ([]*domain.BlockedTime, error)
	Delete(ctx context.Context, id int64) error
	DeleteByDate(ctx context.Context, date types.DateOnly, onlyPartial bool) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
