package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// BlockedTimeRepository интерфейс репозитория блокировок календаря
type BlockedTimeRepository interface {
	ListWithFilter(ctx context.Context, filter domain.BlockedTimesFilter) ([]*domain.BlockedTime, error)
}

// TreatmentRepository интерфейс репозитория каталога процедур
type TreatmentRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Treatment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
