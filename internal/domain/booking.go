package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking одно зарезервированное время для одной процедуры.
// Мульти-процедурная запись из корзины создает несколько строк
// с общим GroupID и сквозной нумерацией GroupIndex/GroupTotal.
// Записи никогда не удаляются физически - только смена статуса.
type Booking struct {
	ID              int64
	CustomerID      *int64 // может быть nil - тогда клиент сопоставляется по email
	Email           string
	Date            types.DateOnly
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Денормализованные данные процедуры для истории
	TreatmentID    int64
	TreatmentName  string
	TreatmentPrice float64

	GroupID    uuid.UUID
	GroupIndex int // позиция внутри группы, начиная с 1
	GroupTotal int // общее количество процедур в группе

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование учитывается при проверке
// конфликтов и в счётчике скидок (т.е. не отменено)
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled возвращает true, если бронирование отменено
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeConfirmed возвращает true, если бронирование можно подтвердить
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// Interval возвращает занимаемый интервал в минутах от начала суток
func (b *Booking) Interval() (Interval, error) {
	return NewInterval(b.StartTime, b.DurationMinutes)
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	Date             *types.DateOnly // бронирования на конкретную дату
	CustomerID       *int64          // фильтр по клиенту
	Email            *string         // фильтр по email (для клиентов без учётной записи)
	Status           *BookingStatus  // фильтр по статусу
	GroupID          *uuid.UUID      // все строки одной записи из корзины
	IncludeCancelled bool            // включать ли отменённые бронирования
}
