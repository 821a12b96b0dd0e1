package create_booking

import (
	"time"

	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Request модель запроса на создание записи.
// Процедуры выстраиваются встык от выбранного времени начала -
// одна строка бронирования на каждую процедуру с общим GroupID.
type Request struct {
	CustomerID   *int64           // nil - гостевая запись, сопоставление по email
	Email        string           // email клиента
	Date         types.DateOnly   // дата записи
	StartTime    types.TimeString // время начала первой процедуры
	TreatmentIDs []int64          // процедуры в выбранном порядке, минимум одна
	Notes        *string          // пожелания клиента (опционально)
}

// CreatedBooking одна строка созданной записи
type CreatedBooking struct {
	ID              int64            // ID бронирования
	StartTime       types.TimeString // время начала процедуры
	DurationMinutes int              // длительность процедуры
	TreatmentID     int64            // ID процедуры
	TreatmentName   string           // название процедуры
	TreatmentPrice  float64          // цена на момент записи
}

// Response модель ответа с созданной записью
type Response struct {
	GroupID    string           // общий идентификатор записи из корзины
	Date       types.DateOnly   // дата записи
	Status     string           // статус (pending до подтверждения)
	Bookings   []CreatedBooking // строки записи в порядке выполнения
	TotalPrice float64          // суммарная цена процедур
	CreatedAt  time.Time        // время создания
}
