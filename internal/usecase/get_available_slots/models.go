package get_available_slots

import (
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Request модель запроса доступных слотов.
// Длительность задаётся напрямую или списком процедур - тогда она
// вычисляется как сумма длительностей цепочки.
type Request struct {
	Date            types.DateOnly
	DurationMinutes int
	TreatmentIDs    []int64
}

// Response модель ответа со списком доступных времён начала.
// Пустой список - нормальный результат (день занят или салон закрыт).
//
// Degraded=true означает, что часть данных (бронирования или блокировки)
// была недоступна и день рассчитан без них: клиент видит явный флаг,
// а не обычный с виду ответ.
type Response struct {
	Date            types.DateOnly
	DurationMinutes int
	Slots           []types.TimeString
	Degraded        bool
}
