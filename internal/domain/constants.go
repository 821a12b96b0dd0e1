package domain

// Значения по умолчанию для настроек бронирования
const (
	DefaultSlotGridMinutes      = 30 // шаг сетки кандидатов на слот
	DefaultBookingBufferMinutes = 30 // минимальный запас до начала слота сегодня
)

// Значения по умолчанию для скидочной программы
const (
	DefaultLoyaltyThreshold   = 5  // процедур до скидки лояльности
	DefaultLoyaltyPercentage  = 20 // размер скидки лояльности, %
	DefaultBirthdayPercentage = 10 // размер скидки на день рождения, %
	DefaultBirthdayWindowDays = 3  // окно вокруг дня рождения, +/- дней
)

// Ограничения валидации
const (
	MinTreatmentDurationMinutes = 5
	MaxTreatmentDurationMinutes = 480 // 8 часов
	MaxNotesLength              = 500
	MaxReasonLength             = 500
	MaxTreatmentsPerCheckout    = 10
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
