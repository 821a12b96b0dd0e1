package domain

import (
	"time"

	"github.com/m04kA/SalonBookingService/pkg/types"
)

// DaySchedule рабочие часы одного дня недели
type DaySchedule struct {
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// WeekSchedule рабочие часы салона по дням недели.
// Задается в конфигурации, а не в коде: у салона короткая суббота
// и выходное воскресенье, но это настройка, а не константа.
type WeekSchedule struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// ForDate возвращает расписание на день недели указанной даты
func (w WeekSchedule) ForDate(date types.DateOnly) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}
