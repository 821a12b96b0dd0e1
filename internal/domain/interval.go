package domain

import (
	"fmt"

	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Interval полуоткрытый интервал [StartMinute, EndMinute) в минутах
// от начала суток. Единственное место в сервисе, где определена проверка
// пересечения интервалов: её используют и генерация слотов, и проверка
// перед записью, чтобы обе ветки никогда не разошлись в семантике.
type Interval struct {
	StartMinute int
	EndMinute   int
}

// NewInterval создает интервал из времени начала и длительности
func NewInterval(start types.TimeString, durationMinutes int) (Interval, error) {
	if durationMinutes <= 0 {
		return Interval{}, fmt.Errorf("interval duration must be positive, got %d", durationMinutes)
	}

	startMinute, err := start.Minutes()
	if err != nil {
		return Interval{}, err
	}

	return Interval{
		StartMinute: startMinute,
		EndMinute:   startMinute + durationMinutes,
	}, nil
}

// NewIntervalFromRange создает интервал из пары время начала / время конца
func NewIntervalFromRange(start, end types.TimeString) (Interval, error) {
	startMinute, err := start.Minutes()
	if err != nil {
		return Interval{}, err
	}

	endMinute, err := end.Minutes()
	if err != nil {
		return Interval{}, err
	}

	if endMinute <= startMinute {
		return Interval{}, fmt.Errorf("interval end %s must be after start %s", end, start)
	}

	return Interval{StartMinute: startMinute, EndMinute: endMinute}, nil
}

// Overlaps проверяет пересечение полуоткрытых интервалов.
// Соприкасающиеся интервалы (один заканчивается ровно там, где начинается
// другой) пересечением НЕ считаются: бронирования впритык допустимы.
func (i Interval) Overlaps(other Interval) bool {
	return i.StartMinute < other.EndMinute && i.EndMinute > other.StartMinute
}

// Duration возвращает длительность интервала в минутах
func (i Interval) Duration() int {
	return i.EndMinute - i.StartMinute
}

// HasConflict возвращает true, если кандидат пересекается хотя бы с одним
// из существующих интервалов
func HasConflict(candidate Interval, existing []Interval) bool {
	for _, iv := range existing {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}
