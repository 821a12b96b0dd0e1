package get_available_slots

import (
	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// generateCandidateSlots генерирует кандидатов на время начала:
// фиксированная сетка с шагом gridMinutes от открытия до закрытия.
// Кандидат, чья процедура не успевает закончиться до закрытия,
// отбрасывается сразу.
func generateCandidateSlots(day domain.DaySchedule, gridMinutes, durationMinutes int) ([]types.TimeString, error) {
	if !day.IsOpen {
		return []types.TimeString{}, nil
	}

	openMinute, err := day.OpenTime.Minutes()
	if err != nil {
		return nil, err
	}
	closeMinute, err := day.CloseTime.Minutes()
	if err != nil {
		return nil, err
	}

	candidates := make([]types.TimeString, 0)
	for m := openMinute; m+durationMinutes <= closeMinute; m += gridMinutes {
		slot, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, slot)
	}

	return candidates, nil
}

// busyIntervals собирает занятые интервалы дня: активные бронирования
// и частичные блокировки. Записи с некорректным временем пропускаются -
// лучше показать слот и поймать конфликт на записи, чем уронить выдачу.
func busyIntervals(bookings []*domain.Booking, blocks []*domain.BlockedTime) []domain.Interval {
	intervals := make([]domain.Interval, 0, len(bookings)+len(blocks))

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		iv, err := b.Interval()
		if err != nil {
			continue
		}
		intervals = append(intervals, iv)
	}

	for _, b := range blocks {
		if b.IsFullDay {
			continue
		}
		iv, err := b.Interval()
		if err != nil {
			continue
		}
		intervals = append(intervals, iv)
	}

	return intervals
}

// filterConflicts отбрасывает кандидатов, пересекающихся хотя бы с одним
// занятым интервалом. Единственная проверка пересечения - общая с путём
// записи (domain.HasConflict).
func filterConflicts(candidates []types.TimeString, durationMinutes int, busy []domain.Interval) ([]types.TimeString, error) {
	available := make([]types.TimeString, 0, len(candidates))

	for _, slot := range candidates {
		candidate, err := domain.NewInterval(slot, durationMinutes)
		if err != nil {
			return nil, err
		}
		if domain.HasConflict(candidate, busy) {
			continue
		}
		available = append(available, slot)
	}

	return available, nil
}

// filterTodayBuffer для сегодняшней даты отбрасывает кандидатов, начинающихся
// раньше чем через bufferMinutes от текущего времени
func filterTodayBuffer(candidates []types.TimeString, nowMinute, bufferMinutes int) []types.TimeString {
	minStart := nowMinute + bufferMinutes

	filtered := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		m, err := slot.Minutes()
		if err != nil {
			continue
		}
		if m >= minStart {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// hasFullDayBlock возвращает true, если среди блокировок есть блок на весь день
func hasFullDayBlock(blocks []*domain.BlockedTime) bool {
	for _, b := range blocks {
		if b.IsFullDay {
			return true
		}
	}
	return false
}
